package appointments

import "time"

// ParentDetails es un snapshot del pet parent tomado al reservar.
// Se copia por valor a propósito: editar el usuario después no
// reescribe citas históricas.
type ParentDetails struct {
	Username string
	Email    string
	Phone    string
	City     string
}

// PetDetails viaja embebido en la cita (no hay entidad Pet aparte).
type PetDetails struct {
	PetType     string
	PetName     string
	Age         int
	Weight      float64
	Gender      string
	Friendly    bool
	HumanSafety bool
	Allergies   string
	// Prescription queda vacío hasta que un doctor lo escribe.
	Prescription string
}

// Appointment es la entidad central del sistema.
type Appointment struct {
	ID string // id interno de registro

	// AppointmentID es el identificador público corto (6 hex),
	// asignado al crear e inmutable después.
	AppointmentID string

	// DoctorID es una referencia laxa: el booking no la valida
	// contra el registro de doctores. Ver DESIGN.md.
	DoctorID string

	ParentDetails ParentDetails
	PetDetails    PetDetails

	Date time.Time // día de la cita
	Time string    // franja horaria tal como la manda el caller

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
