package doctors

import "time"

// Registration es el par (doctorId, email) que un admin provisiona
// antes de que el doctor pueda registrarse o recibir reservas.
// Ambas claves son únicas a nivel global.
type Registration struct {
	ID string

	DoctorID string
	Email    string

	CreatedAt time.Time
}
