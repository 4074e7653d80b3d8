package appointments

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando la cita no existe.
var ErrNotFound = errors.New("appointment not found")

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByAppointmentID(ctx context.Context, appointmentID string) (Appointment, error)
	Update(ctx context.Context, a Appointment) error

	List(ctx context.Context) ([]Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]Appointment, error)
	ListByParentEmail(ctx context.Context, email string) ([]Appointment, error)

	// SearchByPetName matchea substring case-insensitive sobre el nombre.
	SearchByPetName(ctx context.Context, pattern string) ([]Appointment, error)
	// ListByExactPetName matchea el nombre exacto (vista de pet y bulk update).
	ListByExactPetName(ctx context.Context, petName string) ([]Appointment, error)
}
