package doctors

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando no existe la registration.
var ErrNotFound = errors.New("doctor registration not found")

type Repository interface {
	Create(ctx context.Context, reg Registration) error
	GetByDoctorID(ctx context.Context, doctorID string) (Registration, error)
	GetByEmail(ctx context.Context, email string) (Registration, error)
}
