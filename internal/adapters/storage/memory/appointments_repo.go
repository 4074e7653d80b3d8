package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic-appointments/internal/domain/appointments"
)

type appointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment // key: appointmentID público
}

func NewAppointmentsRepo() appointments.Repository {
	return &appointmentsRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.AppointmentID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.AppointmentID]; exists {
		return errors.New("appointment id already exists")
	}
	r.byID[a.AppointmentID] = a
	return nil
}

func (r *appointmentsRepo) GetByAppointmentID(ctx context.Context, appointmentID string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[appointmentID]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.AppointmentID]; !exists {
		return appointments.ErrNotFound
	}
	r.byID[a.AppointmentID] = a
	return nil
}

func (r *appointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.filter(func(appointments.Appointment) bool { return true }), nil
}

func (r *appointmentsRepo) ListByDoctor(ctx context.Context, doctorID string) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool {
		return a.DoctorID == doctorID
	}), nil
}

func (r *appointmentsRepo) ListByParentEmail(ctx context.Context, email string) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool {
		return a.ParentDetails.Email == email
	}), nil
}

func (r *appointmentsRepo) SearchByPetName(ctx context.Context, pattern string) ([]appointments.Appointment, error) {
	needle := strings.ToLower(pattern)
	return r.filter(func(a appointments.Appointment) bool {
		return strings.Contains(strings.ToLower(a.PetDetails.PetName), needle)
	}), nil
}

func (r *appointmentsRepo) ListByExactPetName(ctx context.Context, petName string) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool {
		return a.PetDetails.PetName == petName
	}), nil
}

func (r *appointmentsRepo) filter(keep func(appointments.Appointment) bool) []appointments.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
