package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vet-clinic-appointments/internal/domain/doctors"
)

type doctorsRepo struct {
	mu         sync.RWMutex
	byDoctorID map[string]doctors.Registration
	byEmail    map[string]string // email -> doctorID
}

func NewDoctorsRepo() doctors.Repository {
	return &doctorsRepo{
		byDoctorID: make(map[string]doctors.Registration),
		byEmail:    make(map[string]string),
	}
}

func (r *doctorsRepo) Create(ctx context.Context, reg doctors.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(reg.DoctorID) == "" {
		return errors.New("doctor id required")
	}
	if _, exists := r.byDoctorID[reg.DoctorID]; exists {
		return errors.New("doctor id already exists")
	}
	if _, exists := r.byEmail[reg.Email]; exists {
		return errors.New("email already exists")
	}
	r.byDoctorID[reg.DoctorID] = reg
	r.byEmail[reg.Email] = reg.DoctorID
	return nil
}

func (r *doctorsRepo) GetByDoctorID(ctx context.Context, doctorID string) (doctors.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byDoctorID[doctorID]
	if !ok {
		return doctors.Registration{}, doctors.ErrNotFound
	}
	return reg, nil
}

func (r *doctorsRepo) GetByEmail(ctx context.Context, email string) (doctors.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return doctors.Registration{}, doctors.ErrNotFound
	}
	return r.byDoctorID[id], nil
}
