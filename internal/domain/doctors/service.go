package doctors

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDoctorIDTaken = errors.New("doctor id already exists")
	ErrEmailTaken    = errors.New("email already in use")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Register provisiona un par (doctorId, email). Falla con conflicto
// si cualquiera de las dos claves ya existe.
func (s *Service) Register(ctx context.Context, doctorID, email string) (Registration, error) {
	doctorID = strings.TrimSpace(doctorID)
	email = strings.TrimSpace(email)
	if doctorID == "" || email == "" {
		return Registration{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByDoctorID(ctx, doctorID); err == nil {
		return Registration{}, ErrDoctorIDTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Registration{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Registration{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Registration{}, err
	}

	reg := Registration{
		ID:        uuid.NewString(),
		DoctorID:  doctorID,
		Email:     email,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		return Registration{}, err
	}
	return reg, nil
}

// IsRegistered valida el gate de registro de doctores: el doctorId debe
// existir y su email guardado debe coincidir exactamente.
func (s *Service) IsRegistered(ctx context.Context, doctorID, email string) (bool, error) {
	reg, err := s.repo.GetByDoctorID(ctx, strings.TrimSpace(doctorID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return reg.Email == strings.TrimSpace(email), nil
}

// Validate chequea que el doctorId esté provisionado.
// El path de booking NO lo llama (la reserva acepta cualquier doctorId);
// queda disponible para endurecer la reserva si algún día se decide.
func (s *Service) Validate(ctx context.Context, doctorID string) error {
	_, err := s.repo.GetByDoctorID(ctx, strings.TrimSpace(doctorID))
	return err
}
