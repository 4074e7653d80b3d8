package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-appointments/internal/domain/users"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrParentNotFound = errors.New("pet parent not found")
)

// ParentDirectory es el user directory que el booking consulta por email
// (implementado por users.Service).
type ParentDirectory interface {
	FindByEmail(ctx context.Context, email string) (users.User, error)
}

type Service struct {
	repo    Repository
	parents ParentDirectory
	now     func() time.Time
	newID   func() string
}

func NewService(repo Repository, parents ParentDirectory) *Service {
	return &Service{
		repo:    repo,
		parents: parents,
		now:     time.Now,
		newID:   NewAppointmentID,
	}
}

type CreateInput struct {
	DoctorID    string
	ParentEmail string

	PetType     string
	PetName     string
	Age         int
	Weight      float64
	Gender      string
	Friendly    bool
	HumanSafety bool
	Allergies   string

	Date time.Time
	Time string
}

// Create registra la cita: busca al parent por email, toma el snapshot
// de contacto, acuña el id corto y persiste en Pending.
// DoctorID se acepta tal cual, sin validar contra el registro de
// doctores (ver DESIGN.md).
func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	if err := validateCreate(in); err != nil {
		return Appointment{}, err
	}

	parent, err := s.parents.FindByEmail(ctx, in.ParentEmail)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Appointment{}, ErrParentNotFound
		}
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		ID:            uuid.NewString(),
		AppointmentID: s.newID(),
		DoctorID:      strings.TrimSpace(in.DoctorID),
		ParentDetails: ParentDetails{
			Username: parent.Username,
			Email:    parent.Email,
			Phone:    parent.Phone,
			City:     parent.City,
		},
		PetDetails: PetDetails{
			PetType:     strings.TrimSpace(in.PetType),
			PetName:     strings.TrimSpace(in.PetName),
			Age:         in.Age,
			Weight:      in.Weight,
			Gender:      strings.TrimSpace(in.Gender),
			Friendly:    in.Friendly,
			HumanSafety: in.HumanSafety,
			Allergies:   strings.TrimSpace(in.Allergies),
		},
		Date:      in.Date,
		Time:      strings.TrimSpace(in.Time),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func validateCreate(in CreateInput) error {
	switch {
	case strings.TrimSpace(in.DoctorID) == "":
		return fmt.Errorf("%w: doctor id is required", ErrInvalidInput)
	case strings.TrimSpace(in.ParentEmail) == "":
		return fmt.Errorf("%w: parent email is required", ErrInvalidInput)
	case strings.TrimSpace(in.PetType) == "":
		return fmt.Errorf("%w: pet type is required", ErrInvalidInput)
	case strings.TrimSpace(in.PetName) == "":
		return fmt.Errorf("%w: pet name is required", ErrInvalidInput)
	case in.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	case in.Weight <= 0:
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	case strings.TrimSpace(in.Gender) == "":
		return fmt.Errorf("%w: gender is required", ErrInvalidInput)
	case in.Date.IsZero():
		return fmt.Errorf("%w: appointment date is required", ErrInvalidInput)
	case strings.TrimSpace(in.Time) == "":
		return fmt.Errorf("%w: appointment time is required", ErrInvalidInput)
	}
	return nil
}

// Confirm pasa la cita a Approved sin mirar el estado actual:
// confirmar dos veces es idempotente, y confirmar una denegada
// la aprueba (último write gana).
func (s *Service) Confirm(ctx context.Context, appointmentID string) (Appointment, error) {
	return s.setStatus(ctx, appointmentID, StatusApproved)
}

// Deny es simétrico a Confirm.
func (s *Service) Deny(ctx context.Context, appointmentID string) (Appointment, error) {
	return s.setStatus(ctx, appointmentID, StatusDenied)
}

func (s *Service) setStatus(ctx context.Context, appointmentID string, st Status) (Appointment, error) {
	a, err := s.repo.GetByAppointmentID(ctx, strings.TrimSpace(appointmentID))
	if err != nil {
		return Appointment{}, err
	}

	a.Status = st
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// AttachPrescription sobreescribe la receta, sin precondición de estado.
// Texto vacío la limpia; se puede reescribir las veces que haga falta.
func (s *Service) AttachPrescription(ctx context.Context, appointmentID, text string) (Appointment, error) {
	a, err := s.repo.GetByAppointmentID(ctx, strings.TrimSpace(appointmentID))
	if err != nil {
		return Appointment{}, err
	}

	a.PetDetails.Prescription = text
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByAppointmentID(ctx context.Context, appointmentID string) (Appointment, error) {
	return s.repo.GetByAppointmentID(ctx, strings.TrimSpace(appointmentID))
}

func (s *Service) ListAll(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID string) ([]Appointment, error) {
	return s.repo.ListByDoctor(ctx, strings.TrimSpace(doctorID))
}

func (s *Service) ListByParentEmail(ctx context.Context, email string) ([]Appointment, error) {
	// Matchea contra el snapshot: refleja el email al momento de reservar.
	return s.repo.ListByParentEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) SearchByPetName(ctx context.Context, pattern string) ([]Appointment, error) {
	return s.repo.SearchByPetName(ctx, strings.TrimSpace(pattern))
}

// ListWithPrescription es la vista "pet history" del doctor: citas con
// receta no vacía, opcionalmente filtradas por doctor.
func (s *Service) ListWithPrescription(ctx context.Context, doctorID string) ([]Appointment, error) {
	doctorID = strings.TrimSpace(doctorID)

	var (
		items []Appointment
		err   error
	)
	if doctorID == "" {
		items, err = s.repo.List(ctx)
	} else {
		items, err = s.repo.ListByDoctor(ctx, doctorID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Appointment, 0, len(items))
	for _, a := range items {
		if a.PetDetails.Prescription != "" {
			out = append(out, a)
		}
	}
	return out, nil
}

// PetDetailsByName devuelve los pet details de todas las citas cuya
// mascota tiene exactamente ese nombre.
func (s *Service) PetDetailsByName(ctx context.Context, petName string) ([]PetDetails, error) {
	items, err := s.repo.ListByExactPetName(ctx, strings.TrimSpace(petName))
	if err != nil {
		return nil, err
	}

	out := make([]PetDetails, 0, len(items))
	for _, a := range items {
		out = append(out, a.PetDetails)
	}
	return out, nil
}

type PetDetailsPatch struct {
	// Punteros para PATCH real: nil = no tocar.
	PetType     *string
	Age         *int
	Weight      *float64
	Gender      *string
	Friendly    *bool
	HumanSafety *bool
	Allergies   *string
}

// UpdatePetDetailsByName aplica el patch a TODAS las citas cuya mascota
// se llama petName y devuelve cuántas tocó. El nombre no es único:
// esto es un broadcast asumido, no un update de registro individual.
func (s *Service) UpdatePetDetailsByName(ctx context.Context, petName string, patch PetDetailsPatch) (int, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return 0, fmt.Errorf("%w: pet name is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByExactPetName(ctx, petName)
	if err != nil {
		return 0, err
	}

	now := s.now()
	updated := 0
	for _, a := range items {
		applyPetPatch(&a.PetDetails, patch)
		a.UpdatedAt = now
		if err := s.repo.Update(ctx, a); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func applyPetPatch(pd *PetDetails, patch PetDetailsPatch) {
	if patch.PetType != nil {
		pd.PetType = strings.TrimSpace(*patch.PetType)
	}
	if patch.Age != nil {
		pd.Age = *patch.Age
	}
	if patch.Weight != nil {
		pd.Weight = *patch.Weight
	}
	if patch.Gender != nil {
		pd.Gender = strings.TrimSpace(*patch.Gender)
	}
	if patch.Friendly != nil {
		pd.Friendly = *patch.Friendly
	}
	if patch.HumanSafety != nil {
		pd.HumanSafety = *patch.HumanSafety
	}
	if patch.Allergies != nil {
		pd.Allergies = strings.TrimSpace(*patch.Allergies)
	}
}
