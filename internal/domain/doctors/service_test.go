package doctors

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byDoctorID map[string]Registration
	byEmail    map[string]Registration
}

func newTestRepo() *testRepo {
	return &testRepo{
		byDoctorID: map[string]Registration{},
		byEmail:    map[string]Registration{},
	}
}

func (r *testRepo) Create(ctx context.Context, reg Registration) error {
	if reg.ID == "" {
		return errors.New("repo: id required")
	}
	r.byDoctorID[reg.DoctorID] = reg
	r.byEmail[reg.Email] = reg
	return nil
}

func (r *testRepo) GetByDoctorID(ctx context.Context, doctorID string) (Registration, error) {
	reg, ok := r.byDoctorID[doctorID]
	if !ok {
		return Registration{}, ErrNotFound
	}
	return reg, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (Registration, error) {
	reg, ok := r.byEmail[email]
	if !ok {
		return Registration{}, ErrNotFound
	}
	return reg, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_OK(t *testing.T) {
	svc := NewService(newTestRepo())

	reg, err := svc.Register(context.Background(), "D100", "doc@vet.test")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.ID == "" {
		t.Fatal("expected generated id")
	}
	if reg.DoctorID != "D100" || reg.Email != "doc@vet.test" {
		t.Fatalf("unexpected registration: %+v", reg)
	}
}

func TestService_Register_ConflictOnDoctorID(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), "D100", "a@vet.test"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "D100", "b@vet.test")
	if !errors.Is(err, ErrDoctorIDTaken) {
		t.Fatalf("expected ErrDoctorIDTaken, got %v", err)
	}
}

func TestService_Register_ConflictOnEmail(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), "D100", "a@vet.test"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "D200", "a@vet.test")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Register_RejectsEmptyFields(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), "", "a@vet.test"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty doctor id, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "D100", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty email, got %v", err)
	}
}

func TestService_IsRegistered_RequiresExactEmailMatch(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), "D100", "doc@vet.test"); err != nil {
		t.Fatalf("register: %v", err)
	}

	ok, err := svc.IsRegistered(context.Background(), "D100", "doc@vet.test")
	if err != nil || !ok {
		t.Fatalf("expected registered pair, got ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsRegistered(context.Background(), "D100", "other@vet.test")
	if err != nil || ok {
		t.Fatalf("expected mismatch for wrong email, got ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsRegistered(context.Background(), "D999", "doc@vet.test")
	if err != nil || ok {
		t.Fatalf("expected mismatch for unknown doctor id, got ok=%v err=%v", ok, err)
	}
}

func TestService_Validate(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), "D100", "doc@vet.test"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Validate(context.Background(), "D100"); err != nil {
		t.Fatalf("expected valid doctor id, got %v", err)
	}
	if err := svc.Validate(context.Background(), "D999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
