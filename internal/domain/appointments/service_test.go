package appointments

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-appointments/internal/domain/users"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byAppointmentID map[string]Appointment
	writes          int
}

func newTestRepo() *testRepo {
	return &testRepo{byAppointmentID: map[string]Appointment{}}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	r.writes++
	r.byAppointmentID[a.AppointmentID] = a
	return nil
}

func (r *testRepo) GetByAppointmentID(ctx context.Context, appointmentID string) (Appointment, error) {
	a, ok := r.byAppointmentID[appointmentID]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) Update(ctx context.Context, a Appointment) error {
	r.writes++
	if _, ok := r.byAppointmentID[a.AppointmentID]; !ok {
		return ErrNotFound
	}
	r.byAppointmentID[a.AppointmentID] = a
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Appointment, error) {
	out := make([]Appointment, 0, len(r.byAppointmentID))
	for _, a := range r.byAppointmentID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) ListByDoctor(ctx context.Context, doctorID string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byAppointmentID {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListByParentEmail(ctx context.Context, email string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byAppointmentID {
		if a.ParentDetails.Email == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) SearchByPetName(ctx context.Context, pattern string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byAppointmentID {
		if strings.Contains(strings.ToLower(a.PetDetails.PetName), strings.ToLower(pattern)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListByExactPetName(ctx context.Context, petName string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byAppointmentID {
		if a.PetDetails.PetName == petName {
			out = append(out, a)
		}
	}
	return out, nil
}

// -------------------------
// Parent directory stub
// -------------------------

type testDirectory struct {
	byEmail map[string]users.User
}

func (d *testDirectory) FindByEmail(ctx context.Context, email string) (users.User, error) {
	u, ok := d.byEmail[email]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	dir := &testDirectory{byEmail: map[string]users.User{
		"alice@example.com": {
			ID:       "u-alice",
			Username: "alice",
			Email:    "alice@example.com",
			Role:     users.RolePetParent,
			Phone:    "555-0100",
			City:     "Lima",
		},
	}}
	return NewService(repo, dir), repo
}

func validCreateInput() CreateInput {
	return CreateInput{
		DoctorID:    "D100",
		ParentEmail: "alice@example.com",
		PetType:     "dog",
		PetName:     "Buddy",
		Age:         3,
		Weight:      20,
		Gender:      "male",
		Date:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:        "10:30",
	}
}

// -------------------------
// Tests
// -------------------------

func TestNewAppointmentID_FormatAndUniqueness(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{6}$`)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewAppointmentID()
		require.Regexp(t, re, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q after %d generations", id, i)
		seen[id] = struct{}{}
	}
}

func TestService_Create_SnapshotsParentAndStartsPending(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, a.Status)
	assert.Regexp(t, `^[0-9a-f]{6}$`, a.AppointmentID)
	assert.Equal(t, "D100", a.DoctorID)
	assert.Equal(t, ParentDetails{
		Username: "alice",
		Email:    "alice@example.com",
		Phone:    "555-0100",
		City:     "Lima",
	}, a.ParentDetails)
	assert.Empty(t, a.PetDetails.Prescription)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestService_Create_UnknownParent_NoWrite(t *testing.T) {
	svc, repo := newTestService()

	in := validCreateInput()
	in.ParentEmail = "ghost@example.com"

	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrParentNotFound)
	assert.Zero(t, repo.writes, "a failed lookup must not persist anything")
}

func TestService_Create_Validation(t *testing.T) {
	svc, repo := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing doctor id", func(in *CreateInput) { in.DoctorID = " " }},
		{"missing parent email", func(in *CreateInput) { in.ParentEmail = "" }},
		{"missing pet type", func(in *CreateInput) { in.PetType = "" }},
		{"missing pet name", func(in *CreateInput) { in.PetName = "" }},
		{"zero age", func(in *CreateInput) { in.Age = 0 }},
		{"zero weight", func(in *CreateInput) { in.Weight = 0 }},
		{"missing gender", func(in *CreateInput) { in.Gender = "" }},
		{"missing date", func(in *CreateInput) { in.Date = time.Time{} }},
		{"missing time", func(in *CreateInput) { in.Time = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, repo.writes)
}

func TestService_ConfirmThenDeny_LastWriteWins(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, a.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, confirmed.Status)

	denied, err := svc.Deny(ctx, a.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, denied.Status)

	got, err := svc.GetByAppointmentID(ctx, a.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, got.Status)
}

func TestService_Confirm_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	first, err := svc.Confirm(ctx, a.AppointmentID)
	require.NoError(t, err)
	second, err := svc.Confirm(ctx, a.AppointmentID)
	require.NoError(t, err)

	// Idéntico salvo timestamps
	first.UpdatedAt = time.Time{}
	second.UpdatedAt = time.Time{}
	assert.Equal(t, first, second)
	assert.Equal(t, StatusApproved, second.Status)
}

func TestService_Confirm_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Confirm(context.Background(), "ffffff")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Deny(context.Background(), "ffffff")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_AttachPrescription_AndPetHistory(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	// Antes de la receta, pet history no la incluye
	hist, err := svc.ListWithPrescription(ctx, "D100")
	require.NoError(t, err)
	assert.Empty(t, hist)

	updated, err := svc.AttachPrescription(ctx, a.AppointmentID, "Amoxicillin 250mg")
	require.NoError(t, err)
	assert.Equal(t, "Amoxicillin 250mg", updated.PetDetails.Prescription)

	hist, err = svc.ListWithPrescription(ctx, "D100")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, a.AppointmentID, hist[0].AppointmentID)

	// Filtrado por otro doctor: fuera
	hist, err = svc.ListWithPrescription(ctx, "D999")
	require.NoError(t, err)
	assert.Empty(t, hist)

	// Sin doctor: vista global
	hist, err = svc.ListWithPrescription(ctx, "")
	require.NoError(t, err)
	assert.Len(t, hist, 1)

	// Receta vacía la limpia y la saca del history
	cleared, err := svc.AttachPrescription(ctx, a.AppointmentID, "")
	require.NoError(t, err)
	assert.Empty(t, cleared.PetDetails.Prescription)

	hist, err = svc.ListWithPrescription(ctx, "D100")
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestService_AttachPrescription_NoStatusPrecondition(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	// Sobre una cita Pending también se puede recetar
	updated, err := svc.AttachPrescription(ctx, a.AppointmentID, "rest and fluids")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status)
}

func TestService_SearchByPetName_CaseInsensitiveSubstring(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, name := range []string{"Rex", "T-Rex", "rex2", "Max"} {
		in := validCreateInput()
		in.PetName = name
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	got, err := svc.SearchByPetName(ctx, "rex")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, a := range got {
		names = append(names, a.PetDetails.PetName)
	}
	assert.ElementsMatch(t, []string{"Rex", "T-Rex", "rex2"}, names)
}

func TestService_ListByParentEmail_MatchesSnapshot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	got, err := svc.ListByParentEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListByParentEmail(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_UpdatePetDetailsByName_Broadcast(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Dos citas del mismo pet, una de otro
	for _, name := range []string{"Buddy", "Buddy", "Max"} {
		in := validCreateInput()
		in.PetName = name
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	weight := 22.5
	allergies := "pollen"
	count, err := svc.UpdatePetDetailsByName(ctx, "Buddy", PetDetailsPatch{
		Weight:    &weight,
		Allergies: &allergies,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	pds, err := svc.PetDetailsByName(ctx, "Buddy")
	require.NoError(t, err)
	require.Len(t, pds, 2)
	for _, pd := range pds {
		assert.Equal(t, 22.5, pd.Weight)
		assert.Equal(t, "pollen", pd.Allergies)
		assert.Equal(t, "Buddy", pd.PetName, "name itself is the key and must not change")
		assert.Equal(t, 3, pd.Age, "untouched fields survive the patch")
	}

	count, err = svc.UpdatePetDetailsByName(ctx, "Nobody", PetDetailsPatch{Weight: &weight})
	require.NoError(t, err)
	assert.Zero(t, count)
}

// Escenario de referencia completo: reservar, confirmar, recetar.
func TestService_EndToEndScenario(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)
	require.Equal(t, StatusPending, a.Status)
	require.Equal(t, "alice@example.com", a.ParentDetails.Email)
	require.NotEmpty(t, a.AppointmentID)

	confirmed, err := svc.Confirm(ctx, a.AppointmentID)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, confirmed.Status)

	prescribed, err := svc.AttachPrescription(ctx, a.AppointmentID, "Amoxicillin 250mg")
	require.NoError(t, err)
	require.Equal(t, "Amoxicillin 250mg", prescribed.PetDetails.Prescription)
	require.Equal(t, StatusApproved, prescribed.Status)
}
