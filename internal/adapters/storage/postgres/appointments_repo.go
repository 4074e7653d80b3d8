package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic-appointments/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

// Snapshot y pet details van aplanados en columnas: son value types
// embebidos en la cita, no relaciones.
const appointmentColumns = `
	id, appointment_id, doctor_id,
	parent_username, parent_email, parent_phone, parent_city,
	pet_type, pet_name, age, weight, gender,
	friendly, human_safety, allergies, prescription,
	appointment_date, appointment_time, status,
	created_at, updated_at
`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`,
		a.ID,
		a.AppointmentID,
		a.DoctorID,
		a.ParentDetails.Username,
		a.ParentDetails.Email,
		a.ParentDetails.Phone,
		a.ParentDetails.City,
		a.PetDetails.PetType,
		a.PetDetails.PetName,
		a.PetDetails.Age,
		a.PetDetails.Weight,
		a.PetDetails.Gender,
		a.PetDetails.Friendly,
		a.PetDetails.HumanSafety,
		a.PetDetails.Allergies,
		a.PetDetails.Prescription,
		a.Date,
		a.Time,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) GetByAppointmentID(ctx context.Context, appointmentID string) (appointments.Appointment, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE appointment_id = $1
	`, appointmentID)
	return scanAppointment(row)
}

// Update nunca toca appointment_id ni created_at: el id público es
// inmutable desde la creación.
func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			doctor_id = $2,
			pet_type = $3,
			pet_name = $4,
			age = $5,
			weight = $6,
			gender = $7,
			friendly = $8,
			human_safety = $9,
			allergies = $10,
			prescription = $11,
			appointment_date = $12,
			appointment_time = $13,
			status = $14,
			updated_at = $15
		WHERE appointment_id = $1
	`,
		a.AppointmentID,
		a.DoctorID,
		a.PetDetails.PetType,
		a.PetDetails.PetName,
		a.PetDetails.Age,
		a.PetDetails.Weight,
		a.PetDetails.Gender,
		a.PetDetails.Friendly,
		a.PetDetails.HumanSafety,
		a.PetDetails.Allergies,
		a.PetDetails.Prescription,
		a.Date,
		a.Time,
		a.Status,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.list(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		ORDER BY created_at ASC
	`)
}

func (r *AppointmentsRepo) ListByDoctor(ctx context.Context, doctorID string) ([]appointments.Appointment, error) {
	return r.list(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY created_at ASC
	`, doctorID)
}

func (r *AppointmentsRepo) ListByParentEmail(ctx context.Context, email string) ([]appointments.Appointment, error) {
	return r.list(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE parent_email = $1
		ORDER BY created_at ASC
	`, email)
}

func (r *AppointmentsRepo) SearchByPetName(ctx context.Context, pattern string) ([]appointments.Appointment, error) {
	return r.list(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE pet_name ILIKE '%' || $1 || '%'
		ORDER BY created_at ASC
	`, pattern)
}

func (r *AppointmentsRepo) ListByExactPetName(ctx context.Context, petName string) ([]appointments.Appointment, error) {
	return r.list(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE pet_name = $1
		ORDER BY created_at ASC
	`, petName)
}

func (r *AppointmentsRepo) list(ctx context.Context, query string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	if err := row.Scan(
		&a.ID,
		&a.AppointmentID,
		&a.DoctorID,
		&a.ParentDetails.Username,
		&a.ParentDetails.Email,
		&a.ParentDetails.Phone,
		&a.ParentDetails.City,
		&a.PetDetails.PetType,
		&a.PetDetails.PetName,
		&a.PetDetails.Age,
		&a.PetDetails.Weight,
		&a.PetDetails.Gender,
		&a.PetDetails.Friendly,
		&a.PetDetails.HumanSafety,
		&a.PetDetails.Allergies,
		&a.PetDetails.Prescription,
		&a.Date,
		&a.Time,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}
