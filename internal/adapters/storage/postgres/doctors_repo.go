package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic-appointments/internal/domain/doctors"
)

type DoctorsRepo struct {
	db *sql.DB
}

func NewDoctorsRepo(db *sql.DB) *DoctorsRepo {
	return &DoctorsRepo{db: db}
}

func (r *DoctorsRepo) Create(ctx context.Context, reg doctors.Registration) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO doctor_registrations (id, doctor_id, email, created_at)
		VALUES ($1,$2,$3,$4)
	`,
		reg.ID,
		reg.DoctorID,
		reg.Email,
		reg.CreatedAt,
	)
	return err
}

func (r *DoctorsRepo) GetByDoctorID(ctx context.Context, doctorID string) (doctors.Registration, error) {
	doctorID = strings.TrimSpace(doctorID)
	if doctorID == "" {
		return doctors.Registration{}, doctors.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, doctor_id, email, created_at
		FROM doctor_registrations
		WHERE doctor_id = $1
	`, doctorID)
	return scanRegistration(row)
}

func (r *DoctorsRepo) GetByEmail(ctx context.Context, email string) (doctors.Registration, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return doctors.Registration{}, doctors.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, doctor_id, email, created_at
		FROM doctor_registrations
		WHERE email = $1
	`, email)
	return scanRegistration(row)
}

func scanRegistration(row rowScanner) (doctors.Registration, error) {
	var reg doctors.Registration
	if err := row.Scan(
		&reg.ID,
		&reg.DoctorID,
		&reg.Email,
		&reg.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return doctors.Registration{}, doctors.ErrNotFound
		}
		return doctors.Registration{}, err
	}
	return reg, nil
}
