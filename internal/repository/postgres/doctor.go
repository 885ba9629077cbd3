package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/internal/repository"
)

const doctorColumns = `
	id, name, email, phone, password_hash, specialization, degree,
	experience, about, fees, address_line1, address_line2, image_url,
	is_available, created_at, updated_at
`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			name, email, phone, password_hash, specialization, degree,
			experience, about, fees, address_line1, address_line2, image_url,
			is_available, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	doctor.CreatedAt = time.Now().UTC()
	doctor.UpdatedAt = doctor.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.Phone,
		doctor.PasswordHash,
		doctor.Specialization,
		doctor.Degree,
		doctor.Experience,
		doctor.About,
		doctor.Fees,
		doctor.AddressLine1,
		doctor.AddressLine2,
		doctor.ImageURL,
		doctor.IsAvailable,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	).Scan(&doctor.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE email = $1`

	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, email); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}

// Update replaces the profile fields; email and password_hash are managed by
// the auth flows and left alone here.
func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, phone = $2, specialization = $3, degree = $4,
			experience = $5, about = $6, fees = $7, address_line1 = $8,
			address_line2 = $9, image_url = $10, is_available = $11,
			updated_at = $12
		WHERE id = $13
	`
	doctor.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Name,
		doctor.Phone,
		doctor.Specialization,
		doctor.Degree,
		doctor.Experience,
		doctor.About,
		doctor.Fees,
		doctor.AddressLine1,
		doctor.AddressLine2,
		doctor.ImageURL,
		doctor.IsAvailable,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *doctorRepository) ListAvailable(ctx context.Context, speciality string) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE is_available = TRUE`
	args := []interface{}{}

	if speciality != "" {
		query += ` AND specialization = $1`
		args = append(args, speciality)
	}

	query += ` ORDER BY name ASC`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
