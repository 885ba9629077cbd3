package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/internal/repository"
)

const recordColumns = `
	a.id AS appointment_id,
	a.user_id,
	u.name AS user_name,
	u.email AS user_email,
	u.phone AS user_phone,
	a.doctor_id,
	d.name AS doctor_name,
	a.appointment_time,
	a.status,
	a.reason,
	a.amount,
	a.created_at,
	a.updated_at
`

// Create runs the conflict check and the insert in one transaction. The
// partial unique index on (doctor_id, appointment_time) backs it up under
// concurrent load: a losing racer gets a unique violation, which is mapped
// to the same ErrSlotTaken the explicit check produces.
func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var taken bool
	err = tx.GetContext(ctx, &taken, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			AND appointment_time = $2
			AND status <> 'Cancelled'
		)
	`, apt.DoctorID, apt.AppointmentTime)
	if err != nil {
		return fmt.Errorf("failed to check slot availability: %w", err)
	}
	if taken {
		return repository.ErrSlotTaken
	}

	apt.CreatedAt = time.Now().UTC()
	apt.UpdatedAt = apt.CreatedAt

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO appointments (
			user_id, doctor_id, appointment_time, status, reason, amount,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		apt.UserID,
		apt.DoctorID,
		apt.AppointmentTime,
		apt.Status,
		apt.Reason,
		apt.Amount,
		apt.CreatedAt,
		apt.UpdatedAt,
	).Scan(&apt.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to commit appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, user_id, doctor_id, appointment_time, status, reason,
			   amount, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) GetRecord(ctx context.Context, id int64) (*model.AppointmentRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	var record model.AppointmentRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment record: %w", err)
	}
	record.Normalize()
	return &record, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.AppointmentRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN users u ON u.id = a.user_id
		ORDER BY a.appointment_time DESC
	`
	var records []*model.AppointmentRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	for _, record := range records {
		record.Normalize()
	}
	return records, nil
}

func (r *appointmentRepository) ListForDoctor(ctx context.Context, doctorID int64) ([]*model.AppointmentRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN users u ON u.id = a.user_id
		WHERE a.doctor_id = $1
		ORDER BY a.appointment_time DESC
	`
	var records []*model.AppointmentRecord
	if err := r.db.SelectContext(ctx, &records, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	for _, record := range records {
		record.Normalize()
	}
	return records, nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, userID int64) ([]*model.AppointmentRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.appointment_time DESC
	`
	var records []*model.AppointmentRecord
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	for _, record := range records {
		record.Normalize()
	}
	return records, nil
}

// Update is an optimistic full-record replace: the row is only touched when
// updated_at still matches what the caller last read.
func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment, expectedVersion time.Time) error {
	query := `
		UPDATE appointments
		SET appointment_time = $1, status = $2, reason = $3, updated_at = $4
		WHERE id = $5 AND updated_at = $6
	`
	apt.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		apt.AppointmentTime,
		apt.Status,
		apt.Reason,
		apt.UpdatedAt,
		apt.ID,
		expectedVersion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, apt.ID); err != nil {
			return fmt.Errorf("failed to check appointment existence: %w", err)
		}
		if exists {
			return repository.ErrStaleRecord
		}
		return repository.ErrNotFound
	}

	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
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
