package postgres

import (
	"context"
	"fmt"

	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/internal/repository"
)

const prescriptionColumns = `
	p.id AS prescription_id,
	p.medication,
	p.dosage,
	p.appointment_id,
	d.name AS doctor_name,
	u.name AS patient_name
`

const prescriptionJoins = `
	FROM prescriptions p
	JOIN appointments a ON a.id = p.appointment_id
	JOIN doctors d ON d.id = a.doctor_id
	JOIN users u ON u.id = a.user_id
`

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (appointment_id, medication, dosage)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query, p.AppointmentID, p.Medication, p.Dosage).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.PrescriptionRecord, error) {
	query := `SELECT ` + prescriptionColumns + prescriptionJoins + ` WHERE p.id = $1`

	var record model.PrescriptionRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &record, nil
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.PrescriptionRecord, error) {
	query := `SELECT ` + prescriptionColumns + prescriptionJoins + ` ORDER BY p.id DESC`

	var records []*model.PrescriptionRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return records, nil
}

func (r *prescriptionRepository) ListForPatient(ctx context.Context, userID int64) ([]*model.PrescriptionRecord, error) {
	query := `SELECT ` + prescriptionColumns + prescriptionJoins + ` WHERE a.user_id = $1 ORDER BY p.id DESC`

	var records []*model.PrescriptionRecord
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list patient prescriptions: %w", err)
	}
	return records, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, p *model.Prescription) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE prescriptions SET medication = $1, dosage = $2 WHERE id = $3`,
		p.Medication, p.Dosage, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
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

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
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
