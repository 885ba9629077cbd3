package prescription

import (
	"context"
	"errors"

	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/internal/repository"
	apperrors "github.com/clinicly/booking-api/pkg/errors"
)

type Service struct {
	prescriptions repository.PrescriptionRepository
	appointments  repository.AppointmentRepository
}

func NewService(prescriptions repository.PrescriptionRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{
		prescriptions: prescriptions,
		appointments:  appointments,
	}
}

// Create attaches medication/dosage text to an existing appointment
func (s *Service) Create(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.PrescriptionRecord, error) {
	apt, err := s.appointments.GetRecord(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.BadRequest("invalid appointment", err)
		}
		return nil, apperrors.Internal(err)
	}

	p := &model.Prescription{
		AppointmentID: req.AppointmentID,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.PrescriptionRecord{
		PrescriptionID: p.ID,
		Medication:     p.Medication,
		Dosage:         p.Dosage,
		AppointmentID:  p.AppointmentID,
		DoctorName:     apt.DoctorName,
		PatientName:    apt.UserName,
	}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.PrescriptionRecord, error) {
	record, err := s.prescriptions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("prescription", err)
		}
		return nil, apperrors.Internal(err)
	}
	return record, nil
}

func (s *Service) List(ctx context.Context) ([]*model.PrescriptionRecord, error) {
	records, err := s.prescriptions.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}

func (s *Service) ListForPatient(ctx context.Context, userID int64) ([]*model.PrescriptionRecord, error) {
	records, err := s.prescriptions.ListForPatient(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePrescriptionRequest) error {
	p := &model.Prescription{
		ID:         id,
		Medication: req.Medication,
		Dosage:     req.Dosage,
	}
	if err := s.prescriptions.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("prescription", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.prescriptions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("prescription", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}
