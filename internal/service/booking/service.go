package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicly/booking-api/internal/email"
	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/internal/repository"
	apperrors "github.com/clinicly/booking-api/pkg/errors"
	"github.com/clinicly/booking-api/pkg/metrics"
)

const notifyTimeout = 10 * time.Second

// Service is the booking engine: it validates a requested slot against
// existing appointments, enforces the no-double-booking invariant and
// persists the booking.
type Service struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	users        repository.UserRepository
	notifier     email.Service
	metrics      *metrics.Metrics
}

func NewService(
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	users repository.UserRepository,
	notifier email.Service,
	m *metrics.Metrics,
) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		users:        users,
		notifier:     notifier,
		metrics:      m,
	}
}

// Book validates the (doctor, patient, slot) triple and creates the
// appointment. Precondition order matters: doctor existence, then patient
// existence, then slot availability, each with its own failure mode.
func (s *Service) Book(ctx context.Context, userID, doctorID int64, at time.Time, reason string) (*model.AppointmentRecord, error) {
	start := time.Now()

	doctor, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Internal(err)
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}

	fee := doctor.Fees
	apt := &model.Appointment{
		UserID:          userID,
		DoctorID:        doctorID,
		AppointmentTime: at.UTC(),
		Status:          model.AppointmentStatusScheduled,
		Amount:          &fee,
	}
	if reason != "" {
		apt.Reason = &reason
	}

	if err := s.appointments.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.BadRequest("this time slot is already booked", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.metrics.BookingsCreated.Inc()
	s.metrics.BookingLatency.Observe(time.Since(start).Seconds())
	s.notifyBooked(user, doctor, apt)

	record := &model.AppointmentRecord{
		AppointmentID:   apt.ID,
		UserID:          user.ID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		UserPhone:       user.Phone,
		DoctorNumericID: doctor.ID,
		DoctorName:      doctor.Name,
		AppointmentTime: apt.AppointmentTime,
		Status:          apt.Status,
		Reason:          apt.Reason,
		Amount:          apt.Amount,
		CreatedAt:       apt.CreatedAt,
		UpdatedAt:       apt.UpdatedAt,
	}
	record.Normalize()
	return record, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.AppointmentRecord, error) {
	record, err := s.appointments.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Internal(err)
	}
	return record, nil
}

func (s *Service) List(ctx context.Context) ([]*model.AppointmentRecord, error) {
	records, err := s.appointments.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID int64) ([]*model.AppointmentRecord, error) {
	records, err := s.appointments.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}

func (s *Service) ListForPatient(ctx context.Context, userID int64) ([]*model.AppointmentRecord, error) {
	records, err := s.appointments.ListForPatient(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}

// Update is a full-record replace guarded by the updated_at version the
// client last read. A stale version is a conflict, not a not-found.
func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) error {
	if req.AppointmentID != id {
		return apperrors.BadRequest("appointment ID mismatch", nil)
	}

	current, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return apperrors.Internal(err)
	}

	current.AppointmentTime = req.AppointmentDateTime.UTC()
	current.Status = req.Status
	current.Reason = req.Reason

	if err := s.appointments.Update(ctx, current, req.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return apperrors.NotFound("appointment", err)
		case errors.Is(err, repository.ErrStaleRecord):
			return apperrors.Conflict("appointment was modified concurrently", err)
		case errors.Is(err, repository.ErrSlotTaken):
			return apperrors.BadRequest("this time slot is already booked", err)
		default:
			return apperrors.Internal(err)
		}
	}
	return nil
}

// Cancel removes the appointment row outright; a repeated cancel of the
// same id reports not-found.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	record, err := s.appointments.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return apperrors.Internal(err)
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return apperrors.Internal(err)
	}

	s.metrics.BookingsCancelled.Inc()
	s.notifyCancelled(record)
	return nil
}

// Notifications are best-effort and never block or fail the request.
func (s *Service) notifyBooked(user *model.User, doctor *model.Doctor, apt *model.Appointment) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.SendBookingConfirmation(ctx, user.Email, user.Name, doctor.Name, apt.AppointmentTime); err != nil {
			s.metrics.NotificationErrors.Inc()
			log.Error().Err(err).Int64("appointment_id", apt.ID).Msg("failed to send booking confirmation")
		}
	}()
}

func (s *Service) notifyCancelled(record *model.AppointmentRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.SendBookingCancellation(ctx, record.UserEmail, record.UserName, record.DoctorName, record.AppointmentTime); err != nil {
			s.metrics.NotificationErrors.Inc()
			log.Error().Err(err).Int64("appointment_id", record.AppointmentID).Msg("failed to send cancellation notice")
		}
	}()
}
