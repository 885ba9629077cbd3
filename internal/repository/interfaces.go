package repository

import (
	"context"
	"errors"
	"time"

	"github.com/clinicly/booking-api/internal/model"
)

// Sentinel errors shared by all repository implementations. Services map
// these onto the API error taxonomy.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrSlotTaken      = errors.New("time slot already booked")
	ErrStaleRecord    = errors.New("record was modified concurrently")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
	ListAvailable(ctx context.Context, speciality string) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
}

type AppointmentRepository interface {
	// Create inserts the appointment unless a non-cancelled appointment
	// already occupies the (doctor, time) slot; returns ErrSlotTaken then.
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	GetRecord(ctx context.Context, id int64) (*model.AppointmentRecord, error)
	List(ctx context.Context) ([]*model.AppointmentRecord, error)
	ListForDoctor(ctx context.Context, doctorID int64) ([]*model.AppointmentRecord, error)
	ListForPatient(ctx context.Context, userID int64) ([]*model.AppointmentRecord, error)
	// Update replaces the mutable fields; expectedVersion is the updated_at
	// value the caller last read. Returns ErrStaleRecord on version mismatch.
	Update(ctx context.Context, apt *model.Appointment, expectedVersion time.Time) error
	Delete(ctx context.Context, id int64) error
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	Get(ctx context.Context, id int64) (*model.PrescriptionRecord, error)
	List(ctx context.Context) ([]*model.PrescriptionRecord, error)
	ListForPatient(ctx context.Context, userID int64) ([]*model.PrescriptionRecord, error)
	Update(ctx context.Context, p *model.Prescription) error
	Delete(ctx context.Context, id int64) error
}

// TokenStore tracks revoked token ids until they would have expired anyway
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
