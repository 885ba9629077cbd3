package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment is the stored booking row
type Appointment struct {
	ID              int64             `db:"id" json:"appointmentId"`
	UserID          int64             `db:"user_id" json:"userId"`
	DoctorID        int64             `db:"doctor_id" json:"-"`
	AppointmentTime time.Time         `db:"appointment_time" json:"appointmentDateTime"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Reason          *string           `db:"reason" json:"reason,omitempty"`
	Amount          *float64          `db:"amount" json:"amount,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updatedAt"`
}

// AppointmentRecord is the enriched projection returned to clients,
// joining in the doctor and patient display fields.
type AppointmentRecord struct {
	AppointmentID   int64             `db:"appointment_id" json:"appointmentId"`
	UserID          int64             `db:"user_id" json:"userId"`
	UserName        string            `db:"user_name" json:"userName"`
	UserEmail       string            `db:"user_email" json:"userEmail"`
	UserPhone       *string           `db:"user_phone" json:"userPhone,omitempty"`
	DoctorNumericID int64             `db:"doctor_id" json:"-"`
	DoctorID        string            `db:"-" json:"doctorId"`
	DoctorName      string            `db:"doctor_name" json:"doctorName"`
	AppointmentTime time.Time         `db:"appointment_time" json:"appointmentDateTime"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Reason          *string           `db:"reason" json:"reason,omitempty"`
	Amount          *float64          `db:"amount" json:"amount,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updatedAt"`
}

// Normalize fills the prefixed doctor id form after a row scan
func (r *AppointmentRecord) Normalize() {
	r.DoctorID = FormatDoctorID(r.DoctorNumericID)
}

// BookAppointmentRequest is the booking payload. DoctorID accepts the
// prefixed string form ("doc1") and the bare numeric form ("1").
type BookAppointmentRequest struct {
	UserID              int64     `json:"userId" binding:"required"`
	DoctorID            string    `json:"doctorId" binding:"required"`
	AppointmentDateTime time.Time `json:"appointmentDateTime" binding:"required"`
	Reason              string    `json:"reason" binding:"max=500"`
}

// UpdateAppointmentRequest is a full-record replace. UpdatedAt carries the
// version the client last read; a stale value is rejected as a conflict.
type UpdateAppointmentRequest struct {
	AppointmentID       int64             `json:"appointmentId" binding:"required"`
	AppointmentDateTime time.Time         `json:"appointmentDateTime" binding:"required"`
	Status              AppointmentStatus `json:"status" binding:"required,oneof=Scheduled Completed Cancelled"`
	Reason              *string           `json:"reason"`
	UpdatedAt           time.Time         `json:"updatedAt" binding:"required"`
}
