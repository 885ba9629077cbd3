package email

import (
	"context"
	"time"
)

// Service sends booking lifecycle notifications to patients
type Service interface {
	SendBookingConfirmation(ctx context.Context, to, patientName, doctorName string, at time.Time) error
	SendBookingCancellation(ctx context.Context, to, patientName, doctorName string, at time.Time) error
}

// NoopService drops all mail; used when SMTP is not configured
type NoopService struct{}

func (NoopService) SendBookingConfirmation(ctx context.Context, to, patientName, doctorName string, at time.Time) error {
	return nil
}

func (NoopService) SendBookingCancellation(ctx context.Context, to, patientName, doctorName string, at time.Time) error {
	return nil
}
