package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/clinicly/booking-api/internal/config"
)

type gomailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailService builds an SMTP-backed sender
func NewGomailService(cfg config.SMTPConfig) Service {
	return &gomailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *gomailService) SendBookingConfirmation(ctx context.Context, to, patientName, doctorName string, at time.Time) error {
	subject := "Your appointment is confirmed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour appointment with %s on %s has been booked.\n\nClinicly",
		patientName, doctorName, at.Format("Mon, 02 Jan 2006 15:04 MST"),
	)
	return s.send(to, subject, body)
}

func (s *gomailService) SendBookingCancellation(ctx context.Context, to, patientName, doctorName string, at time.Time) error {
	subject := "Your appointment was cancelled"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour appointment with %s on %s has been cancelled.\n\nClinicly",
		patientName, doctorName, at.Format("Mon, 02 Jan 2006 15:04 MST"),
	)
	return s.send(to, subject, body)
}

func (s *gomailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
