package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const doctorIDPrefix = "doc"

// Doctor represents a doctor account
type Doctor struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	Degree         *string   `db:"degree" json:"degree,omitempty"`
	Experience     *string   `db:"experience" json:"experience,omitempty"`
	About          *string   `db:"about" json:"about,omitempty"`
	Fees           float64   `db:"fees" json:"fees"`
	AddressLine1   *string   `db:"address_line1" json:"address_line1,omitempty"`
	AddressLine2   *string   `db:"address_line2" json:"address_line2,omitempty"`
	ImageURL       *string   `db:"image_url" json:"image,omitempty"`
	IsAvailable    bool      `db:"is_available" json:"is_available"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateDoctorRequest replaces a doctor's profile fields. Email and password
// are managed through the auth flows and stay untouched.
type UpdateDoctorRequest struct {
	Name           string  `json:"name" binding:"required"`
	Phone          string  `json:"phone"`
	Specialization string  `json:"specialization" binding:"required"`
	Degree         string  `json:"degree"`
	Experience     string  `json:"experience"`
	About          string  `json:"about"`
	Fees           float64 `json:"fees" binding:"gte=0"`
	AddressLine1   string  `json:"addressLine1"`
	AddressLine2   string  `json:"addressLine2"`
	Image          string  `json:"image"`
	IsAvailable    bool    `json:"isAvailable"`
}

// DoctorAddress is the nested address block the frontend expects
type DoctorAddress struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// DoctorSummary is the public projection of a doctor, using the
// prefixed id form the frontend works with.
type DoctorSummary struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	Speciality  string        `json:"speciality"`
	Degree      string        `json:"degree,omitempty"`
	Experience  string        `json:"experience,omitempty"`
	About       string        `json:"about,omitempty"`
	Fees        float64       `json:"fees"`
	Address     DoctorAddress `json:"address"`
	Image       string        `json:"image,omitempty"`
	IsAvailable bool          `json:"isAvailable"`
}

// Summary builds the public projection of the doctor
func (d *Doctor) Summary() DoctorSummary {
	return DoctorSummary{
		ID:          FormatDoctorID(d.ID),
		Name:        d.Name,
		Email:       d.Email,
		Phone:       deref(d.Phone),
		Speciality:  deref(d.Specialization),
		Degree:      deref(d.Degree),
		Experience:  deref(d.Experience),
		About:       deref(d.About),
		Fees:        d.Fees,
		Address:     DoctorAddress{Line1: deref(d.AddressLine1), Line2: deref(d.AddressLine2)},
		Image:       deref(d.ImageURL),
		IsAvailable: d.IsAvailable,
	}
}

// ParseDoctorID normalizes the two accepted doctor id forms: the prefixed
// string form ("doc12") and the bare numeric form ("12").
func ParseDoctorID(raw string) (int64, error) {
	s := strings.TrimPrefix(raw, doctorIDPrefix)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid doctor ID format: %q", raw)
	}
	return id, nil
}

// FormatDoctorID renders a doctor id in the prefixed string form
func FormatDoctorID(id int64) string {
	return fmt.Sprintf("%s%d", doctorIDPrefix, id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
