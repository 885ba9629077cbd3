package model

import "time"

// RegisterRequest is the patient registration payload
type RegisterRequest struct {
	Name        string     `json:"name" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=6"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      string     `json:"gender"`
	Address     string     `json:"address"`
}

// DoctorRegisterRequest is the doctor registration payload
type DoctorRegisterRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=6"`
	Phone          string  `json:"phone"`
	Specialization string  `json:"specialization" binding:"required"`
	Degree         string  `json:"degree"`
	Experience     string  `json:"experience"`
	About          string  `json:"about"`
	Fees           float64 `json:"fees" binding:"gte=0"`
	AddressLine1   string  `json:"addressLine1"`
	AddressLine2   string  `json:"addressLine2"`
}

// LoginRequest is shared by the patient and doctor login endpoints
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Token string `json:"token"`
	Role  string `json:"role"`
}
