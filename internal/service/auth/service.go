package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/internal/repository"
	"github.com/clinicly/booking-api/pkg/auth"
	apperrors "github.com/clinicly/booking-api/pkg/errors"
	"github.com/clinicly/booking-api/pkg/security"
)

// CatalogInvalidator lets registration drop the cached doctor listing
type CatalogInvalidator interface {
	Invalidate()
}

type Service struct {
	users      repository.UserRepository
	doctors    repository.DoctorRepository
	hasher     security.PasswordHasher
	tokens     auth.TokenService
	tokenStore repository.TokenStore
	catalog    CatalogInvalidator
}

func NewService(
	users repository.UserRepository,
	doctors repository.DoctorRepository,
	hasher security.PasswordHasher,
	tokens auth.TokenService,
	tokenStore repository.TokenStore,
	catalog CatalogInvalidator,
) *Service {
	return &Service{
		users:      users,
		doctors:    doctors,
		hasher:     hasher,
		tokens:     tokens,
		tokenStore: tokenStore,
		catalog:    catalog,
	}
}

// normalizeEmail makes duplicate detection case-insensitive: emails are
// lowercased before storage and before every lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.BadRequest("user with this email already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Phone:        optional(req.Phone),
		DateOfBirth:  req.DateOfBirth,
		Gender:       optional(req.Gender),
		Address:      optional(req.Address),
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.BadRequest("user with this email already exists", err)
		}
		return nil, apperrors.Internal(err)
	}

	return s.respond(user.ID, user.Name, user.Email, user.Phone, auth.RolePatient)
}

func (s *Service) LoginPatient(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, apperrors.Unauthorized("invalid email or password", nil)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password", nil)
	}

	if !user.IsActive {
		return nil, apperrors.Unauthorized("account is deactivated", nil)
	}

	return s.respond(user.ID, user.Name, user.Email, user.Phone, auth.RolePatient)
}

func (s *Service) RegisterDoctor(ctx context.Context, req *model.DoctorRegisterRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.doctors.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.BadRequest("doctor with this email already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	doctor := &model.Doctor{
		Name:           req.Name,
		Email:          email,
		Phone:          optional(req.Phone),
		PasswordHash:   hash,
		Specialization: optional(req.Specialization),
		Degree:         optional(req.Degree),
		Experience:     optional(req.Experience),
		About:          optional(req.About),
		Fees:           req.Fees,
		AddressLine1:   optional(req.AddressLine1),
		AddressLine2:   optional(req.AddressLine2),
		IsAvailable:    true,
	}

	if err := s.doctors.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.BadRequest("doctor with this email already exists", err)
		}
		return nil, apperrors.Internal(err)
	}

	if s.catalog != nil {
		s.catalog.Invalidate()
	}

	return s.respond(doctor.ID, doctor.Name, doctor.Email, doctor.Phone, auth.RoleDoctor)
}

func (s *Service) LoginDoctor(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	doctor, err := s.doctors.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, apperrors.Unauthorized("invalid email or password", nil)
	}

	if err := s.hasher.Compare(doctor.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password", nil)
	}

	if !doctor.IsAvailable {
		return nil, apperrors.Unauthorized("doctor account is deactivated", nil)
	}

	return s.respond(doctor.ID, doctor.Name, doctor.Email, doctor.Phone, auth.RoleDoctor)
}

// Logout revokes the presented token for the remainder of its lifetime
func (s *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := s.tokenStore.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) respond(id int64, name, email string, phone *string, role string) (*model.AuthResponse, error) {
	token, err := s.tokens.Generate(id, name, email, role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resp := &model.AuthResponse{
		ID:    id,
		Name:  name,
		Email: email,
		Token: token,
		Role:  role,
	}
	if phone != nil {
		resp.Phone = *phone
	}
	return resp, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
