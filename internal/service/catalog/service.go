package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/internal/repository"
	apperrors "github.com/clinicly/booking-api/pkg/errors"
)

// Service serves the public doctor catalog: available doctors, optionally
// narrowed by exact specialty. Listings are cached briefly; registration
// invalidates the cache.
type Service struct {
	repo  repository.DoctorRepository
	cache *gocache.Cache
}

func NewService(repo repository.DoctorRepository, ttl, cleanup time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(ttl, cleanup),
	}
}

func listKey(speciality string) string {
	return fmt.Sprintf("doctors:%s", speciality)
}

func (s *Service) List(ctx context.Context, speciality string) ([]model.DoctorSummary, error) {
	key := listKey(speciality)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.DoctorSummary), nil
	}

	doctors, err := s.repo.ListAvailable(ctx, speciality)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	summaries := make([]model.DoctorSummary, 0, len(doctors))
	for _, d := range doctors {
		summaries = append(summaries, d.Summary())
	}

	s.cache.SetDefault(key, summaries)
	return summaries, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*model.DoctorSummary, error) {
	id, err := model.ParseDoctorID(rawID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid doctor ID format", err)
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Internal(err)
	}

	summary := doctor.Summary()
	return &summary, nil
}

// Update replaces a doctor's profile fields and drops the cached listings,
// so fee and availability changes are visible immediately.
func (s *Service) Update(ctx context.Context, rawID string, req *model.UpdateDoctorRequest) (*model.DoctorSummary, error) {
	id, err := model.ParseDoctorID(rawID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid doctor ID format", err)
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Internal(err)
	}

	doctor.Name = req.Name
	doctor.Phone = optional(req.Phone)
	doctor.Specialization = optional(req.Specialization)
	doctor.Degree = optional(req.Degree)
	doctor.Experience = optional(req.Experience)
	doctor.About = optional(req.About)
	doctor.Fees = req.Fees
	doctor.AddressLine1 = optional(req.AddressLine1)
	doctor.AddressLine2 = optional(req.AddressLine2)
	doctor.ImageURL = optional(req.Image)
	doctor.IsAvailable = req.IsAvailable

	if err := s.repo.Update(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.Invalidate()

	summary := doctor.Summary()
	return &summary, nil
}

// Invalidate drops all cached listings
func (s *Service) Invalidate() {
	s.cache.Flush()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
