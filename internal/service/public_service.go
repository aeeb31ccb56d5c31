package service

import (
	"context"

	"cms-service/internal/model"
	"cms-service/internal/repository"
)

// PublicService serves the unauthenticated read API. Every operation runs the
// same site-then-feature gate as the authenticated paths; there is no
// membership check because nothing here is caller-specific.
type PublicService interface {
	Site(ctx context.Context, siteID uint) (*model.Site, error)
	Sponsors(ctx context.Context, siteID uint) ([]model.Sponsor, error)
	Jobs(ctx context.Context, siteID uint) ([]model.JobListing, error)
}

type publicService struct {
	sponsors repository.SponsorRepository
	jobs     repository.JobRepository
	guard    *AccessGuard
}

// NewPublicService creates a PublicService
func NewPublicService(sponsors repository.SponsorRepository, jobs repository.JobRepository, guard *AccessGuard) PublicService {
	return &publicService{sponsors: sponsors, jobs: jobs, guard: guard}
}

func (s *publicService) Site(ctx context.Context, siteID uint) (*model.Site, error) {
	return s.guard.RequireSite(ctx, siteID)
}

func (s *publicService) Sponsors(ctx context.Context, siteID uint) ([]model.Sponsor, error) {
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireFeature(ctx, siteID, model.FeatureSponsors); err != nil {
		return nil, err
	}
	return s.sponsors.ListBySite(ctx, siteID, true)
}

// Jobs returns ACTIVE listings whose company is still active.
func (s *publicService) Jobs(ctx context.Context, siteID uint) ([]model.JobListing, error) {
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireFeature(ctx, siteID, model.FeatureJobBoard); err != nil {
		return nil, err
	}
	return s.jobs.ListPublic(ctx, siteID)
}
