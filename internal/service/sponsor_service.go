package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
)

// SponsorService manages sponsor entries, gated by the SPONSORS feature
type SponsorService interface {
	Create(ctx context.Context, actor Actor, siteID uint, sponsor *model.Sponsor) error
	Get(ctx context.Context, actor Actor, siteID, sponsorID uint) (*model.Sponsor, error)
	List(ctx context.Context, actor Actor, siteID uint) ([]model.Sponsor, error)
	Update(ctx context.Context, actor Actor, siteID, sponsorID uint, update *model.Sponsor) (*model.Sponsor, error)
	Delete(ctx context.Context, actor Actor, siteID, sponsorID uint) error
}

type sponsorService struct {
	sponsors repository.SponsorRepository
	guard    *AccessGuard
}

// NewSponsorService creates a SponsorService
func NewSponsorService(sponsors repository.SponsorRepository, guard *AccessGuard) SponsorService {
	return &sponsorService{sponsors: sponsors, guard: guard}
}

func (s *sponsorService) authorize(ctx context.Context, actor Actor, siteID uint) error {
	if _, err := s.guard.RequireMember(ctx, actor, siteID); err != nil {
		return err
	}
	return s.guard.RequireFeature(ctx, siteID, model.FeatureSponsors)
}

func (s *sponsorService) Create(ctx context.Context, actor Actor, siteID uint, sponsor *model.Sponsor) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}
	if sponsor.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	sponsor.SiteID = siteID
	if err := s.sponsors.Create(ctx, sponsor); err != nil {
		return fmt.Errorf("creating sponsor: %w", err)
	}
	return nil
}

func (s *sponsorService) Get(ctx context.Context, actor Actor, siteID, sponsorID uint) (*model.Sponsor, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}

	sponsor, err := s.sponsors.GetByID(ctx, siteID, sponsorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading sponsor: %w", err)
	}
	return sponsor, nil
}

func (s *sponsorService) List(ctx context.Context, actor Actor, siteID uint) ([]model.Sponsor, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.sponsors.ListBySite(ctx, siteID, false)
}

func (s *sponsorService) Update(ctx context.Context, actor Actor, siteID, sponsorID uint, update *model.Sponsor) (*model.Sponsor, error) {
	sponsor, err := s.Get(ctx, actor, siteID, sponsorID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		sponsor.Name = update.Name
	}
	sponsor.URL = update.URL
	sponsor.LogoURL = update.LogoURL
	sponsor.Active = update.Active

	if err := s.sponsors.Update(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("updating sponsor: %w", err)
	}
	return sponsor, nil
}

func (s *sponsorService) Delete(ctx context.Context, actor Actor, siteID, sponsorID uint) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}

	deleted, err := s.sponsors.Delete(ctx, siteID, sponsorID)
	if err != nil {
		return fmt.Errorf("deleting sponsor: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
