package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
)

// SiteService manages the site directory and its membership sets
type SiteService interface {
	Create(ctx context.Context, actor Actor, site *model.Site) error
	Get(ctx context.Context, actor Actor, siteID uint) (*model.Site, error)
	List(ctx context.Context, actor Actor) ([]model.Site, error)
	Update(ctx context.Context, actor Actor, siteID uint, update *model.Site) (*model.Site, error)
	Delete(ctx context.Context, actor Actor, siteID uint) error

	AddMember(ctx context.Context, actor Actor, siteID, userID uint) error
	RemoveMember(ctx context.Context, actor Actor, siteID, userID uint) error
	ListMembers(ctx context.Context, actor Actor, siteID uint) ([]model.SiteMember, error)
}

type siteService struct {
	sites  repository.SiteRepository
	users  repository.UserRepository
	guard  *AccessGuard
	logger *zap.Logger
}

// NewSiteService creates a SiteService
func NewSiteService(sites repository.SiteRepository, users repository.UserRepository, guard *AccessGuard, logger *zap.Logger) SiteService {
	return &siteService{sites: sites, users: users, guard: guard, logger: logger}
}

func (s *siteService) Create(ctx context.Context, actor Actor, site *model.Site) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if site.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := s.sites.Create(ctx, site); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: a site with this name already exists", ErrConflict)
		}
		return fmt.Errorf("creating site: %w", err)
	}

	s.logger.Info("Site created", zap.String("name", site.Name), zap.Uint("id", site.ID))
	return nil
}

func (s *siteService) Get(ctx context.Context, actor Actor, siteID uint) (*model.Site, error) {
	return s.guard.RequireMember(ctx, actor, siteID)
}

func (s *siteService) List(ctx context.Context, actor Actor) ([]model.Site, error) {
	if actor.Role == model.RoleSuperAdmin {
		return s.sites.List(ctx)
	}
	return s.sites.ListForUser(ctx, actor.UserID)
}

func (s *siteService) Update(ctx context.Context, actor Actor, siteID uint, update *model.Site) (*model.Site, error) {
	site, err := s.guard.RequireMember(ctx, actor, siteID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		site.Name = update.Name
	}
	site.Domain = update.Domain
	site.Description = update.Description
	site.LogoURL = update.LogoURL
	site.CoverURL = update.CoverURL

	if err := s.sites.Update(ctx, site); err != nil {
		return nil, fmt.Errorf("updating site: %w", err)
	}
	return site, nil
}

func (s *siteService) Delete(ctx context.Context, actor Actor, siteID uint) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return err
	}

	if err := s.sites.Delete(ctx, siteID); err != nil {
		return fmt.Errorf("deleting site: %w", err)
	}

	s.logger.Info("Site deleted with all owned resources", zap.Uint("site_id", siteID))
	return nil
}

func (s *siteService) AddMember(ctx context.Context, actor Actor, siteID, userID uint) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading user: %w", err)
	}

	isMember, err := s.sites.IsMember(ctx, siteID, userID)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if isMember {
		return fmt.Errorf("%w: user is already a member of this site", ErrConflict)
	}

	if err := s.sites.AddMember(ctx, siteID, userID); err != nil {
		return fmt.Errorf("adding member: %w", err)
	}

	s.logger.Info("Member added", zap.Uint("site_id", siteID), zap.Uint("user_id", userID))
	return nil
}

func (s *siteService) RemoveMember(ctx context.Context, actor Actor, siteID, userID uint) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return err
	}

	removed, err := s.sites.RemoveMember(ctx, siteID, userID)
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: user is not a member of this site", ErrNotFound)
	}

	s.logger.Info("Member removed", zap.Uint("site_id", siteID), zap.Uint("user_id", userID))
	return nil
}

func (s *siteService) ListMembers(ctx context.Context, actor Actor, siteID uint) ([]model.SiteMember, error) {
	if _, err := s.guard.RequireMember(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.sites.ListMembers(ctx, siteID)
}
