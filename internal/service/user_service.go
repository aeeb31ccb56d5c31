package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
)

// UserService handles user directory operations. Listing and role changes
// are SUPERADMIN-only; users may always switch their own current site.
type UserService interface {
	List(ctx context.Context, actor Actor) ([]model.User, error)
	Get(ctx context.Context, actor Actor, id uint) (*model.User, error)
	UpdateRole(ctx context.Context, actor Actor, id uint, role string) (*model.User, error)

	// SetCurrentSite stores the actor's last selected site. It is a
	// convenience pointer for clients and grants nothing; nil clears it.
	SetCurrentSite(ctx context.Context, actor Actor, siteID *uint) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
	sites repository.SiteRepository
}

// NewUserService creates a UserService
func NewUserService(users repository.UserRepository, sites repository.SiteRepository) UserService {
	return &userService{users: users, sites: sites}
}

func (s *userService) List(ctx context.Context, actor Actor) ([]model.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, actor Actor, id uint) (*model.User, error) {
	if actor.Role != model.RoleSuperAdmin && actor.UserID != id {
		return nil, ErrForbidden
	}
	return s.load(ctx, id)
}

func (s *userService) load(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, actor Actor, id uint, role string) (*model.User, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if actor.UserID == id && role != model.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: cannot demote yourself", ErrValidation)
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("updating user role: %w", err)
	}
	user.Role = role
	return user, nil
}

func (s *userService) SetCurrentSite(ctx context.Context, actor Actor, siteID *uint) (*model.User, error) {
	if siteID != nil {
		if _, err := s.sites.GetByID(ctx, *siteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSiteNotFound
			}
			return nil, fmt.Errorf("loading site: %w", err)
		}
		if actor.Role != model.RoleSuperAdmin {
			isMember, err := s.sites.IsMember(ctx, *siteID, actor.UserID)
			if err != nil {
				return nil, fmt.Errorf("checking membership: %w", err)
			}
			if !isMember {
				return nil, ErrForbidden
			}
		}
	}

	if err := s.users.UpdateCurrentSite(ctx, actor.UserID, siteID); err != nil {
		return nil, fmt.Errorf("updating current site: %w", err)
	}
	return s.load(ctx, actor.UserID)
}
