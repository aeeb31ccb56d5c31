package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/oauth"
	"cms-service/internal/repository"
)

// ErrNotInvited means the asserted email has no user and no live invite;
// admission is invite-only.
var ErrNotInvited = errors.New("sign-in is by invitation only")

// AuthService runs the sign-in decision procedure. Two outcomes: admit (with
// a resolved user) or deny.
type AuthService interface {
	// SignIn verifies the provider assertion and admits or denies the
	// asserted identity.
	SignIn(ctx context.Context, assertion string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type authService struct {
	users    repository.UserRepository
	invites  repository.InviteRepository
	verifier oauth.Verifier
	logger   *zap.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(users repository.UserRepository, invites repository.InviteRepository, verifier oauth.Verifier, logger *zap.Logger) AuthService {
	return &authService{users: users, invites: invites, verifier: verifier, logger: logger}
}

func (s *authService) SignIn(ctx context.Context, assertion string) (*model.User, error) {
	identity, err := s.verifier.Verify(ctx, assertion)
	if err != nil {
		if errors.Is(err, oauth.ErrInvalidAssertion) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("verifying assertion: %w", err)
	}

	now := time.Now()

	// Existing user: admit with the stored role.
	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		if !user.IsActive {
			s.logger.Warn("Sign-in denied for deactivated user", zap.String("email", identity.Email))
			return nil, ErrForbidden
		}
		if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
			return nil, fmt.Errorf("updating last login: %w", err)
		}
		user.LastLogin = &now
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	// First sign-in: a live invite is the only admission path.
	invite, err := s.invites.GetLiveByEmail(ctx, identity.Email, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("Sign-in denied, no live invite", zap.String("email", identity.Email))
			return nil, ErrNotInvited
		}
		return nil, fmt.Errorf("looking up invite: %w", err)
	}

	// Consume-then-create: the conditional update makes consumption
	// at-most-once, so a concurrent sign-in for the same email loses here
	// instead of creating a second user.
	consumed, err := s.invites.Consume(ctx, invite.ID, now)
	if err != nil {
		return nil, fmt.Errorf("consuming invite: %w", err)
	}
	if !consumed {
		s.logger.Warn("Invite already consumed", zap.String("email", identity.Email), zap.Uint("invite_id", invite.ID))
		return nil, ErrNotInvited
	}

	user = &model.User{
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      invite.Role,
		IsActive:  true,
		IsInvited: true,
		InvitedBy: &invite.InvitedBy,
		LastLogin: &now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("User admitted via invite",
		zap.String("email", user.Email),
		zap.String("role", user.Role),
		zap.Uint("invite_id", invite.ID))
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
