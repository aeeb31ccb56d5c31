package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
)

// InviteService manages the invite ledger. Every operation requires a
// SUPERADMIN caller; used invites are immutable history.
type InviteService interface {
	Create(ctx context.Context, actor Actor, email, role string) (*model.Invite, error)
	List(ctx context.Context, actor Actor) ([]model.Invite, error)
	UpdateRole(ctx context.Context, actor Actor, id uint, role string) (*model.Invite, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type inviteService struct {
	invites repository.InviteRepository
	users   repository.UserRepository
	ttl     time.Duration
	logger  *zap.Logger
}

// NewInviteService creates an InviteService with the given invite lifetime
func NewInviteService(invites repository.InviteRepository, users repository.UserRepository, ttl time.Duration, logger *zap.Logger) InviteService {
	return &inviteService{invites: invites, users: users, ttl: ttl, logger: logger}
}

// newInviteToken mints a 256-bit random token. The token is a bearer
// credential for account creation, so it has to be unguessable.
func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating invite token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func validRole(role string) bool {
	switch role {
	case model.RoleUser, model.RoleAdmin, model.RoleSuperAdmin:
		return true
	}
	return false
}

func requireSuperAdmin(actor Actor) error {
	if actor.Role != model.RoleSuperAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *inviteService) Create(ctx context.Context, actor Actor, email, role string) (*model.Invite, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	// A user already admitted for this email makes an invite pointless.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a user already exists for this email", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	// At most one live invite per email. The partial unique index on the
	// invites table backstops this check under concurrent creates.
	now := time.Now()
	if _, err := s.invites.GetLiveByEmail(ctx, email, now); err == nil {
		return nil, fmt.Errorf("%w: a live invite already exists for this email", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up invite: %w", err)
	}

	token, err := newInviteToken()
	if err != nil {
		return nil, err
	}

	invite := &model.Invite{
		Email:     email,
		Role:      role,
		Token:     token,
		InvitedBy: actor.UserID,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("creating invite: %w", err)
	}

	s.logger.Info("Invite created",
		zap.String("email", email),
		zap.String("role", role),
		zap.Uint("invited_by", actor.UserID))
	return invite, nil
}

func (s *inviteService) List(ctx context.Context, actor Actor) ([]model.Invite, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	return s.invites.List(ctx)
}

func (s *inviteService) UpdateRole(ctx context.Context, actor Actor, id uint, role string) (*model.Invite, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	invite, err := s.invites.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading invite: %w", err)
	}
	if invite.IsUsed {
		return nil, fmt.Errorf("%w: invite already consumed", ErrInvalidState)
	}

	if err := s.invites.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("updating invite role: %w", err)
	}
	invite.Role = role
	return invite, nil
}

func (s *inviteService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}

	invite, err := s.invites.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading invite: %w", err)
	}
	if invite.IsUsed {
		return fmt.Errorf("%w: invite already consumed", ErrInvalidState)
	}

	return s.invites.Delete(ctx, id)
}
