package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"cms-service/internal/model"
)

var superAdmin = Actor{UserID: 1, Role: model.RoleSuperAdmin}

func TestInviteCreate(t *testing.T) {
	invites := newMockInviteRepo()
	svc := NewInviteService(invites, newMockUserRepo(), 30*24*time.Hour, zap.NewNop())

	invite, err := svc.Create(context.Background(), superAdmin, "new@example.com", model.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(invite.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(invite.Token))
	}
	if invite.InvitedBy != superAdmin.UserID {
		t.Errorf("InvitedBy = %d, want %d", invite.InvitedBy, superAdmin.UserID)
	}
	if !invite.IsLive(time.Now()) {
		t.Error("fresh invite should be live")
	}
}

func TestInviteCreateRequiresSuperAdmin(t *testing.T) {
	svc := NewInviteService(newMockInviteRepo(), newMockUserRepo(), time.Hour, zap.NewNop())

	for _, role := range []string{model.RoleUser, model.RoleAdmin} {
		actor := Actor{UserID: 2, Role: role}
		if _, err := svc.Create(context.Background(), actor, "x@example.com", model.RoleUser); !errors.Is(err, ErrForbidden) {
			t.Errorf("role %s: err = %v, want ErrForbidden", role, err)
		}
	}
}

func TestInviteCreateConflicts(t *testing.T) {
	invites := newMockInviteRepo()
	users := newMockUserRepo()
	_ = users.Create(context.Background(), &model.User{Email: "taken@example.com", IsActive: true})
	svc := NewInviteService(invites, users, time.Hour, zap.NewNop())

	if _, err := svc.Create(context.Background(), superAdmin, "taken@example.com", model.RoleUser); !errors.Is(err, ErrConflict) {
		t.Errorf("existing user: err = %v, want ErrConflict", err)
	}

	if _, err := svc.Create(context.Background(), superAdmin, "pending@example.com", model.RoleUser); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if _, err := svc.Create(context.Background(), superAdmin, "pending@example.com", model.RoleUser); !errors.Is(err, ErrConflict) {
		t.Errorf("second live invite: err = %v, want ErrConflict", err)
	}
}

func TestInviteCreateAfterExpiry(t *testing.T) {
	invites := newMockInviteRepo()
	_ = invites.Create(context.Background(), &model.Invite{
		Email:     "retry@example.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	svc := NewInviteService(invites, newMockUserRepo(), time.Hour, zap.NewNop())

	// An expired invite is not live, so a new one may be issued.
	if _, err := svc.Create(context.Background(), superAdmin, "retry@example.com", model.RoleUser); err != nil {
		t.Errorf("Create after expiry: %v", err)
	}
}

func TestInviteUpdateRoleRejectsUsed(t *testing.T) {
	invites := newMockInviteRepo()
	used := time.Now()
	_ = invites.Create(context.Background(), &model.Invite{
		Email:     "done@example.com",
		Role:      model.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
		IsUsed:    true,
		UsedAt:    &used,
	})
	svc := NewInviteService(invites, newMockUserRepo(), time.Hour, zap.NewNop())

	if _, err := svc.UpdateRole(context.Background(), superAdmin, 1, model.RoleAdmin); !errors.Is(err, ErrInvalidState) {
		t.Errorf("UpdateRole on used invite: err = %v, want ErrInvalidState", err)
	}
	if err := svc.Delete(context.Background(), superAdmin, 1); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Delete on used invite: err = %v, want ErrInvalidState", err)
	}
}

func TestInviteValidation(t *testing.T) {
	svc := NewInviteService(newMockInviteRepo(), newMockUserRepo(), time.Hour, zap.NewNop())

	if _, err := svc.Create(context.Background(), superAdmin, "", model.RoleUser); !errors.Is(err, ErrValidation) {
		t.Errorf("empty email: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(context.Background(), superAdmin, "x@example.com", "OWNER"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown role: err = %v, want ErrValidation", err)
	}
}
