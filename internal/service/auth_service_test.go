package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"cms-service/internal/model"
	"cms-service/internal/oauth"
)

func TestSignInExistingUser(t *testing.T) {
	users := newMockUserRepo()
	invites := newMockInviteRepo()
	_ = users.Create(context.Background(), &model.User{Email: "alice@example.com", Role: model.RoleAdmin, IsActive: true})

	svc := NewAuthService(users, invites, &mockVerifier{identity: &oauth.Identity{Email: "alice@example.com", Name: "Alice"}}, zap.NewNop())

	user, err := svc.SignIn(context.Background(), "assertion")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("role = %q, want %q", user.Role, model.RoleAdmin)
	}
	if user.LastLogin == nil {
		t.Error("LastLogin not set")
	}
}

func TestSignInDeactivatedUser(t *testing.T) {
	users := newMockUserRepo()
	invites := newMockInviteRepo()
	_ = users.Create(context.Background(), &model.User{Email: "alice@example.com", Role: model.RoleUser, IsActive: false})

	svc := NewAuthService(users, invites, &mockVerifier{identity: &oauth.Identity{Email: "alice@example.com"}}, zap.NewNop())

	if _, err := svc.SignIn(context.Background(), "assertion"); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestSignInWithLiveInvite(t *testing.T) {
	users := newMockUserRepo()
	invites := newMockInviteRepo()
	_ = invites.Create(context.Background(), &model.Invite{
		Email:     "bob@example.com",
		Role:      model.RoleAdmin,
		InvitedBy: 1,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	svc := NewAuthService(users, invites, &mockVerifier{identity: &oauth.Identity{Email: "bob@example.com", Name: "Bob"}}, zap.NewNop())

	user, err := svc.SignIn(context.Background(), "assertion")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("role = %q, want invite role %q", user.Role, model.RoleAdmin)
	}
	if !user.IsInvited || user.InvitedBy == nil || *user.InvitedBy != 1 {
		t.Error("invite provenance not recorded on user")
	}

	invite, _ := invites.GetByID(context.Background(), 1)
	if !invite.IsUsed || invite.UsedAt == nil {
		t.Error("invite not marked used")
	}
}

func TestSignInNoInvite(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), newMockInviteRepo(), &mockVerifier{identity: &oauth.Identity{Email: "nobody@example.com"}}, zap.NewNop())

	if _, err := svc.SignIn(context.Background(), "assertion"); !errors.Is(err, ErrNotInvited) {
		t.Errorf("err = %v, want ErrNotInvited", err)
	}
}

func TestSignInExpiredInvite(t *testing.T) {
	users := newMockUserRepo()
	invites := newMockInviteRepo()
	_ = invites.Create(context.Background(), &model.Invite{
		Email:     "late@example.com",
		Role:      model.RoleUser,
		ExpiresAt: time.Now().Add(-time.Hour),
	})

	svc := NewAuthService(users, invites, &mockVerifier{identity: &oauth.Identity{Email: "late@example.com"}}, zap.NewNop())

	if _, err := svc.SignIn(context.Background(), "assertion"); !errors.Is(err, ErrNotInvited) {
		t.Errorf("err = %v, want ErrNotInvited for expired invite", err)
	}
	if len(users.users) != 0 {
		t.Error("expired invite must not create a user")
	}
}

func TestSignInUsedInviteDoesNotAdmitTwice(t *testing.T) {
	users := newMockUserRepo()
	invites := newMockInviteRepo()
	used := time.Now()
	_ = invites.Create(context.Background(), &model.Invite{
		Email:     "once@example.com",
		Role:      model.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
		IsUsed:    true,
		UsedAt:    &used,
	})

	svc := NewAuthService(users, invites, &mockVerifier{identity: &oauth.Identity{Email: "once@example.com"}}, zap.NewNop())

	if _, err := svc.SignIn(context.Background(), "assertion"); !errors.Is(err, ErrNotInvited) {
		t.Errorf("err = %v, want ErrNotInvited for used invite", err)
	}
}

func TestSignInInvalidAssertion(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), newMockInviteRepo(), &mockVerifier{err: oauth.ErrInvalidAssertion}, zap.NewNop())

	if _, err := svc.SignIn(context.Background(), "garbage"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestInviteConsumedExactlyOnce(t *testing.T) {
	invites := newMockInviteRepo()
	_ = invites.Create(context.Background(), &model.Invite{
		Email:     "race@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	first, err := invites.Consume(context.Background(), 1, time.Now())
	if err != nil || !first {
		t.Fatalf("first consume = (%v, %v), want (true, nil)", first, err)
	}
	second, err := invites.Consume(context.Background(), 1, time.Now())
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if second {
		t.Error("second consume won, want at-most-once")
	}
}
