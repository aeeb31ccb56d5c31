package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"cms-service/internal/model"
)

func newSiteFixture() (*mockSiteRepo, *mockUserRepo, SiteService) {
	sites := newMockSiteRepo()
	users := newMockUserRepo()
	features := newMockFeatureRepo()
	guard := NewAccessGuard(sites, features)
	svc := NewSiteService(sites, users, guard, zap.NewNop())
	return sites, users, svc
}

func TestSiteCreateRequiresSuperAdmin(t *testing.T) {
	_, _, svc := newSiteFixture()

	err := svc.Create(context.Background(), Actor{UserID: 2, Role: model.RoleAdmin}, &model.Site{Name: "acme"})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if err := svc.Create(context.Background(), superAdmin, &model.Site{Name: "acme"}); err != nil {
		t.Errorf("superadmin create: %v", err)
	}
}

func TestSiteListScopedToMembership(t *testing.T) {
	sites, _, svc := newSiteFixture()
	a := sites.addSite("a")
	sites.addSite("b")
	ctx := context.Background()
	_ = sites.AddMember(ctx, a.ID, 7)

	member := Actor{UserID: 7, Role: model.RoleUser}
	mine, err := svc.List(ctx, member)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != a.ID {
		t.Errorf("member sees %d sites, want only site a", len(mine))
	}

	all, _ := svc.List(ctx, superAdmin)
	if len(all) != 2 {
		t.Errorf("superadmin sees %d sites, want 2", len(all))
	}
}

func TestSiteGetNonMember(t *testing.T) {
	sites, _, svc := newSiteFixture()
	site := sites.addSite("acme")

	if _, err := svc.Get(context.Background(), Actor{UserID: 9, Role: model.RoleAdmin}, site.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(context.Background(), Actor{UserID: 9, Role: model.RoleAdmin}, 999); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("err = %v, want ErrSiteNotFound", err)
	}
}

func TestMembershipAddRemove(t *testing.T) {
	sites, users, svc := newSiteFixture()
	site := sites.addSite("acme")
	ctx := context.Background()
	_ = users.Create(ctx, &model.User{Email: "m@example.com", IsActive: true})

	if err := svc.AddMember(ctx, superAdmin, site.ID, 1); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := svc.AddMember(ctx, superAdmin, site.ID, 1); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate add: err = %v, want ErrConflict", err)
	}
	if err := svc.AddMember(ctx, superAdmin, site.ID, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}

	if err := svc.RemoveMember(ctx, superAdmin, site.ID, 1); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if err := svc.RemoveMember(ctx, superAdmin, site.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove non-member: err = %v, want ErrNotFound", err)
	}
}

func TestMembershipRevocationClosesAccess(t *testing.T) {
	sites, users, svc := newSiteFixture()
	site := sites.addSite("acme")
	ctx := context.Background()
	_ = users.Create(ctx, &model.User{Email: "m@example.com", IsActive: true})
	member := Actor{UserID: 1, Role: model.RoleUser}

	_ = svc.AddMember(ctx, superAdmin, site.ID, 1)
	if _, err := svc.Get(ctx, member, site.ID); err != nil {
		t.Fatalf("member access: %v", err)
	}

	_ = svc.RemoveMember(ctx, superAdmin, site.ID, 1)
	if _, err := svc.Get(ctx, member, site.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("after revocation: err = %v, want ErrForbidden", err)
	}
}

func TestMembershipManagementSuperAdminOnly(t *testing.T) {
	sites, users, svc := newSiteFixture()
	site := sites.addSite("acme")
	ctx := context.Background()
	_ = users.Create(ctx, &model.User{Email: "m@example.com", IsActive: true})
	_ = sites.AddMember(ctx, site.ID, 1)

	// Membership grants data access, not member administration.
	admin := Actor{UserID: 1, Role: model.RoleAdmin}
	if err := svc.AddMember(ctx, admin, site.ID, 2); !errors.Is(err, ErrForbidden) {
		t.Errorf("AddMember as member: err = %v, want ErrForbidden", err)
	}
	if err := svc.RemoveMember(ctx, admin, site.ID, 1); !errors.Is(err, ErrForbidden) {
		t.Errorf("RemoveMember as member: err = %v, want ErrForbidden", err)
	}
}
