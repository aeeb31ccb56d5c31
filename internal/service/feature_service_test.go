package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"cms-service/internal/model"
)

func newFeatureFixture() (*mockSiteRepo, *mockFeatureRepo, *mockContactRepo, FeatureService) {
	sites := newMockSiteRepo()
	features := newMockFeatureRepo()
	contact := newMockContactRepo()
	guard := NewAccessGuard(sites, features)
	svc := NewFeatureService(features, contact, guard, zap.NewNop())
	return sites, features, contact, svc
}

func TestFeatureCreateEnabledSeedsContactForm(t *testing.T) {
	sites, _, contact, svc := newFeatureFixture()
	site := sites.addSite("acme")
	ctx := context.Background()

	err := svc.Create(ctx, superAdmin, site.ID, &model.SiteFeature{
		Feature:   model.FeatureContactManagement,
		IsEnabled: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	form, err := contact.GetFormBySite(ctx, site.ID)
	if err != nil {
		t.Fatalf("no contact form seeded: %v", err)
	}
	if len(form.Fields) != 7 {
		t.Errorf("seeded fields = %d, want 7", len(form.Fields))
	}

	var emailLabel string
	for _, f := range form.Fields {
		if f.Name == "email" {
			emailLabel = f.Label
		}
	}
	if emailLabel != "Email Address" {
		t.Errorf("email field label = %q, want %q", emailLabel, "Email Address")
	}
}

func TestFeatureReenableDoesNotReseed(t *testing.T) {
	sites, features, contact, svc := newFeatureFixture()
	site := sites.addSite("acme")
	ctx := context.Background()

	if err := svc.Create(ctx, superAdmin, site.ID, &model.SiteFeature{Feature: model.FeatureContactManagement, IsEnabled: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Operator customizes the form, then toggles the feature off and on.
	form, _ := contact.GetFormBySite(ctx, site.ID)
	form.Title = "Talk to us"
	_ = contact.UpdateForm(ctx, form)

	row, _ := features.GetBySiteAndName(ctx, site.ID, model.FeatureContactManagement)
	if _, err := svc.Update(ctx, superAdmin, site.ID, row.ID, &model.SiteFeature{IsEnabled: false}); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if _, err := svc.Update(ctx, superAdmin, site.ID, row.ID, &model.SiteFeature{IsEnabled: true}); err != nil {
		t.Fatalf("re-enable: %v", err)
	}

	form, _ = contact.GetFormBySite(ctx, site.ID)
	if form.Title != "Talk to us" {
		t.Errorf("re-enable overwrote the customized form, title = %q", form.Title)
	}
}

func TestFeatureCreateRejectsUnknown(t *testing.T) {
	sites, _, _, svc := newFeatureFixture()
	site := sites.addSite("acme")

	err := svc.Create(context.Background(), superAdmin, site.ID, &model.SiteFeature{Feature: "TELEPORT", IsEnabled: true})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestFeatureCreateDuplicatePair(t *testing.T) {
	sites, _, _, svc := newFeatureFixture()
	site := sites.addSite("acme")
	ctx := context.Background()

	if err := svc.Create(ctx, superAdmin, site.ID, &model.SiteFeature{Feature: model.FeatureBlog}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := svc.Create(ctx, superAdmin, site.ID, &model.SiteFeature{Feature: model.FeatureBlog}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate pair: err = %v, want ErrConflict", err)
	}
}

func TestFeatureOperationsRequireSuperAdmin(t *testing.T) {
	sites, features, _, svc := newFeatureFixture()
	site := sites.addSite("acme")
	row := features.enable(site.ID, model.FeatureBlog)
	admin := Actor{UserID: 5, Role: model.RoleAdmin}
	ctx := context.Background()

	if err := svc.Create(ctx, admin, site.ID, &model.SiteFeature{Feature: model.FeaturePages}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Create: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Update(ctx, admin, site.ID, row.ID, &model.SiteFeature{IsEnabled: false}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Update: err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, admin, site.ID, row.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete: err = %v, want ErrForbidden", err)
	}
}

func TestFeatureUpdateWrongSite(t *testing.T) {
	sites, features, _, svc := newFeatureFixture()
	siteA := sites.addSite("a")
	siteB := sites.addSite("b")
	row := features.enable(siteA.ID, model.FeatureBlog)

	if _, err := svc.Update(context.Background(), superAdmin, siteB.ID, row.ID, &model.SiteFeature{IsEnabled: false}); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-site feature id: err = %v, want ErrNotFound", err)
	}
}
