package service

import (
	"context"
	"errors"
	"testing"

	"cms-service/internal/model"
)

func newPageFixture() (*mockSiteRepo, *mockFeatureRepo, *mockPageRepo, PageService) {
	sites := newMockSiteRepo()
	features := newMockFeatureRepo()
	pages := newMockPageRepo()
	guard := NewAccessGuard(sites, features)
	svc := NewPageService(pages, guard)
	return sites, features, pages, svc
}

func TestPageCreateAndGet(t *testing.T) {
	sites, features, _, svc := newPageFixture()
	site := sites.addSite("acme")
	features.enable(site.ID, model.FeaturePages)
	_ = sites.AddMember(context.Background(), site.ID, 7)
	member := Actor{UserID: 7, Role: model.RoleUser}
	ctx := context.Background()

	page := &model.Page{Slug: "about", Title: "About Us", Content: "hello"}
	if err := svc.Create(ctx, member, site.ID, page); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if page.AuthorID != 7 {
		t.Errorf("AuthorID = %d, want actor id", page.AuthorID)
	}

	got, err := svc.Get(ctx, member, site.ID, page.ID, model.PageKindPage)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Slug != "about" || got.Title != "About Us" {
		t.Errorf("got %+v", got)
	}
}

func TestPageSlugConflict(t *testing.T) {
	sites, features, _, svc := newPageFixture()
	site := sites.addSite("acme")
	features.enable(site.ID, model.FeaturePages)
	ctx := context.Background()

	if err := svc.Create(ctx, superAdmin, site.ID, &model.Page{Slug: "about", Title: "About"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := svc.Create(ctx, superAdmin, site.ID, &model.Page{Slug: "about", Title: "Other"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate slug: err = %v, want ErrConflict", err)
	}

	// The same slug on another site is fine.
	other := sites.addSite("other")
	features.enable(other.ID, model.FeaturePages)
	if err := svc.Create(ctx, superAdmin, other.ID, &model.Page{Slug: "about", Title: "About"}); err != nil {
		t.Errorf("same slug, different site: %v", err)
	}
}

func TestPageFeatureGateBeforeLookup(t *testing.T) {
	sites, _, pages, svc := newPageFixture()
	site := sites.addSite("acme")
	_ = pages.Create(context.Background(), &model.Page{SiteID: site.ID, Slug: "p", Title: "P", Kind: model.PageKindPage})
	ctx := context.Background()

	// PAGES is off: even an existing page reads as feature-disabled, not
	// found/not-found.
	if _, err := svc.Get(ctx, superAdmin, site.ID, 1, model.PageKindPage); !errors.Is(err, ErrFeatureDisabled) {
		t.Errorf("err = %v, want ErrFeatureDisabled", err)
	}
}

func TestPostsGatedByBlogNotPages(t *testing.T) {
	sites, features, _, svc := newPageFixture()
	site := sites.addSite("acme")
	features.enable(site.ID, model.FeaturePages)
	ctx := context.Background()

	err := svc.Create(ctx, superAdmin, site.ID, &model.Page{Slug: "post-1", Title: "Post", Kind: model.PageKindPost})
	if !errors.Is(err, ErrFeatureDisabled) {
		t.Fatalf("post with BLOG off: err = %v, want ErrFeatureDisabled", err)
	}

	features.enable(site.ID, model.FeatureBlog)
	if err := svc.Create(ctx, superAdmin, site.ID, &model.Page{Slug: "post-1", Title: "Post", Kind: model.PageKindPost}); err != nil {
		t.Fatalf("post with BLOG on: %v", err)
	}
}

func TestPageKindMismatchReadsAsAbsent(t *testing.T) {
	sites, features, pages, svc := newPageFixture()
	site := sites.addSite("acme")
	features.enable(site.ID, model.FeaturePages)
	features.enable(site.ID, model.FeatureBlog)
	_ = pages.Create(context.Background(), &model.Page{SiteID: site.ID, Slug: "post-1", Title: "Post", Kind: model.PageKindPost})

	if _, err := svc.Get(context.Background(), superAdmin, site.ID, 1, model.PageKindPage); !errors.Is(err, ErrNotFound) {
		t.Errorf("post fetched through the pages route: err = %v, want ErrNotFound", err)
	}
}

func TestPagePublishTransitionSetsTimestamp(t *testing.T) {
	sites, features, _, svc := newPageFixture()
	site := sites.addSite("acme")
	features.enable(site.ID, model.FeaturePages)
	ctx := context.Background()

	page := &model.Page{Slug: "about", Title: "About"}
	if err := svc.Create(ctx, superAdmin, site.ID, page); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if page.PublishedAt != nil {
		t.Fatal("draft should have no publish timestamp")
	}

	updated, err := svc.Update(ctx, superAdmin, site.ID, page.ID, model.PageKindPage, &model.Page{Title: "About", IsPublished: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PublishedAt == nil {
		t.Error("publish transition should set PublishedAt")
	}

	first := *updated.PublishedAt
	updated, err = svc.Update(ctx, superAdmin, site.ID, page.ID, model.PageKindPage, &model.Page{Title: "About v2", IsPublished: true})
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if !updated.PublishedAt.Equal(first) {
		t.Error("re-saving a published page must not move PublishedAt")
	}
}

func TestPageNonMemberForbidden(t *testing.T) {
	sites, features, _, svc := newPageFixture()
	site := sites.addSite("acme")
	features.enable(site.ID, model.FeaturePages)
	stranger := Actor{UserID: 42, Role: model.RoleAdmin}

	if _, err := svc.List(context.Background(), stranger, site.ID, model.PageKindPage); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}
