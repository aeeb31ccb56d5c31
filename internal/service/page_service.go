package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
)

// PageService manages pages and blog posts. Pages are gated by PAGES, posts
// by BLOG.
type PageService interface {
	Create(ctx context.Context, actor Actor, siteID uint, page *model.Page) error
	Get(ctx context.Context, actor Actor, siteID, pageID uint, kind string) (*model.Page, error)
	List(ctx context.Context, actor Actor, siteID uint, kind string) ([]model.Page, error)
	Update(ctx context.Context, actor Actor, siteID, pageID uint, kind string, update *model.Page) (*model.Page, error)
	Delete(ctx context.Context, actor Actor, siteID, pageID uint, kind string) error
}

type pageService struct {
	pages repository.PageRepository
	guard *AccessGuard
}

// NewPageService creates a PageService
func NewPageService(pages repository.PageRepository, guard *AccessGuard) PageService {
	return &pageService{pages: pages, guard: guard}
}

func featureForKind(kind string) string {
	if kind == model.PageKindPost {
		return model.FeatureBlog
	}
	return model.FeaturePages
}

func (s *pageService) authorize(ctx context.Context, actor Actor, siteID uint, kind string) error {
	if _, err := s.guard.RequireMember(ctx, actor, siteID); err != nil {
		return err
	}
	return s.guard.RequireFeature(ctx, siteID, featureForKind(kind))
}

func (s *pageService) Create(ctx context.Context, actor Actor, siteID uint, page *model.Page) error {
	if page.Kind == "" {
		page.Kind = model.PageKindPage
	}
	if err := s.authorize(ctx, actor, siteID, page.Kind); err != nil {
		return err
	}
	if page.Title == "" || page.Slug == "" {
		return fmt.Errorf("%w: title and slug are required", ErrValidation)
	}

	// Slug unique per site
	if _, err := s.pages.GetBySlug(ctx, siteID, page.Slug); err == nil {
		return fmt.Errorf("%w: slug already in use on this site", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking slug: %w", err)
	}

	page.SiteID = siteID
	page.AuthorID = actor.UserID
	if page.IsPublished && page.PublishedAt == nil {
		now := time.Now()
		page.PublishedAt = &now
	}

	if err := s.pages.Create(ctx, page); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: slug already in use on this site", ErrConflict)
		}
		return fmt.Errorf("creating page: %w", err)
	}
	return nil
}

func (s *pageService) Get(ctx context.Context, actor Actor, siteID, pageID uint, kind string) (*model.Page, error) {
	return s.load(ctx, actor, siteID, pageID, kind)
}

func (s *pageService) List(ctx context.Context, actor Actor, siteID uint, kind string) ([]model.Page, error) {
	if kind == "" {
		kind = model.PageKindPage
	}
	if err := s.authorize(ctx, actor, siteID, kind); err != nil {
		return nil, err
	}
	return s.pages.ListBySite(ctx, siteID, kind)
}

func (s *pageService) Update(ctx context.Context, actor Actor, siteID, pageID uint, kind string, update *model.Page) (*model.Page, error) {
	page, err := s.load(ctx, actor, siteID, pageID, kind)
	if err != nil {
		return nil, err
	}

	if update.Slug != "" && update.Slug != page.Slug {
		if _, err := s.pages.GetBySlug(ctx, siteID, update.Slug); err == nil {
			return nil, fmt.Errorf("%w: slug already in use on this site", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checking slug: %w", err)
		}
		page.Slug = update.Slug
	}
	if update.Title != "" {
		page.Title = update.Title
	}
	page.Content = update.Content
	if update.IsPublished && !page.IsPublished {
		now := time.Now()
		page.PublishedAt = &now
	}
	page.IsPublished = update.IsPublished

	if err := s.pages.Update(ctx, page); err != nil {
		return nil, fmt.Errorf("updating page: %w", err)
	}
	return page, nil
}

func (s *pageService) Delete(ctx context.Context, actor Actor, siteID, pageID uint, kind string) error {
	if _, err := s.load(ctx, actor, siteID, pageID, kind); err != nil {
		return err
	}
	deleted, err := s.pages.Delete(ctx, siteID, pageID)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// load resolves a page after the full authorization chain. The feature gate
// runs before the page table is touched; a row whose kind does not match the
// requesting route reads as absent.
func (s *pageService) load(ctx context.Context, actor Actor, siteID, pageID uint, kind string) (*model.Page, error) {
	if err := s.authorize(ctx, actor, siteID, kind); err != nil {
		return nil, err
	}

	page, err := s.pages.GetByID(ctx, siteID, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading page: %w", err)
	}
	if page.Kind != kind {
		return nil, ErrNotFound
	}
	return page, nil
}
