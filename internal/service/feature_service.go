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

// defaultContactFields is the field template seeded when CONTACT_MANAGEMENT
// is first enabled for a site.
var defaultContactFields = []model.ContactFormField{
	{Name: "name", Label: "Full Name", FieldType: model.FieldTypeText, IsRequired: true, SortOrder: 0},
	{Name: "email", Label: "Email Address", FieldType: model.FieldTypeEmail, IsRequired: true, SortOrder: 1},
	{Name: "phone", Label: "Phone Number", FieldType: model.FieldTypePhone, SortOrder: 2},
	{Name: "company", Label: "Company", FieldType: model.FieldTypeText, SortOrder: 3},
	{Name: "subject", Label: "Subject", FieldType: model.FieldTypeText, IsRequired: true, SortOrder: 4},
	{Name: "message", Label: "Message", FieldType: model.FieldTypeTextarea, IsRequired: true, SortOrder: 5},
	{Name: "referral", Label: "How did you hear about us?", FieldType: model.FieldTypeSelect, SortOrder: 6},
}

// FeatureService manages per-site feature flags and the side effects of
// enabling them
type FeatureService interface {
	List(ctx context.Context, actor Actor, siteID uint) ([]model.SiteFeature, error)
	Create(ctx context.Context, actor Actor, siteID uint, feature *model.SiteFeature) error
	Update(ctx context.Context, actor Actor, siteID, featureID uint, update *model.SiteFeature) (*model.SiteFeature, error)
	Delete(ctx context.Context, actor Actor, siteID, featureID uint) error
}

type featureService struct {
	features repository.FeatureRepository
	contact  repository.ContactRepository
	guard    *AccessGuard
	logger   *zap.Logger
}

// NewFeatureService creates a FeatureService
func NewFeatureService(features repository.FeatureRepository, contact repository.ContactRepository, guard *AccessGuard, logger *zap.Logger) FeatureService {
	return &featureService{features: features, contact: contact, guard: guard, logger: logger}
}

func (s *featureService) List(ctx context.Context, actor Actor, siteID uint) ([]model.SiteFeature, error) {
	if _, err := s.guard.RequireMember(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.features.ListBySite(ctx, siteID)
}

func (s *featureService) Create(ctx context.Context, actor Actor, siteID uint, feature *model.SiteFeature) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return err
	}
	if !model.IsKnownFeature(feature.Feature) {
		return fmt.Errorf("%w: unknown feature %q", ErrValidation, feature.Feature)
	}

	// One row per (site, feature) pair
	if _, err := s.features.GetBySiteAndName(ctx, siteID, feature.Feature); err == nil {
		return fmt.Errorf("%w: feature already configured for this site", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("loading feature: %w", err)
	}

	feature.SiteID = siteID
	if err := s.features.Create(ctx, feature); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: feature already configured for this site", ErrConflict)
		}
		return fmt.Errorf("creating feature: %w", err)
	}

	s.logger.Info("Feature configured",
		zap.Uint("site_id", siteID),
		zap.String("feature", feature.Feature),
		zap.Bool("enabled", feature.IsEnabled))

	if feature.IsEnabled {
		return s.runEnableSideEffects(ctx, siteID, feature.Feature)
	}
	return nil
}

func (s *featureService) Update(ctx context.Context, actor Actor, siteID, featureID uint, update *model.SiteFeature) (*model.SiteFeature, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return nil, err
	}

	feature, err := s.features.GetByID(ctx, featureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading feature: %w", err)
	}
	if feature.SiteID != siteID {
		return nil, ErrNotFound
	}

	wasEnabled := feature.IsEnabled
	feature.IsEnabled = update.IsEnabled
	feature.DisplayName = update.DisplayName
	feature.Description = update.Description
	if update.Config != "" {
		feature.Config = update.Config
	}

	if err := s.features.Update(ctx, feature); err != nil {
		return nil, fmt.Errorf("updating feature: %w", err)
	}

	if !wasEnabled && feature.IsEnabled {
		if err := s.runEnableSideEffects(ctx, siteID, feature.Feature); err != nil {
			return nil, err
		}
	}
	return feature, nil
}

func (s *featureService) Delete(ctx context.Context, actor Actor, siteID, featureID uint) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return err
	}

	feature, err := s.features.GetByID(ctx, featureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading feature: %w", err)
	}
	if feature.SiteID != siteID {
		return ErrNotFound
	}

	return s.features.Delete(ctx, featureID)
}

// runEnableSideEffects seeds default child resources on first enable. Seeding
// is idempotent: an existing resource short-circuits.
func (s *featureService) runEnableSideEffects(ctx context.Context, siteID uint, feature string) error {
	if feature != model.FeatureContactManagement {
		return nil
	}

	if _, err := s.contact.GetFormBySite(ctx, siteID); err == nil {
		// Already seeded
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking contact form: %w", err)
	}

	fields := make([]model.ContactFormField, len(defaultContactFields))
	copy(fields, defaultContactFields)

	form := &model.ContactForm{
		SiteID: siteID,
		Title:  "Contact Us",
		Fields: fields,
	}
	if err := s.contact.CreateForm(ctx, form); err != nil {
		return fmt.Errorf("seeding contact form: %w", err)
	}

	s.logger.Info("Seeded default contact form", zap.Uint("site_id", siteID), zap.Int("fields", len(fields)))
	return nil
}
