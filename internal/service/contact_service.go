package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
)

// MissingFieldsError reports which required fields a public submission left
// out, by display label.
type MissingFieldsError struct {
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Labels, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrValidation }

// ValidateSubmission checks values against the form's required fields and
// returns the labels of everything missing, in field order.
func ValidateSubmission(fields []model.ContactFormField, values map[string]string) []string {
	var missing []string
	for _, f := range fields {
		if !f.IsRequired {
			continue
		}
		if strings.TrimSpace(values[f.Name]) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// ContactService manages the per-site contact form and its submissions,
// gated by the CONTACT_MANAGEMENT feature
type ContactService interface {
	GetForm(ctx context.Context, actor Actor, siteID uint) (*model.ContactForm, error)
	UpdateForm(ctx context.Context, actor Actor, siteID uint, upd *model.ContactForm) (*model.ContactForm, error)
	ListSubmissions(ctx context.Context, actor Actor, siteID uint, includeArchived bool) ([]model.ContactSubmission, error)
	GetSubmission(ctx context.Context, actor Actor, siteID, id uint) (*model.ContactSubmission, error)
	UpdateSubmissionFlags(ctx context.Context, actor Actor, siteID, id uint, isRead, isArchived *bool) error
	DeleteSubmission(ctx context.Context, actor Actor, siteID, id uint) error

	// Submit is the public, unauthenticated intake. The site must exist and
	// the feature must be on; required fields missing fail validation before
	// any row is created.
	Submit(ctx context.Context, siteID uint, values map[string]string, ip, userAgent string) (*model.ContactSubmission, error)
}

type contactService struct {
	contact repository.ContactRepository
	guard   *AccessGuard
}

// NewContactService creates a ContactService
func NewContactService(contact repository.ContactRepository, guard *AccessGuard) ContactService {
	return &contactService{contact: contact, guard: guard}
}

func (s *contactService) authorize(ctx context.Context, actor Actor, siteID uint) error {
	if _, err := s.guard.RequireMember(ctx, actor, siteID); err != nil {
		return err
	}
	return s.guard.RequireFeature(ctx, siteID, model.FeatureContactManagement)
}

func (s *contactService) GetForm(ctx context.Context, actor Actor, siteID uint) (*model.ContactForm, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.loadForm(ctx, siteID)
}

func (s *contactService) loadForm(ctx context.Context, siteID uint) (*model.ContactForm, error) {
	form, err := s.contact.GetFormBySite(ctx, siteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading contact form: %w", err)
	}
	return form, nil
}

func (s *contactService) UpdateForm(ctx context.Context, actor Actor, siteID uint, upd *model.ContactForm) (*model.ContactForm, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}

	form, err := s.loadForm(ctx, siteID)
	if err != nil {
		return nil, err
	}

	if upd.Title != "" {
		form.Title = upd.Title
	}
	form.Description = upd.Description

	// Field edits replace the whole ordered set; submissions keep their own
	// label snapshots so history is unaffected.
	if len(upd.Fields) > 0 {
		for i := range upd.Fields {
			upd.Fields[i].FormID = form.ID
		}
		form.Fields = upd.Fields
	}

	if err := s.contact.UpdateForm(ctx, form); err != nil {
		return nil, fmt.Errorf("updating contact form: %w", err)
	}
	return form, nil
}

func (s *contactService) ListSubmissions(ctx context.Context, actor Actor, siteID uint, includeArchived bool) ([]model.ContactSubmission, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.contact.ListSubmissions(ctx, siteID, includeArchived)
}

func (s *contactService) GetSubmission(ctx context.Context, actor Actor, siteID, id uint) (*model.ContactSubmission, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}

	submission, err := s.contact.GetSubmission(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading submission: %w", err)
	}
	return submission, nil
}

func (s *contactService) UpdateSubmissionFlags(ctx context.Context, actor Actor, siteID, id uint, isRead, isArchived *bool) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}

	updated, err := s.contact.UpdateSubmissionFlags(ctx, siteID, id, isRead, isArchived)
	if err != nil {
		return fmt.Errorf("updating submission flags: %w", err)
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (s *contactService) DeleteSubmission(ctx context.Context, actor Actor, siteID, id uint) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}

	deleted, err := s.contact.DeleteSubmission(ctx, siteID, id)
	if err != nil {
		return fmt.Errorf("deleting submission: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *contactService) Submit(ctx context.Context, siteID uint, values map[string]string, ip, userAgent string) (*model.ContactSubmission, error) {
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireFeature(ctx, siteID, model.FeatureContactManagement); err != nil {
		return nil, err
	}

	form, err := s.loadForm(ctx, siteID)
	if err != nil {
		return nil, err
	}

	if missing := ValidateSubmission(form.Fields, values); len(missing) > 0 {
		return nil, &MissingFieldsError{Labels: missing}
	}

	// Snapshot the field labels alongside the values so later form edits
	// cannot rewrite submission history.
	submission := &model.ContactSubmission{
		SiteID:    siteID,
		FormID:    form.ID,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	for _, f := range form.Fields {
		value, ok := values[f.Name]
		if !ok {
			continue
		}
		submission.Data = append(submission.Data, model.ContactSubmissionData{
			FieldName:  f.Name,
			FieldLabel: f.Label,
			Value:      value,
		})
	}

	if err := s.contact.CreateSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("creating submission: %w", err)
	}
	return submission, nil
}
