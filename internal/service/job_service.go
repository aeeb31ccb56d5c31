package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
)

// JobService manages employer profiles and job listings, gated by the
// JOB_BOARD feature
type JobService interface {
	CreateCompany(ctx context.Context, actor Actor, siteID uint, company *model.Company) error
	ListCompanies(ctx context.Context, actor Actor, siteID uint) ([]model.Company, error)
	UpdateCompany(ctx context.Context, actor Actor, siteID, companyID uint, update *model.Company) (*model.Company, error)
	DeleteCompany(ctx context.Context, actor Actor, siteID, companyID uint) error

	CreateListing(ctx context.Context, actor Actor, siteID uint, job *model.JobListing) error
	GetListing(ctx context.Context, actor Actor, siteID, jobID uint) (*model.JobListing, error)
	ListListings(ctx context.Context, actor Actor, siteID uint) ([]model.JobListing, error)
	UpdateListing(ctx context.Context, actor Actor, siteID, jobID uint, update *model.JobListing) (*model.JobListing, error)
	DeleteListing(ctx context.Context, actor Actor, siteID, jobID uint) error
}

type jobService struct {
	companies repository.CompanyRepository
	jobs      repository.JobRepository
	guard     *AccessGuard
}

// NewJobService creates a JobService
func NewJobService(companies repository.CompanyRepository, jobs repository.JobRepository, guard *AccessGuard) JobService {
	return &jobService{companies: companies, jobs: jobs, guard: guard}
}

func (s *jobService) authorize(ctx context.Context, actor Actor, siteID uint) error {
	if _, err := s.guard.RequireMember(ctx, actor, siteID); err != nil {
		return err
	}
	return s.guard.RequireFeature(ctx, siteID, model.FeatureJobBoard)
}

func (s *jobService) CreateCompany(ctx context.Context, actor Actor, siteID uint, company *model.Company) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}
	if company.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	company.SiteID = siteID
	if err := s.companies.Create(ctx, company); err != nil {
		return fmt.Errorf("creating company: %w", err)
	}
	return nil
}

func (s *jobService) ListCompanies(ctx context.Context, actor Actor, siteID uint) ([]model.Company, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.companies.ListBySite(ctx, siteID)
}

func (s *jobService) UpdateCompany(ctx context.Context, actor Actor, siteID, companyID uint, update *model.Company) (*model.Company, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}

	company, err := s.companies.GetByID(ctx, siteID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading company: %w", err)
	}

	if update.Name != "" {
		company.Name = update.Name
	}
	company.Description = update.Description
	company.Website = update.Website
	company.LogoURL = update.LogoURL
	company.IsActive = update.IsActive

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}
	return company, nil
}

func (s *jobService) DeleteCompany(ctx context.Context, actor Actor, siteID, companyID uint) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}

	deleted, err := s.companies.Delete(ctx, siteID, companyID)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *jobService) CreateListing(ctx context.Context, actor Actor, siteID uint, job *model.JobListing) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}
	if job.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}

	// A listing references exactly one company of the same site
	if _, err := s.companies.GetByID(ctx, siteID, job.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: company not found on this site", ErrValidation)
		}
		return fmt.Errorf("loading company: %w", err)
	}

	if job.Status == "" {
		job.Status = model.JobStatusDraft
	}
	job.SiteID = siteID
	if err := s.jobs.Create(ctx, job); err != nil {
		return fmt.Errorf("creating job listing: %w", err)
	}
	return nil
}

func (s *jobService) GetListing(ctx context.Context, actor Actor, siteID, jobID uint) (*model.JobListing, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, siteID, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading job listing: %w", err)
	}
	return job, nil
}

func (s *jobService) ListListings(ctx context.Context, actor Actor, siteID uint) ([]model.JobListing, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.jobs.ListBySite(ctx, siteID)
}

func (s *jobService) UpdateListing(ctx context.Context, actor Actor, siteID, jobID uint, update *model.JobListing) (*model.JobListing, error) {
	job, err := s.GetListing(ctx, actor, siteID, jobID)
	if err != nil {
		return nil, err
	}

	if update.Title != "" {
		job.Title = update.Title
	}
	job.Description = update.Description
	job.JobType = update.JobType
	job.ExperienceLevel = update.ExperienceLevel
	job.RemoteType = update.RemoteType
	job.SalaryMin = update.SalaryMin
	job.SalaryMax = update.SalaryMax
	if update.Status != "" {
		job.Status = update.Status
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("updating job listing: %w", err)
	}
	return job, nil
}

func (s *jobService) DeleteListing(ctx context.Context, actor Actor, siteID, jobID uint) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}

	deleted, err := s.jobs.Delete(ctx, siteID, jobID)
	if err != nil {
		return fmt.Errorf("deleting job listing: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
