package repository

import "gorm.io/gorm"

// Repository aggregates all data access interfaces
type Repository struct {
	User    UserRepository
	Invite  InviteRepository
	Site    SiteRepository
	Feature FeatureRepository
	Page    PageRepository
	Sponsor SponsorRepository
	Company CompanyRepository
	Job     JobRepository
	Contact ContactRepository
	Social  SocialRepository
	Media   MediaRepository
}

// NewRepository wires the gorm implementations
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:    NewUserRepo(db),
		Invite:  NewInviteRepo(db),
		Site:    NewSiteRepo(db),
		Feature: NewFeatureRepo(db),
		Page:    NewPageRepo(db),
		Sponsor: NewSponsorRepo(db),
		Company: NewCompanyRepo(db),
		Job:     NewJobRepo(db),
		Contact: NewContactRepo(db),
		Social:  NewSocialRepo(db),
		Media:   NewMediaRepo(db),
	}
}
