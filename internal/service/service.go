package service

import (
	"go.uber.org/zap"

	"cms-service/internal/oauth"
	"cms-service/internal/repository"
	"cms-service/internal/storage"
	"cms-service/pkg/config"
)

// Service aggregates the business logic layer
type Service struct {
	Guard   *AccessGuard
	Auth    AuthService
	Invite  InviteService
	Site    SiteService
	Feature FeatureService
	User    UserService
	Page    PageService
	Sponsor SponsorService
	Job     JobService
	Contact ContactService
	Social  SocialService
	Media   MediaService
	Public  PublicService
}

// NewService wires the service layer over the repositories and external
// clients. fetcher and store may be nil when unconfigured.
func NewService(repo *repository.Repository, verifier oauth.Verifier, fetcher StatsFetcher, store storage.ObjectStore, cfg *config.Config, logger *zap.Logger) *Service {
	guard := NewAccessGuard(repo.Site, repo.Feature)
	return &Service{
		Guard:   guard,
		Auth:    NewAuthService(repo.User, repo.Invite, verifier, logger),
		Invite:  NewInviteService(repo.Invite, repo.User, cfg.Invite.TTL, logger),
		Site:    NewSiteService(repo.Site, repo.User, guard, logger),
		Feature: NewFeatureService(repo.Feature, repo.Contact, guard, logger),
		User:    NewUserService(repo.User, repo.Site),
		Page:    NewPageService(repo.Page, guard),
		Sponsor: NewSponsorService(repo.Sponsor, guard),
		Job:     NewJobService(repo.Company, repo.Job, guard),
		Contact: NewContactService(repo.Contact, guard),
		Social:  NewSocialService(repo.Social, guard, fetcher, cfg.Social.StatTTL, logger),
		Media:   NewMediaService(repo.Media, store, guard, logger),
		Public:  NewPublicService(repo.Sponsor, repo.Job, guard),
	}
}
