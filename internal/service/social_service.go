package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
	"cms-service/prometheus"
)

// StatsFetcher pulls current metric values for a channel from its platform
// API. The returned map is metric name to value.
type StatsFetcher interface {
	FetchStats(ctx context.Context, platform, externalID string) (map[string]string, error)
}

// SocialService manages a site's social media channels and their cached
// stats, gated by the SOCIAL_MEDIA feature
type SocialService interface {
	CreateChannel(ctx context.Context, actor Actor, siteID uint, channel *model.SocialMediaChannel) error
	GetChannel(ctx context.Context, actor Actor, siteID, id uint) (*model.SocialMediaChannel, error)
	ListChannels(ctx context.Context, actor Actor, siteID uint) ([]model.SocialMediaChannel, error)
	UpdateChannel(ctx context.Context, actor Actor, siteID, id uint, upd *model.SocialMediaChannel) (*model.SocialMediaChannel, error)
	DeleteChannel(ctx context.Context, actor Actor, siteID, id uint) error

	// ChannelsWithStats returns channels with stats refreshed when the cached
	// values are older than the configured TTL. A failed refresh keeps the
	// stale values.
	ChannelsWithStats(ctx context.Context, siteID uint) ([]model.SocialMediaChannel, error)
}

type socialService struct {
	social  repository.SocialRepository
	guard   *AccessGuard
	fetcher StatsFetcher
	statTTL time.Duration
	now     func() time.Time
	log     *zap.Logger
}

// NewSocialService creates a SocialService. fetcher may be nil, in which case
// cached stats are served as-is.
func NewSocialService(social repository.SocialRepository, guard *AccessGuard, fetcher StatsFetcher, statTTL time.Duration, log *zap.Logger) SocialService {
	return &socialService{
		social:  social,
		guard:   guard,
		fetcher: fetcher,
		statTTL: statTTL,
		now:     time.Now,
		log:     log,
	}
}

func (s *socialService) authorize(ctx context.Context, actor Actor, siteID uint) error {
	if _, err := s.guard.RequireMember(ctx, actor, siteID); err != nil {
		return err
	}
	return s.guard.RequireFeature(ctx, siteID, model.FeatureSocialMedia)
}

func (s *socialService) CreateChannel(ctx context.Context, actor Actor, siteID uint, channel *model.SocialMediaChannel) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}
	if channel.Platform == "" || channel.ExternalID == "" {
		return fmt.Errorf("%w: platform and external_id are required", ErrValidation)
	}

	channel.SiteID = siteID
	if err := s.social.CreateChannel(ctx, channel); err != nil {
		return fmt.Errorf("creating channel: %w", err)
	}
	return nil
}

func (s *socialService) GetChannel(ctx context.Context, actor Actor, siteID, id uint) (*model.SocialMediaChannel, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.loadChannel(ctx, siteID, id)
}

func (s *socialService) loadChannel(ctx context.Context, siteID, id uint) (*model.SocialMediaChannel, error) {
	channel, err := s.social.GetChannel(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading channel: %w", err)
	}
	return channel, nil
}

func (s *socialService) ListChannels(ctx context.Context, actor Actor, siteID uint) ([]model.SocialMediaChannel, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.social.ListChannels(ctx, siteID)
}

func (s *socialService) UpdateChannel(ctx context.Context, actor Actor, siteID, id uint, upd *model.SocialMediaChannel) (*model.SocialMediaChannel, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}

	channel, err := s.loadChannel(ctx, siteID, id)
	if err != nil {
		return nil, err
	}

	if upd.Platform != "" {
		channel.Platform = upd.Platform
	}
	if upd.ExternalID != "" {
		channel.ExternalID = upd.ExternalID
	}
	if upd.Name != "" {
		channel.Name = upd.Name
	}
	if upd.URL != "" {
		channel.URL = upd.URL
	}

	if err := s.social.UpdateChannel(ctx, channel); err != nil {
		return nil, fmt.Errorf("updating channel: %w", err)
	}
	return channel, nil
}

func (s *socialService) DeleteChannel(ctx context.Context, actor Actor, siteID, id uint) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}

	deleted, err := s.social.DeleteChannel(ctx, siteID, id)
	if err != nil {
		return fmt.Errorf("deleting channel: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *socialService) ChannelsWithStats(ctx context.Context, siteID uint) ([]model.SocialMediaChannel, error) {
	if _, err := s.guard.RequireSite(ctx, siteID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireFeature(ctx, siteID, model.FeatureSocialMedia); err != nil {
		return nil, err
	}

	channels, err := s.social.ListChannels(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}

	for i := range channels {
		s.refreshIfStale(ctx, &channels[i])
	}
	return channels, nil
}

// refreshIfStale re-fetches a channel's stats when any cached value is older
// than the TTL. Fetch failures are logged and swallowed so the public read
// still serves the cached values.
func (s *socialService) refreshIfStale(ctx context.Context, channel *model.SocialMediaChannel) {
	if s.fetcher == nil {
		return
	}

	now := s.now()
	fresh := len(channel.Stats) > 0
	for i := range channel.Stats {
		if !channel.Stats[i].IsFresh(now, s.statTTL) {
			fresh = false
			break
		}
	}
	if fresh {
		prometheus.StatRefreshCounter.WithLabelValues("fresh").Inc()
		return
	}

	values, err := s.fetcher.FetchStats(ctx, channel.Platform, channel.ExternalID)
	if err != nil {
		prometheus.StatRefreshCounter.WithLabelValues("failed").Inc()
		s.log.Warn("social stat refresh failed, serving cached values",
			zap.Uint("channel_id", channel.ID),
			zap.String("platform", channel.Platform),
			zap.Error(err))
		return
	}

	for name, value := range values {
		if err := s.social.UpsertStat(ctx, channel.ID, name, value, now); err != nil {
			s.log.Warn("persisting social stat failed",
				zap.Uint("channel_id", channel.ID),
				zap.String("stat", name),
				zap.Error(err))
		}
	}
	prometheus.StatRefreshCounter.WithLabelValues("ok").Inc()

	if stats, err := s.social.ListStats(ctx, channel.ID); err == nil {
		channel.Stats = stats
	}
}
