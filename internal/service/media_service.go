package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/repository"
	"cms-service/internal/storage"
)

// ErrStorageUnavailable is returned when no object store is configured.
var ErrStorageUnavailable = errors.New("media storage is not configured")

// MediaService manages uploaded files, gated by the MEDIA feature. Bytes go
// to the object store; metadata goes to the database.
type MediaService interface {
	Upload(ctx context.Context, actor Actor, siteID uint, fileName, contentType string, body io.Reader, size int64) (*model.MediaFile, error)
	Get(ctx context.Context, actor Actor, siteID, id uint) (*model.MediaFile, error)
	List(ctx context.Context, actor Actor, siteID uint) ([]model.MediaFile, error)
	Delete(ctx context.Context, actor Actor, siteID, id uint) error
}

type mediaService struct {
	media repository.MediaRepository
	store storage.ObjectStore
	guard *AccessGuard
	log   *zap.Logger
}

// NewMediaService creates a MediaService. store may be nil when object
// storage is not configured.
func NewMediaService(media repository.MediaRepository, store storage.ObjectStore, guard *AccessGuard, log *zap.Logger) MediaService {
	return &mediaService{media: media, store: store, guard: guard, log: log}
}

func (s *mediaService) authorize(ctx context.Context, actor Actor, siteID uint) error {
	if _, err := s.guard.RequireMember(ctx, actor, siteID); err != nil {
		return err
	}
	return s.guard.RequireFeature(ctx, siteID, model.FeatureMedia)
}

func (s *mediaService) Upload(ctx context.Context, actor Actor, siteID uint, fileName, contentType string, body io.Reader, size int64) (*model.MediaFile, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidation)
	}

	key := fmt.Sprintf("sites/%d/media/%s%s", siteID, uuid.New().String(), path.Ext(fileName))
	url, err := s.store.Put(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("uploading object: %w", err)
	}

	file := &model.MediaFile{
		SiteID:      siteID,
		FileName:    fileName,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   size,
		URL:         url,
		UploadedBy:  actor.UserID,
	}
	if err := s.media.Create(ctx, file); err != nil {
		// The object is already in the store; remove it so the bucket does
		// not accumulate rows nothing references.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Warn("orphaned object cleanup failed",
				zap.String("key", key),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("creating media record: %w", err)
	}
	return file, nil
}

func (s *mediaService) Get(ctx context.Context, actor Actor, siteID, id uint) (*model.MediaFile, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}

	file, err := s.media.GetByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading media record: %w", err)
	}
	return file, nil
}

func (s *mediaService) List(ctx context.Context, actor Actor, siteID uint) ([]model.MediaFile, error) {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return nil, err
	}
	return s.media.ListBySite(ctx, siteID)
}

func (s *mediaService) Delete(ctx context.Context, actor Actor, siteID, id uint) error {
	if err := s.authorize(ctx, actor, siteID); err != nil {
		return err
	}

	file, err := s.media.GetByID(ctx, siteID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading media record: %w", err)
	}

	deleted, err := s.media.Delete(ctx, siteID, id)
	if err != nil {
		return fmt.Errorf("deleting media record: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, file.StorageKey); err != nil {
			s.log.Warn("object delete failed, metadata removed",
				zap.String("key", file.StorageKey),
				zap.Error(err))
		}
	}
	return nil
}
