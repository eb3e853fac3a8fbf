package service

import (
	"context"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MediaService handles upload lifecycle and record management for media
// assets. Uploads go straight to object storage through presigned URLs; the
// record is created first so the storage path can be derived from its id.
type MediaService interface {
	InitiateUpload(ctx context.Context, userID, filename, mimeType string, sizeBytes int64) (*model.MediaAsset, string, error)
	CompleteUpload(ctx context.Context, assetID, userID string) (*model.MediaAsset, error)
	GetAsset(ctx context.Context, assetID, userID string) (*model.MediaAsset, error)
	ListAssets(ctx context.Context, userID string, limit, offset int) ([]model.MediaAsset, error)
	DeleteAsset(ctx context.Context, assetID, userID string) error
}

type mediaService struct {
	repo    repository.MediaRepository
	storage ObjectStorage
	logger  zerolog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(repo repository.MediaRepository, storage ObjectStorage, logger zerolog.Logger) MediaService {
	return &mediaService{
		repo:    repo,
		storage: storage,
		logger:  logger.With().Str("service", "MediaService").Logger(),
	}
}

// InitiateUpload creates the asset record and returns a presigned URL for a
// direct upload to object storage.
func (s *mediaService) InitiateUpload(ctx context.Context, userID, filename, mimeType string, sizeBytes int64) (*model.MediaAsset, string, error) {
	asset := &model.MediaAsset{
		ID:        uuid.NewString(),
		UserID:    userID,
		Filename:  filename,
		MimeType:  mimeType,
		SizeBytes: sizeBytes,
	}
	asset.StoragePath = fmt.Sprintf("media/%s/%s/%s", userID, asset.ID, filename)

	if err := s.repo.CreateAsset(ctx, asset); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create media asset record")
		return nil, "", fmt.Errorf("creating media asset: %w", err)
	}

	uploadURL, err := s.storage.PresignPut(ctx, asset.StoragePath)
	if err != nil {
		// Clean up the record so a failed presign does not leave an orphan.
		_ = s.repo.DeleteAsset(ctx, asset.ID)
		s.logger.Error().Err(err).Str("asset_id", asset.ID).Msg("Failed to generate presigned upload URL")
		return nil, "", fmt.Errorf("generating upload URL: %w", err)
	}

	return asset, uploadURL, nil
}

// CompleteUpload verifies the object landed in storage.
func (s *mediaService) CompleteUpload(ctx context.Context, assetID, userID string) (*model.MediaAsset, error) {
	asset, err := s.GetAsset(ctx, assetID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Head(ctx, asset.StoragePath); err != nil {
		s.logger.Error().Err(err).Str("storage_path", asset.StoragePath).Msg("Uploaded file not found at expected path")
		return nil, fmt.Errorf("verifying upload: %w", err)
	}
	return asset, nil
}

func (s *mediaService) GetAsset(ctx context.Context, assetID, userID string) (*model.MediaAsset, error) {
	asset, err := s.repo.GetAssetByID(ctx, assetID)
	if err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Failed to get media asset")
		return nil, fmt.Errorf("getting media asset: %w", err)
	}
	if asset == nil || asset.UserID != userID {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}

func (s *mediaService) ListAssets(ctx context.Context, userID string, limit, offset int) ([]model.MediaAsset, error) {
	assets, err := s.repo.ListAssetsByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list media assets")
		return nil, fmt.Errorf("listing media assets: %w", err)
	}
	return assets, nil
}

// DeleteAsset removes the stored object, then the record. A storage failure
// is logged but does not block the record delete.
func (s *mediaService) DeleteAsset(ctx context.Context, assetID, userID string) error {
	asset, err := s.GetAsset(ctx, assetID, userID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, asset.StoragePath); err != nil {
		s.logger.Error().Err(err).Str("storage_path", asset.StoragePath).Msg("Failed to delete object from storage")
	}
	if err := s.repo.DeleteAsset(ctx, assetID); err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Failed to delete media asset record")
		return fmt.Errorf("deleting media asset: %w", err)
	}
	return nil
}
