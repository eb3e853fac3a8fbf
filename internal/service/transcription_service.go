package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// ErrAssetNotFound covers both a missing asset and one owned by another
// user; the two are indistinguishable to the caller.
var ErrAssetNotFound = errors.New("media asset not found")

const transcriptionLanguage = "en"

// TranscriptionService downloads a stored media object, transcribes it, and
// caches the transcript on the asset record so repeat calls are free.
type TranscriptionService interface {
	Transcribe(ctx context.Context, assetID, userID string) (string, error)
}

type transcriptionService struct {
	mediaRepo repository.MediaRepository
	storage   ObjectStorage
	stt       SpeechToText
	quota     QuotaService
	logger    zerolog.Logger
}

// NewTranscriptionService creates a new TranscriptionService.
func NewTranscriptionService(
	mediaRepo repository.MediaRepository,
	storage ObjectStorage,
	stt SpeechToText,
	quota QuotaService,
	logger zerolog.Logger,
) TranscriptionService {
	return &transcriptionService{
		mediaRepo: mediaRepo,
		storage:   storage,
		stt:       stt,
		quota:     quota,
		logger:    logger.With().Str("service", "TranscriptionService").Logger(),
	}
}

func (s *transcriptionService) Transcribe(ctx context.Context, assetID, userID string) (string, error) {
	asset, err := s.lookupOwned(ctx, assetID, userID)
	if err != nil {
		return "", err
	}

	// Cache short-circuit runs before the quota check, so re-reads of an
	// already transcribed asset never consume quota.
	if asset.Transcribed() {
		return *asset.Transcript, nil
	}

	if err := s.quota.CheckTranscription(ctx, userID); err != nil {
		return "", err
	}

	body, err := s.storage.Download(ctx, asset.StoragePath)
	if err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Failed to download media for transcription")
		return "", fmt.Errorf("downloading media: %w", err)
	}
	defer func() {
		_ = body.Close()
	}()

	transcript, err := s.stt.Transcribe(ctx, body, asset.Filename, asset.MimeType, transcriptionLanguage)
	if err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Speech-to-text failed")
		return "", fmt.Errorf("transcribing media: %w", err)
	}

	// A failed cache write costs a repeat transcription next time but the
	// caller still gets the text now.
	if err := s.mediaRepo.SetTranscript(ctx, assetID, transcript); err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Failed to cache transcript on asset")
	}

	return transcript, nil
}

func (s *transcriptionService) lookupOwned(ctx context.Context, assetID, userID string) (*model.MediaAsset, error) {
	asset, err := s.mediaRepo.GetAssetByID(ctx, assetID)
	if err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Failed to look up media asset")
		return nil, fmt.Errorf("looking up media asset: %w", err)
	}
	if asset == nil || asset.UserID != userID {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}
