package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

var (
	// ErrContentNotFound covers both a missing record and one owned by
	// another user.
	ErrContentNotFound = errors.New("content record not found")
	// ErrInvalidStatus means an unknown lifecycle status was requested.
	ErrInvalidStatus = errors.New("invalid content status")
)

// ContentService manages persisted content records. Generation creates them;
// everything here is read, status change, or delete.
type ContentService interface {
	GetContent(ctx context.Context, contentID, userID string) (*model.ContentRecord, error)
	ListContent(ctx context.Context, userID string, limit, offset int) ([]model.ContentRecord, error)
	UpdateStatus(ctx context.Context, contentID, userID, status string) (*model.ContentRecord, error)
	DeleteContent(ctx context.Context, contentID, userID string) error
}

type contentService struct {
	repo   repository.ContentRepository
	logger zerolog.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(repo repository.ContentRepository, logger zerolog.Logger) ContentService {
	return &contentService{
		repo:   repo,
		logger: logger.With().Str("service", "ContentService").Logger(),
	}
}

func (s *contentService) GetContent(ctx context.Context, contentID, userID string) (*model.ContentRecord, error) {
	record, err := s.repo.GetContentByID(ctx, contentID)
	if err != nil {
		s.logger.Error().Err(err).Str("content_id", contentID).Msg("Failed to get content record")
		return nil, fmt.Errorf("getting content record: %w", err)
	}
	if record == nil || record.UserID != userID {
		return nil, ErrContentNotFound
	}
	return record, nil
}

func (s *contentService) ListContent(ctx context.Context, userID string, limit, offset int) ([]model.ContentRecord, error) {
	records, err := s.repo.ListContentByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list content records")
		return nil, fmt.Errorf("listing content records: %w", err)
	}
	return records, nil
}

func (s *contentService) UpdateStatus(ctx context.Context, contentID, userID, status string) (*model.ContentRecord, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	record, err := s.GetContent(ctx, contentID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContentStatus(ctx, contentID, status); err != nil {
		s.logger.Error().Err(err).Str("content_id", contentID).Msg("Failed to update content status")
		return nil, fmt.Errorf("updating content status: %w", err)
	}
	record.Status = status
	return record, nil
}

func (s *contentService) DeleteContent(ctx context.Context, contentID, userID string) error {
	if _, err := s.GetContent(ctx, contentID, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteContent(ctx, contentID); err != nil {
		s.logger.Error().Err(err).Str("content_id", contentID).Msg("Failed to delete content record")
		return fmt.Errorf("deleting content record: %w", err)
	}
	return nil
}
