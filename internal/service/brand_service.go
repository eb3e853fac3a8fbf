package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrBrandNotFound means no brand voice exists with the given id.
	ErrBrandNotFound = errors.New("brand voice not found")
	// ErrBrandNotOwned means the brand exists but belongs to another user.
	// Handlers collapse it to the same external response as not-found so
	// existence does not leak; the distinction is kept for diagnostics.
	ErrBrandNotOwned = errors.New("brand voice not owned by caller")
	// ErrInvalidBrand means the brand payload failed semantic validation.
	ErrInvalidBrand = errors.New("invalid brand voice")
)

// BrandService resolves brand voices for generation and carries the brand
// CRUD surface. All prompt compilation goes through Resolve; nothing else
// reads brand rows for generation.
type BrandService interface {
	// Resolve returns the voice for the given id. The reserved default id
	// yields the built-in profile unconditionally; it is not a real record
	// and gets no ownership check.
	Resolve(ctx context.Context, brandID, userID string) (model.ResolvedVoice, error)
	// ResolveDefault returns the user's default brand voice, or the built-in
	// profile when the user has none.
	ResolveDefault(ctx context.Context, userID string) (model.ResolvedVoice, error)

	CreateBrand(ctx context.Context, userID string, b *model.BrandVoice) (*model.BrandVoice, error)
	GetBrand(ctx context.Context, brandID, userID string) (*model.BrandVoice, error)
	ListBrands(ctx context.Context, userID string, limit, offset int) ([]model.BrandVoice, error)
	UpdateBrand(ctx context.Context, userID string, b *model.BrandVoice) (*model.BrandVoice, error)
	DeleteBrand(ctx context.Context, brandID, userID string) error
	SetDefault(ctx context.Context, brandID, userID string) error
}

type brandService struct {
	repo   repository.BrandRepository
	logger zerolog.Logger
}

// NewBrandService creates a new BrandService.
func NewBrandService(repo repository.BrandRepository, logger zerolog.Logger) BrandService {
	return &brandService{
		repo:   repo,
		logger: logger.With().Str("service", "BrandService").Logger(),
	}
}

func (s *brandService) Resolve(ctx context.Context, brandID, userID string) (model.ResolvedVoice, error) {
	if brandID == model.DefaultVoiceID {
		return model.ResolvedVoice{Profile: model.DefaultVoiceProfile}, nil
	}
	brand, err := s.repo.GetBrandByID(ctx, brandID)
	if err != nil {
		s.logger.Error().Err(err).Str("brand_id", brandID).Msg("Failed to look up brand voice")
		return model.ResolvedVoice{}, fmt.Errorf("looking up brand voice: %w", err)
	}
	if brand == nil {
		return model.ResolvedVoice{}, ErrBrandNotFound
	}
	if brand.UserID != userID {
		return model.ResolvedVoice{}, ErrBrandNotOwned
	}
	return model.ResolvedVoice{Profile: brand.Profile(), Brand: brand}, nil
}

func (s *brandService) ResolveDefault(ctx context.Context, userID string) (model.ResolvedVoice, error) {
	brand, err := s.repo.GetDefaultBrandByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to look up default brand voice")
		return model.ResolvedVoice{}, fmt.Errorf("looking up default brand voice: %w", err)
	}
	if brand == nil {
		return model.ResolvedVoice{Profile: model.DefaultVoiceProfile}, nil
	}
	return model.ResolvedVoice{Profile: brand.Profile(), Brand: brand}, nil
}

func (s *brandService) CreateBrand(ctx context.Context, userID string, b *model.BrandVoice) (*model.BrandVoice, error) {
	if !model.ValidTone(b.Tone) {
		return nil, fmt.Errorf("%w: unknown tone %q", ErrInvalidBrand, b.Tone)
	}
	b.ID = uuid.NewString()
	b.UserID = userID
	if err := s.repo.CreateBrand(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create brand voice")
		return nil, fmt.Errorf("creating brand voice: %w", err)
	}
	return b, nil
}

func (s *brandService) GetBrand(ctx context.Context, brandID, userID string) (*model.BrandVoice, error) {
	brand, err := s.repo.GetBrandByID(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("getting brand voice: %w", err)
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	if brand.UserID != userID {
		return nil, ErrBrandNotOwned
	}
	return brand, nil
}

func (s *brandService) ListBrands(ctx context.Context, userID string, limit, offset int) ([]model.BrandVoice, error) {
	brands, err := s.repo.ListBrandsByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list brand voices")
		return nil, fmt.Errorf("listing brand voices: %w", err)
	}
	return brands, nil
}

func (s *brandService) UpdateBrand(ctx context.Context, userID string, b *model.BrandVoice) (*model.BrandVoice, error) {
	existing, err := s.GetBrand(ctx, b.ID, userID)
	if err != nil {
		return nil, err
	}
	if !model.ValidTone(b.Tone) {
		return nil, fmt.Errorf("%w: unknown tone %q", ErrInvalidBrand, b.Tone)
	}
	b.UserID = existing.UserID
	b.IsDefault = existing.IsDefault
	if err := s.repo.UpdateBrand(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("brand_id", b.ID).Msg("Failed to update brand voice")
		return nil, fmt.Errorf("updating brand voice: %w", err)
	}
	return b, nil
}

func (s *brandService) DeleteBrand(ctx context.Context, brandID, userID string) error {
	if _, err := s.GetBrand(ctx, brandID, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteBrand(ctx, brandID); err != nil {
		s.logger.Error().Err(err).Str("brand_id", brandID).Msg("Failed to delete brand voice")
		return fmt.Errorf("deleting brand voice: %w", err)
	}
	return nil
}

func (s *brandService) SetDefault(ctx context.Context, brandID, userID string) error {
	if err := s.repo.SetDefaultBrand(ctx, userID, brandID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBrandNotFound
		}
		s.logger.Error().Err(err).Str("brand_id", brandID).Msg("Failed to set default brand voice")
		return fmt.Errorf("setting default brand voice: %w", err)
	}
	return nil
}
