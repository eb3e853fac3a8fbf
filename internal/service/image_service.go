package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/util"

	"github.com/rs/zerolog"
)

const imagePromptSourceLimit = 500

// ImageService synthesizes an optional cover image and moves it from the
// upstream's ephemeral hosting into durable object storage. When the
// fetch/persist step fails the ephemeral URL is returned instead, trading
// durability for availability: the record keeps some image now, at the cost
// of a reference that eventually expires.
type ImageService interface {
	// Synthesize returns the cover image URL, or nil when no image could be
	// produced. It never fails the surrounding generation.
	Synthesize(ctx context.Context, userID, sourceText string) *string
}

type imageService struct {
	generator  ImageGenerator
	storage    ObjectStorage
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewImageService creates a new ImageService.
func NewImageService(generator ImageGenerator, storage ObjectStorage, logger zerolog.Logger) ImageService {
	return &imageService{
		generator:  generator,
		storage:    storage,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.With().Str("service", "ImageService").Logger(),
	}
}

func (s *imageService) Synthesize(ctx context.Context, userID, sourceText string) *string {
	prompt := "Create a clean, modern cover image suitable for a social media post about the following topic. No text in the image.\n\n" +
		util.Truncate(sourceText, imagePromptSourceLimit)

	ephemeralURL, err := s.generator.GenerateImage(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Cover image generation failed, continuing without image")
		return nil
	}

	key := fmt.Sprintf("covers/%s/%d.png", userID, time.Now().UnixNano())
	if err := s.persist(ctx, ephemeralURL, key); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Cover image persistence failed, falling back to ephemeral URL")
		return &ephemeralURL
	}

	durable := s.storage.PublicURL(key)
	return &durable
}

// persist downloads the ephemeral image and re-uploads it into durable storage.
func (s *imageService) persist(ctx context.Context, ephemeralURL, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ephemeralURL, nil)
	if err != nil {
		return fmt.Errorf("building image fetch request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching generated image: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching generated image: HTTP %d", resp.StatusCode)
	}
	if err := s.storage.Upload(ctx, key, resp.Body, "image/png"); err != nil {
		return fmt.Errorf("persisting generated image: %w", err)
	}
	return nil
}
