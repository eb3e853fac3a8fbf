package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotTranscribed means repurposing was requested before the asset was
// transcribed.
var ErrNotTranscribed = errors.New("media asset has not been transcribed yet")

// Repurpose formats accepted on the wire. Unlike the open-ended generate
// endpoint, the response shape here is fixed.
const (
	RepurposeTweets = "tweets"
	RepurposeBlog   = "blog"
	RepurposeReels  = "reels"
)

// RepurposedContent is the fixed three-field output of transcript repurposing.
type RepurposedContent struct {
	Tweets      []string `json:"tweets" jsonschema_description:"Standalone tweets drawn from the transcript"`
	BlogOutline string   `json:"blogOutline" jsonschema_description:"A markdown blog post outline based on the transcript"`
	ReelsIdeas  []string `json:"reelsIdeas" jsonschema_description:"Short-form video ideas based on the transcript"`
}

var repurposedContentSchema = GenerateSchema[RepurposedContent]()

// RepurposeService turns an asset's cached transcript into the fixed
// tweets/blog/reels shape. It shares the generation quota and persists a
// content record like the primary flow.
type RepurposeService interface {
	Repurpose(ctx context.Context, assetID, userID, brandID string, formats []string) (*RepurposedContent, error)
}

type repurposeService struct {
	mediaRepo     repository.MediaRepository
	contentRepo   repository.ContentRepository
	brands        BrandService
	quota         QuotaService
	generator     TextGenerator
	standardModel string
	logger        zerolog.Logger
}

// NewRepurposeService creates a new RepurposeService.
func NewRepurposeService(
	mediaRepo repository.MediaRepository,
	contentRepo repository.ContentRepository,
	brands BrandService,
	quota QuotaService,
	generator TextGenerator,
	standardModel string,
	logger zerolog.Logger,
) RepurposeService {
	return &repurposeService{
		mediaRepo:     mediaRepo,
		contentRepo:   contentRepo,
		brands:        brands,
		quota:         quota,
		generator:     generator,
		standardModel: standardModel,
		logger:        logger.With().Str("service", "RepurposeService").Logger(),
	}
}

// ValidRepurposeFormat reports whether s names a repurpose output.
func ValidRepurposeFormat(s string) bool {
	switch s {
	case RepurposeTweets, RepurposeBlog, RepurposeReels:
		return true
	}
	return false
}

func (s *repurposeService) Repurpose(ctx context.Context, assetID, userID, brandID string, formats []string) (*RepurposedContent, error) {
	for _, f := range formats {
		if !ValidRepurposeFormat(f) {
			return nil, fmt.Errorf("unknown repurpose format %q", f)
		}
	}

	asset, err := s.mediaRepo.GetAssetByID(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("looking up media asset: %w", err)
	}
	if asset == nil || asset.UserID != userID {
		return nil, ErrAssetNotFound
	}
	if !asset.Transcribed() {
		return nil, ErrNotTranscribed
	}

	if err := s.quota.CheckGeneration(ctx, userID); err != nil {
		return nil, err
	}

	var voice model.ResolvedVoice
	if brandID == "" {
		voice, err = s.brands.ResolveDefault(ctx, userID)
	} else {
		voice, err = s.brands.Resolve(ctx, brandID, userID)
	}
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.CompleteJSON(ctx, CompletionRequest{
		Model:     s.standardModel,
		System:    writerInstruction + "\n\n" + voiceBlock(voice.Profile),
		User:      s.repurposePrompt(formats, *asset.Transcript),
		MaxTokens: standardTokenBudget,
	}, "repurposed_content", repurposedContentSchema)
	if err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Repurpose completion failed")
		return nil, fmt.Errorf("repurposing transcript: %w", err)
	}

	var content RepurposedContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Repurpose response was not valid JSON")
		return nil, fmt.Errorf("parsing repurposed content: %w", err)
	}

	record := &model.ContentRecord{
		ID:               uuid.NewString(),
		UserID:           userID,
		SourceText:       asset.Transcript,
		GeneratedContent: content.asGeneratedMap(),
		Status:           model.StatusDraft,
	}
	if !voice.IsDefault() {
		record.BrandID = &voice.Brand.ID
	}
	if err := s.contentRepo.CreateContent(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("asset_id", assetID).Msg("Failed to persist repurposed content record")
		return nil, fmt.Errorf("persisting content record: %w", err)
	}

	return &content, nil
}

func (s *repurposeService) repurposePrompt(formats []string, transcript string) string {
	var wants []string
	for _, f := range formats {
		switch f {
		case RepurposeTweets:
			wants = append(wants, "5 standalone tweets")
		case RepurposeBlog:
			wants = append(wants, "a markdown blog post outline")
		case RepurposeReels:
			wants = append(wants, "3 short-form video (reels) ideas")
		}
	}
	return fmt.Sprintf(
		"Repurpose the following transcript into: %s. Fill only the requested fields; leave the rest empty.\n\nTranscript:\n%s",
		strings.Join(wants, ", "), transcript,
	)
}

// asGeneratedMap flattens the fixed shape into the content record's format
// map so repurposed output lives in the same table as primary generations.
func (c *RepurposedContent) asGeneratedMap() map[model.Format]string {
	m := make(map[model.Format]string)
	if len(c.Tweets) > 0 {
		m[model.FormatTwitter] = strings.Join(c.Tweets, "\n\n")
	}
	if c.BlogOutline != "" {
		m[model.FormatBlog] = c.BlogOutline
	}
	if len(c.ReelsIdeas) > 0 {
		m[model.FormatTikTok] = strings.Join(c.ReelsIdeas, "\n\n")
	}
	return m
}
