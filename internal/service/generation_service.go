package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Model classes accepted on generation requests. Reasoning classes fold the
// instructions into a single message and scale the token budget with source
// length; the standard class uses a system+user pair and a fixed budget.
const (
	ModelReasoningSmall = "reasoning-small"
	ModelReasoningTiny  = "reasoning-tiny"
)

var reasoningModels = map[string]string{
	ModelReasoningSmall: "gpt-5-mini",
	ModelReasoningTiny:  "gpt-5-nano",
}

const (
	standardTokenBudget       = 1024
	reasoningTokenBudget      = 4096
	longSourceThreshold       = 3000
	longSourceReasoningBudget = 8192
)

var (
	// ErrInvalidSource means the request carried neither or both of url/text.
	ErrInvalidSource = errors.New("exactly one of url or text must be provided")
	// ErrUnknownModel means an unrecognized model class was requested.
	ErrUnknownModel = errors.New("unknown model class")
)

// GenerateInput is one generation request after DTO validation.
type GenerateInput struct {
	SourceURL     *string
	SourceText    *string
	BrandID       string
	Formats       []model.Format
	GenerateImage bool
	Model         string // empty means the standard model class
}

// GenerateResult is the outcome of one generation request.
type GenerateResult struct {
	Content   *model.ContentRecord
	Generated map[model.Format]string
	ImageURL  *string
}

// GenerationService orchestrates one generation request: quota, voice
// resolution, per-format dispatch, optional cover image, and the record
// write. Quota and ownership are checked before any external call so a
// rejected request spends nothing upstream.
type GenerationService interface {
	Generate(ctx context.Context, userID string, input GenerateInput) (*GenerateResult, error)
}

type generationService struct {
	quota         QuotaService
	brands        BrandService
	generator     TextGenerator
	images        ImageService
	contentRepo   repository.ContentRepository
	standardModel string
	logger        zerolog.Logger
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(
	quota QuotaService,
	brands BrandService,
	generator TextGenerator,
	images ImageService,
	contentRepo repository.ContentRepository,
	standardModel string,
	logger zerolog.Logger,
) GenerationService {
	return &generationService{
		quota:         quota,
		brands:        brands,
		generator:     generator,
		images:        images,
		contentRepo:   contentRepo,
		standardModel: standardModel,
		logger:        logger.With().Str("service", "GenerationService").Logger(),
	}
}

func (s *generationService) Generate(ctx context.Context, userID string, input GenerateInput) (*GenerateResult, error) {
	if (input.SourceURL == nil) == (input.SourceText == nil) {
		return nil, ErrInvalidSource
	}
	if len(input.Formats) == 0 {
		return nil, fmt.Errorf("%w: no formats requested", ErrInvalidSource)
	}
	if input.Model != "" {
		if _, ok := reasoningModels[input.Model]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownModel, input.Model)
		}
	}

	if err := s.quota.CheckGeneration(ctx, userID); err != nil {
		return nil, err
	}

	voice, err := s.brands.Resolve(ctx, input.BrandID, userID)
	if err != nil {
		return nil, err
	}

	sourceText := s.sourceText(input)

	generated, err := s.dispatch(ctx, sourceText, voice.Profile, input.Formats, input.Model)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if input.GenerateImage {
		imageURL = s.images.Synthesize(ctx, userID, sourceText)
	}

	record := &model.ContentRecord{
		ID:               uuid.NewString(),
		UserID:           userID,
		SourceURL:        input.SourceURL,
		SourceText:       input.SourceText,
		GeneratedContent: generated,
		CoverImageURL:    imageURL,
		Status:           model.StatusDraft,
	}
	// A null brand reference records "default voice used"; the reserved id
	// is never written so it cannot be mistaken for a deleted brand.
	if !voice.IsDefault() {
		record.BrandID = &voice.Brand.ID
	}
	if err := s.contentRepo.CreateContent(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to persist content record")
		return nil, fmt.Errorf("persisting content record: %w", err)
	}

	return &GenerateResult{Content: record, Generated: generated, ImageURL: imageURL}, nil
}

// sourceText derives the prompt material from whichever source was supplied.
func (s *generationService) sourceText(input GenerateInput) string {
	if input.SourceText != nil {
		return *input.SourceText
	}
	return "Article URL: " + *input.SourceURL
}

// dispatch issues one independent completion call per requested format,
// sequentially. A failed or empty completion yields an empty string for that
// format; the batch continues so callers receive partial results.
func (s *generationService) dispatch(ctx context.Context, sourceText string, voice model.VoiceProfile, formats []model.Format, modelClass string) (map[model.Format]string, error) {
	results := make(map[model.Format]string, len(formats))
	for _, format := range formats {
		prompt, err := CompilePrompt(format, sourceText, voice)
		if err != nil {
			return nil, err
		}
		text, err := s.generator.Complete(ctx, s.completionRequest(prompt, sourceText, modelClass))
		if err != nil {
			s.logger.Warn().Err(err).Str("format", string(format)).Msg("Completion failed for format, recording empty result")
			results[format] = ""
			continue
		}
		results[format] = text
	}
	return results, nil
}

// completionRequest shapes the upstream call for the chosen model class.
func (s *generationService) completionRequest(prompt Prompt, sourceText, modelClass string) CompletionRequest {
	if upstream, ok := reasoningModels[modelClass]; ok {
		budget := int64(reasoningTokenBudget)
		if len(sourceText) > longSourceThreshold {
			budget = longSourceReasoningBudget
		}
		return CompletionRequest{
			Model:         upstream,
			System:        prompt.System,
			User:          prompt.User,
			SingleMessage: true,
			MaxTokens:     budget,
			Reasoning:     true,
		}
	}
	return CompletionRequest{
		Model:     s.standardModel,
		System:    prompt.System,
		User:      prompt.User,
		MaxTokens: standardTokenBudget,
	}
}
