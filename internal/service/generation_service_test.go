package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"app/internal/model"

	"github.com/rs/zerolog"
)

type fakeImageService struct {
	url   *string
	calls int
}

func (f *fakeImageService) Synthesize(ctx context.Context, userID, sourceText string) *string {
	f.calls++
	return f.url
}

type generationHarness struct {
	svc         GenerationService
	contentRepo *fakeContentRepo
	brandRepo   *fakeBrandRepo
	generator   *fakeTextGenerator
	images      *fakeImageService
}

func newGenerationHarness(t *testing.T) *generationHarness {
	t.Helper()
	h := &generationHarness{
		contentRepo: &fakeContentRepo{},
		brandRepo:   newFakeBrandRepo(),
		generator:   &fakeTextGenerator{},
		images:      &fakeImageService{},
	}
	quota := newQuotaForTest(h.contentRepo, newFakeMediaRepo(), time.Now())
	brands := NewBrandService(h.brandRepo, zerolog.Nop())
	h.svc = NewGenerationService(quota, brands, h.generator, h.images, h.contentRepo, "gpt-4o-mini", zerolog.Nop())
	return h
}

func strPtr(s string) *string { return &s }

func textInput(formats ...model.Format) GenerateInput {
	return GenerateInput{
		SourceText: strPtr("We raised our seed round."),
		BrandID:    model.DefaultVoiceID,
		Formats:    formats,
	}
}

func TestGenerateRequiresExactlyOneSource(t *testing.T) {
	h := newGenerationHarness(t)

	cases := map[string]GenerateInput{
		"neither": {BrandID: model.DefaultVoiceID, Formats: []model.Format{model.FormatBlog}},
		"both": {
			SourceURL:  strPtr("https://example.com/post"),
			SourceText: strPtr("text"),
			BrandID:    model.DefaultVoiceID,
			Formats:    []model.Format{model.FormatBlog},
		},
	}
	for name, input := range cases {
		if _, err := h.svc.Generate(context.Background(), "user-1", input); !errors.Is(err, ErrInvalidSource) {
			t.Errorf("%s: Generate = %v, want ErrInvalidSource", name, err)
		}
	}
	if len(h.generator.requests) != 0 {
		t.Errorf("invalid input reached the completion client %d times", len(h.generator.requests))
	}
	if len(h.contentRepo.created) != 0 {
		t.Error("invalid input produced a content record")
	}
}

func TestGenerateRejectsUnknownModelClassBeforeQuota(t *testing.T) {
	h := newGenerationHarness(t)
	input := textInput(model.FormatBlog)
	input.Model = "reasoning-xxl"

	if _, err := h.svc.Generate(context.Background(), "user-1", input); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("Generate = %v, want ErrUnknownModel", err)
	}
}

func TestGenerateStopsAtQuota(t *testing.T) {
	h := newGenerationHarness(t)
	h.contentRepo.count = 5

	_, err := h.svc.Generate(context.Background(), "user-1", textInput(model.FormatBlog))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Generate = %v, want ErrQuotaExceeded", err)
	}
	if len(h.generator.requests) != 0 {
		t.Error("quota-rejected request reached the completion client")
	}
}

func TestGenerateUnknownBrandStopsBeforeDispatch(t *testing.T) {
	h := newGenerationHarness(t)
	input := textInput(model.FormatBlog)
	input.BrandID = "no-such-brand"

	if _, err := h.svc.Generate(context.Background(), "user-1", input); !errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("Generate = %v, want ErrBrandNotFound", err)
	}
	if len(h.generator.requests) != 0 {
		t.Error("unresolved brand reached the completion client")
	}
}

func TestGenerateDispatchesOneCallPerFormat(t *testing.T) {
	h := newGenerationHarness(t)
	h.generator.respond = func(req CompletionRequest) (string, error) {
		return "text for " + req.User[:20], nil
	}

	result, err := h.svc.Generate(context.Background(), "user-1", textInput(model.FormatLinkedIn, model.FormatTwitter, model.FormatBlog))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(h.generator.requests) != 3 {
		t.Errorf("completion calls = %d, want 3", len(h.generator.requests))
	}
	if len(result.Generated) != 3 {
		t.Errorf("generated map has %d entries, want 3", len(result.Generated))
	}
	for _, f := range []model.Format{model.FormatLinkedIn, model.FormatTwitter, model.FormatBlog} {
		if _, ok := result.Generated[f]; !ok {
			t.Errorf("generated map missing requested format %q", f)
		}
	}
}

func TestGeneratePartialFailureYieldsEmptyString(t *testing.T) {
	h := newGenerationHarness(t)
	h.generator.respond = func(req CompletionRequest) (string, error) {
		if strings.Contains(req.User, "Twitter") {
			return "", errors.New("upstream 500")
		}
		return "a post", nil
	}

	result, err := h.svc.Generate(context.Background(), "user-1", textInput(model.FormatLinkedIn, model.FormatTwitter))
	if err != nil {
		t.Fatalf("partial upstream failure should not fail the request: %v", err)
	}
	if result.Generated[model.FormatLinkedIn] != "a post" {
		t.Errorf("linkedin = %q, want %q", result.Generated[model.FormatLinkedIn], "a post")
	}
	if text, ok := result.Generated[model.FormatTwitter]; !ok || text != "" {
		t.Errorf("failed format should be present with an empty string, got %q (present=%v)", text, ok)
	}
	if len(h.contentRepo.created) != 1 {
		t.Fatal("partial result was not persisted")
	}
}

func TestGenerateDefaultVoiceLeavesBrandIDNull(t *testing.T) {
	h := newGenerationHarness(t)

	result, err := h.svc.Generate(context.Background(), "user-1", textInput(model.FormatBlog))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Content.BrandID != nil {
		t.Errorf("brand id = %q, want nil for the default voice", *result.Content.BrandID)
	}
	if result.Content.Status != model.StatusDraft {
		t.Errorf("status = %q, want %q", result.Content.Status, model.StatusDraft)
	}
}

func TestGenerateStoredBrandSetsBrandID(t *testing.T) {
	h := newGenerationHarness(t)
	h.brandRepo.brands["b-1"] = &model.BrandVoice{ID: "b-1", UserID: "user-1", Name: "Mine", Tone: model.ToneCasual}
	input := textInput(model.FormatBlog)
	input.BrandID = "b-1"

	result, err := h.svc.Generate(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Content.BrandID == nil || *result.Content.BrandID != "b-1" {
		t.Errorf("brand id = %v, want b-1", result.Content.BrandID)
	}
}

func TestGenerateURLSourceFlowsIntoPrompt(t *testing.T) {
	h := newGenerationHarness(t)
	input := GenerateInput{
		SourceURL: strPtr("https://example.com/launch"),
		BrandID:   model.DefaultVoiceID,
		Formats:   []model.Format{model.FormatLinkedIn},
	}

	result, err := h.svc.Generate(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.Contains(h.generator.requests[0].User, "https://example.com/launch") {
		t.Error("source URL missing from the compiled prompt")
	}
	if result.Content.SourceURL == nil || result.Content.SourceText != nil {
		t.Error("record should carry the URL source and no text source")
	}
}

func TestGenerateImageOnlyWhenRequested(t *testing.T) {
	h := newGenerationHarness(t)
	h.images.url = strPtr("https://storage.example/covers/user-1/1.png")

	result, err := h.svc.Generate(context.Background(), "user-1", textInput(model.FormatBlog))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if h.images.calls != 0 || result.ImageURL != nil {
		t.Error("image was synthesized without being requested")
	}

	input := textInput(model.FormatBlog)
	input.GenerateImage = true
	result, err = h.svc.Generate(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if h.images.calls != 1 {
		t.Errorf("image synthesis calls = %d, want 1", h.images.calls)
	}
	if result.Content.CoverImageURL == nil || *result.Content.CoverImageURL != *h.images.url {
		t.Errorf("cover image url = %v, want %q", result.Content.CoverImageURL, *h.images.url)
	}
}

func TestGenerateImageFailureStillSucceeds(t *testing.T) {
	h := newGenerationHarness(t)
	h.images.url = nil
	input := textInput(model.FormatBlog)
	input.GenerateImage = true

	result, err := h.svc.Generate(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("image failure must not fail generation: %v", err)
	}
	if result.Content.CoverImageURL != nil {
		t.Errorf("cover image url = %q, want nil", *result.Content.CoverImageURL)
	}
	if len(h.contentRepo.created) != 1 {
		t.Error("record was not persisted after image failure")
	}
}

func TestCompletionRequestPerModelClass(t *testing.T) {
	svc := &generationService{standardModel: "gpt-4o-mini", logger: zerolog.Nop()}
	prompt := Prompt{System: "sys", User: "user"}

	std := svc.completionRequest(prompt, "short source", "")
	if std.Model != "gpt-4o-mini" || std.Reasoning || std.SingleMessage {
		t.Errorf("standard request misconfigured: %+v", std)
	}
	if std.MaxTokens != standardTokenBudget {
		t.Errorf("standard budget = %d, want %d", std.MaxTokens, standardTokenBudget)
	}

	small := svc.completionRequest(prompt, "short source", ModelReasoningSmall)
	if small.Model != "gpt-5-mini" || !small.Reasoning || !small.SingleMessage {
		t.Errorf("reasoning request misconfigured: %+v", small)
	}
	if small.MaxTokens != reasoningTokenBudget {
		t.Errorf("reasoning budget = %d, want %d", small.MaxTokens, reasoningTokenBudget)
	}

	long := svc.completionRequest(prompt, strings.Repeat("x", longSourceThreshold+1), ModelReasoningTiny)
	if long.Model != "gpt-5-nano" {
		t.Errorf("tiny class mapped to %q, want gpt-5-nano", long.Model)
	}
	if long.MaxTokens != longSourceReasoningBudget {
		t.Errorf("long-source reasoning budget = %d, want %d", long.MaxTokens, longSourceReasoningBudget)
	}
}
