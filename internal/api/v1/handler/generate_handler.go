package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// GenerateHandler exposes the content generation and usage endpoints.
type GenerateHandler struct {
	generation service.GenerationService
	quota      service.QuotaService
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(generation service.GenerationService, quota service.QuotaService, validate *validator.Validate, logger zerolog.Logger) *GenerateHandler {
	return &GenerateHandler{
		generation: generation,
		quota:      quota,
		validate:   validate,
		logger:     logger.With().Str("handler", "GenerateHandler").Logger(),
	}
}

// RegisterRoutes mounts the generation routes.
func (h *GenerateHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("POST /generate", authMw(http.HandlerFunc(h.generate)))
	mux.Handle("GET /usage", authMw(http.HandlerFunc(h.usage)))
}

// generate godoc
// @Summary Generate platform-specific content drafts
// @Description Turns source material into one draft per requested format, in the resolved brand voice, optionally with a cover image.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequestDTO true "Generation request"
// @Success 201 {object} dto.GenerateResponseDTO
// @Failure 400 {object} handler.errorResponse
// @Failure 404 {object} handler.errorResponse
// @Failure 429 {object} handler.errorResponse
// @Failure 500 {object} handler.errorResponse
// @Router /generate [post]
func (h *GenerateHandler) generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}

	var req dto.GenerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if (req.URL == nil) == (req.Text == nil) {
		respondError(w, http.StatusBadRequest, "invalid_source", "Exactly one of url or text must be provided")
		return
	}
	formats, err := model.ParseFormats(req.ContentTypes)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	result, err := h.generation.Generate(r.Context(), userID, service.GenerateInput{
		SourceURL:     req.URL,
		SourceText:    req.Text,
		BrandID:       req.BrandID,
		Formats:       formats,
		GenerateImage: req.GenerateImage,
		Model:         req.Model,
	})
	if err != nil {
		h.respondGenerateError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.GenerateResponseDTO{
		Content:   result.Content,
		Generated: result.Generated,
		ImageURL:  result.ImageURL,
	})
}

func (h *GenerateHandler) respondGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSource), errors.Is(err, service.ErrUnknownModel):
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, service.ErrBrandNotFound), errors.Is(err, service.ErrBrandNotOwned):
		// Not-owned collapses into not-found so brand existence never leaks.
		respondError(w, http.StatusNotFound, "brand_not_found", "Brand not found")
	case errors.Is(err, service.ErrQuotaExceeded):
		respondError(w, http.StatusTooManyRequests, "quota_exceeded", quotaMessage(err, "generation"))
	default:
		h.logger.Error().Err(err).Msg("Generation failed")
		respondError(w, http.StatusInternalServerError, "generation_failed", "Generation failed")
	}
}

// usage godoc
// @Summary Current monthly usage
// @Tags generate
// @Produce json
// @Success 200 {object} dto.UsageResponseDTO
// @Failure 500 {object} handler.errorResponse
// @Router /usage [get]
func (h *GenerateHandler) usage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	usage, err := h.quota.Usage(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read usage")
		respondError(w, http.StatusInternalServerError, "usage_unavailable", "Failed to read usage")
		return
	}
	respondJSON(w, http.StatusOK, dto.UsageResponseDTO{
		Generations:       usage.Generations,
		MaxGenerations:    usage.MaxGenerations,
		Transcriptions:    usage.Transcriptions,
		MaxTranscriptions: usage.MaxTranscriptions,
		PeriodStart:       usage.PeriodStart.Format("2006-01-02"),
		PeriodEnd:         usage.PeriodEnd.Format("2006-01-02"),
	})
}
