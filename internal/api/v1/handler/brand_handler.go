package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// BrandHandler handles brand voice endpoints.
type BrandHandler struct {
	brands   service.BrandService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(brands service.BrandService, validate *validator.Validate, logger zerolog.Logger) *BrandHandler {
	return &BrandHandler{
		brands:   brands,
		validate: validate,
		logger:   logger.With().Str("handler", "BrandHandler").Logger(),
	}
}

// RegisterRoutes mounts brand routes.
func (h *BrandHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("POST /brands", authMw(http.HandlerFunc(h.createBrand)))
	mux.Handle("GET /brands", authMw(http.HandlerFunc(h.listBrands)))
	mux.Handle("GET /brands/{id}", authMw(http.HandlerFunc(h.getBrand)))
	mux.Handle("PUT /brands/{id}", authMw(http.HandlerFunc(h.updateBrand)))
	mux.Handle("DELETE /brands/{id}", authMw(http.HandlerFunc(h.deleteBrand)))
	mux.Handle("POST /brands/{id}/default", authMw(http.HandlerFunc(h.setDefaultBrand)))
}

func brandResponse(b *model.BrandVoice) dto.BrandResponseDTO {
	return dto.BrandResponseDTO{
		ID:             b.ID,
		Name:           b.Name,
		Tone:           b.Tone,
		StyleNotes:     b.StyleNotes,
		UseEmojis:      b.UseEmojis,
		TargetAudience: b.TargetAudience,
		Industry:       b.Industry,
		Keywords:       b.Keywords,
		IsDefault:      b.IsDefault,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (h *BrandHandler) respondBrandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBrandNotFound), errors.Is(err, service.ErrBrandNotOwned):
		respondError(w, http.StatusNotFound, "brand_not_found", "Brand not found")
	case errors.Is(err, service.ErrInvalidBrand):
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		h.logger.Error().Err(err).Msg("Brand operation failed")
		respondError(w, http.StatusInternalServerError, "brand_operation_failed", "Brand operation failed")
	}
}

// createBrand godoc
// @Summary Create a brand voice
// @Tags brands
// @Accept json
// @Produce json
// @Param brand body dto.BrandCreateDTO true "Brand voice"
// @Success 201 {object} dto.BrandResponseDTO
// @Failure 400 {object} handler.errorResponse
// @Router /brands [post]
func (h *BrandHandler) createBrand(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	var req dto.BrandCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	brand, err := h.brands.CreateBrand(r.Context(), userID, &model.BrandVoice{
		Name:           req.Name,
		Tone:           req.Tone,
		StyleNotes:     req.StyleNotes,
		UseEmojis:      req.UseEmojis,
		TargetAudience: req.TargetAudience,
		Industry:       req.Industry,
		Keywords:       req.Keywords,
	})
	if err != nil {
		h.respondBrandError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, brandResponse(brand))
}

// listBrands godoc
// @Summary List brand voices
// @Tags brands
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.BrandResponseDTO
// @Router /brands [get]
func (h *BrandHandler) listBrands(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	limit, offset := pagination(r, 50)
	brands, err := h.brands.ListBrands(r.Context(), userID, limit, offset)
	if err != nil {
		h.respondBrandError(w, err)
		return
	}
	resp := make([]dto.BrandResponseDTO, 0, len(brands))
	for i := range brands {
		resp = append(resp, brandResponse(&brands[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

// getBrand godoc
// @Summary Get a brand voice
// @Tags brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {object} dto.BrandResponseDTO
// @Failure 404 {object} handler.errorResponse
// @Router /brands/{id} [get]
func (h *BrandHandler) getBrand(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	brand, err := h.brands.GetBrand(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.respondBrandError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, brandResponse(brand))
}

// updateBrand godoc
// @Summary Update a brand voice
// @Tags brands
// @Accept json
// @Produce json
// @Param id path string true "Brand ID"
// @Param brand body dto.BrandUpdateDTO true "Brand voice"
// @Success 200 {object} dto.BrandResponseDTO
// @Failure 404 {object} handler.errorResponse
// @Router /brands/{id} [put]
func (h *BrandHandler) updateBrand(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	var req dto.BrandUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	brand, err := h.brands.UpdateBrand(r.Context(), userID, &model.BrandVoice{
		ID:             r.PathValue("id"),
		Name:           req.Name,
		Tone:           req.Tone,
		StyleNotes:     req.StyleNotes,
		UseEmojis:      req.UseEmojis,
		TargetAudience: req.TargetAudience,
		Industry:       req.Industry,
		Keywords:       req.Keywords,
	})
	if err != nil {
		h.respondBrandError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, brandResponse(brand))
}

// deleteBrand godoc
// @Summary Delete a brand voice
// @Tags brands
// @Param id path string true "Brand ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} handler.errorResponse
// @Router /brands/{id} [delete]
func (h *BrandHandler) deleteBrand(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	if err := h.brands.DeleteBrand(r.Context(), r.PathValue("id"), userID); err != nil {
		h.respondBrandError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setDefaultBrand godoc
// @Summary Mark a brand voice as the default
// @Tags brands
// @Param id path string true "Brand ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} handler.errorResponse
// @Router /brands/{id}/default [post]
func (h *BrandHandler) setDefaultBrand(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	if err := h.brands.SetDefault(r.Context(), r.PathValue("id"), userID); err != nil {
		h.respondBrandError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pagination reads limit/offset query params with a default page size.
func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
