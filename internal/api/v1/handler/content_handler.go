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

// ContentHandler handles content record endpoints.
type ContentHandler struct {
	content  service.ContentService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content service.ContentService, validate *validator.Validate, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		content:  content,
		validate: validate,
		logger:   logger.With().Str("handler", "ContentHandler").Logger(),
	}
}

// RegisterRoutes mounts content routes.
func (h *ContentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /content", authMw(http.HandlerFunc(h.listContent)))
	mux.Handle("GET /content/{id}", authMw(http.HandlerFunc(h.getContent)))
	mux.Handle("PATCH /content/{id}/status", authMw(http.HandlerFunc(h.updateStatus)))
	mux.Handle("DELETE /content/{id}", authMw(http.HandlerFunc(h.deleteContent)))
}

func contentResponse(c *model.ContentRecord) dto.ContentResponseDTO {
	return dto.ContentResponseDTO{
		ID:               c.ID,
		BrandID:          c.BrandID,
		SourceURL:        c.SourceURL,
		SourceText:       c.SourceText,
		GeneratedContent: c.GeneratedContent,
		CoverImageURL:    c.CoverImageURL,
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (h *ContentHandler) respondContentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrContentNotFound):
		respondError(w, http.StatusNotFound, "content_not_found", "Content not found")
	case errors.Is(err, service.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		h.logger.Error().Err(err).Msg("Content operation failed")
		respondError(w, http.StatusInternalServerError, "content_operation_failed", "Content operation failed")
	}
}

// listContent godoc
// @Summary List content records
// @Tags content
// @Produce json
// @Success 200 {array} dto.ContentResponseDTO
// @Router /content [get]
func (h *ContentHandler) listContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	limit, offset := pagination(r, 50)
	records, err := h.content.ListContent(r.Context(), userID, limit, offset)
	if err != nil {
		h.respondContentError(w, err)
		return
	}
	resp := make([]dto.ContentResponseDTO, 0, len(records))
	for i := range records {
		resp = append(resp, contentResponse(&records[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

// getContent godoc
// @Summary Get a content record
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} dto.ContentResponseDTO
// @Failure 404 {object} handler.errorResponse
// @Router /content/{id} [get]
func (h *ContentHandler) getContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	record, err := h.content.GetContent(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.respondContentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contentResponse(record))
}

// updateStatus godoc
// @Summary Advance a content record's lifecycle status
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Content ID"
// @Param status body dto.ContentStatusUpdateDTO true "New status"
// @Success 200 {object} dto.ContentResponseDTO
// @Failure 400 {object} handler.errorResponse
// @Failure 404 {object} handler.errorResponse
// @Router /content/{id}/status [patch]
func (h *ContentHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	var req dto.ContentStatusUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	record, err := h.content.UpdateStatus(r.Context(), r.PathValue("id"), userID, req.Status)
	if err != nil {
		h.respondContentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contentResponse(record))
}

// deleteContent godoc
// @Summary Delete a content record
// @Tags content
// @Param id path string true "Content ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} handler.errorResponse
// @Router /content/{id} [delete]
func (h *ContentHandler) deleteContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	if err := h.content.DeleteContent(r.Context(), r.PathValue("id"), userID); err != nil {
		h.respondContentError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
