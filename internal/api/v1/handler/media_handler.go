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

// MediaHandler handles media asset upload, transcription, and repurposing.
type MediaHandler struct {
	media         service.MediaService
	transcription service.TranscriptionService
	repurpose     service.RepurposeService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(
	media service.MediaService,
	transcription service.TranscriptionService,
	repurpose service.RepurposeService,
	validate *validator.Validate,
	logger zerolog.Logger,
) *MediaHandler {
	return &MediaHandler{
		media:         media,
		transcription: transcription,
		repurpose:     repurpose,
		validate:      validate,
		logger:        logger.With().Str("handler", "MediaHandler").Logger(),
	}
}

// RegisterRoutes mounts media routes.
func (h *MediaHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("POST /media/uploads", authMw(http.HandlerFunc(h.initiateUpload)))
	mux.Handle("POST /media/{id}/complete", authMw(http.HandlerFunc(h.completeUpload)))
	mux.Handle("GET /media", authMw(http.HandlerFunc(h.listAssets)))
	mux.Handle("GET /media/{id}", authMw(http.HandlerFunc(h.getAsset)))
	mux.Handle("DELETE /media/{id}", authMw(http.HandlerFunc(h.deleteAsset)))
	mux.Handle("POST /media/{id}/transcribe", authMw(http.HandlerFunc(h.transcribe)))
	mux.Handle("POST /media/{id}/repurpose", authMw(http.HandlerFunc(h.repurposeAsset)))
}

func assetResponse(a *model.MediaAsset) dto.MediaAssetResponseDTO {
	return dto.MediaAssetResponseDTO{
		ID:          a.ID,
		Filename:    a.Filename,
		MimeType:    a.MimeType,
		SizeBytes:   a.SizeBytes,
		Transcribed: a.Transcribed(),
		CreatedAt:   a.CreatedAt,
	}
}

// initiateUpload godoc
// @Summary Initiate a media upload
// @Description Creates the asset record and returns a presigned PUT URL for a direct upload.
// @Tags media
// @Accept json
// @Produce json
// @Param request body dto.MediaUploadRequestDTO true "Upload request"
// @Success 201 {object} dto.MediaUploadResponseDTO
// @Failure 400 {object} handler.errorResponse
// @Router /media/uploads [post]
func (h *MediaHandler) initiateUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	var req dto.MediaUploadRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	asset, uploadURL, err := h.media.InitiateUpload(r.Context(), userID, req.Filename, req.MimeType, req.SizeBytes)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to initiate upload")
		respondError(w, http.StatusInternalServerError, "upload_failed", "Failed to initiate upload")
		return
	}
	respondJSON(w, http.StatusCreated, dto.MediaUploadResponseDTO{
		Asset:     assetResponse(asset),
		UploadURL: uploadURL,
	})
}

// completeUpload godoc
// @Summary Complete a media upload
// @Tags media
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.MediaAssetResponseDTO
// @Failure 404 {object} handler.errorResponse
// @Router /media/{id}/complete [post]
func (h *MediaHandler) completeUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	asset, err := h.media.CompleteUpload(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.respondMediaError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assetResponse(asset))
}

// listAssets godoc
// @Summary List media assets
// @Tags media
// @Produce json
// @Success 200 {array} dto.MediaAssetResponseDTO
// @Router /media [get]
func (h *MediaHandler) listAssets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	limit, offset := pagination(r, 50)
	assets, err := h.media.ListAssets(r.Context(), userID, limit, offset)
	if err != nil {
		h.respondMediaError(w, err)
		return
	}
	resp := make([]dto.MediaAssetResponseDTO, 0, len(assets))
	for i := range assets {
		resp = append(resp, assetResponse(&assets[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

// getAsset godoc
// @Summary Get a media asset
// @Tags media
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.MediaAssetResponseDTO
// @Failure 404 {object} handler.errorResponse
// @Router /media/{id} [get]
func (h *MediaHandler) getAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	asset, err := h.media.GetAsset(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.respondMediaError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assetResponse(asset))
}

// deleteAsset godoc
// @Summary Delete a media asset
// @Tags media
// @Param id path string true "Asset ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} handler.errorResponse
// @Router /media/{id} [delete]
func (h *MediaHandler) deleteAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	if err := h.media.DeleteAsset(r.Context(), r.PathValue("id"), userID); err != nil {
		h.respondMediaError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// transcribe godoc
// @Summary Transcribe a media asset
// @Description Transcribes the stored file, caching the transcript on the asset. Cached re-reads are free.
// @Tags media
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.TranscriptionResponseDTO
// @Failure 404 {object} handler.errorResponse
// @Failure 429 {object} handler.errorResponse
// @Failure 500 {object} handler.errorResponse
// @Router /media/{id}/transcribe [post]
func (h *MediaHandler) transcribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	transcript, err := h.transcription.Transcribe(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssetNotFound):
			respondError(w, http.StatusNotFound, "asset_not_found", "Media asset not found")
		case errors.Is(err, service.ErrQuotaExceeded):
			respondError(w, http.StatusTooManyRequests, "quota_exceeded", quotaMessage(err, "transcription"))
		default:
			h.logger.Error().Err(err).Msg("Transcription failed")
			respondError(w, http.StatusInternalServerError, "transcription_failed", "Transcription failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, dto.TranscriptionResponseDTO{Transcription: transcript})
}

// repurposeAsset godoc
// @Summary Repurpose a transcribed asset
// @Description Turns the cached transcript into tweets, a blog outline, and reels ideas.
// @Tags media
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param request body dto.RepurposeRequestDTO true "Repurpose request"
// @Success 200 {object} dto.RepurposeResponseDTO
// @Failure 400 {object} handler.errorResponse
// @Failure 404 {object} handler.errorResponse
// @Failure 429 {object} handler.errorResponse
// @Router /media/{id}/repurpose [post]
func (h *MediaHandler) repurposeAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "User ID not found in context")
		return
	}
	var req dto.RepurposeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	content, err := h.repurpose.Repurpose(r.Context(), r.PathValue("id"), userID, req.BrandID, req.Formats)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssetNotFound):
			respondError(w, http.StatusNotFound, "asset_not_found", "Media asset not found")
		case errors.Is(err, service.ErrNotTranscribed):
			respondError(w, http.StatusBadRequest, "not_transcribed", "Asset must be transcribed first")
		case errors.Is(err, service.ErrBrandNotFound), errors.Is(err, service.ErrBrandNotOwned):
			respondError(w, http.StatusNotFound, "brand_not_found", "Brand not found")
		case errors.Is(err, service.ErrQuotaExceeded):
			respondError(w, http.StatusTooManyRequests, "quota_exceeded", quotaMessage(err, "generation"))
		default:
			h.logger.Error().Err(err).Msg("Repurposing failed")
			respondError(w, http.StatusInternalServerError, "repurpose_failed", "Repurposing failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, dto.RepurposeResponseDTO{
		Content: dto.RepurposedContentDTO{
			Tweets:      content.Tweets,
			BlogOutline: content.BlogOutline,
			ReelsIdeas:  content.ReelsIdeas,
		},
	})
}

func (h *MediaHandler) respondMediaError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrAssetNotFound) {
		respondError(w, http.StatusNotFound, "asset_not_found", "Media asset not found")
		return
	}
	h.logger.Error().Err(err).Msg("Media operation failed")
	respondError(w, http.StatusInternalServerError, "media_operation_failed", "Media operation failed")
}
