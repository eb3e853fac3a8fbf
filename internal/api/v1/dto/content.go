package dto

import (
	"time"

	"app/internal/model"
)

// ContentStatusUpdateDTO is the body for advancing a record's lifecycle.
type ContentStatusUpdateDTO struct {
	Status string `json:"status" validate:"required,oneof=draft approved published archived"`
}

// ContentResponseDTO is returned for a single content record.
type ContentResponseDTO struct {
	ID               string                  `json:"id"`
	BrandID          *string                 `json:"brand_id"`
	SourceURL        *string                 `json:"source_url,omitempty"`
	SourceText       *string                 `json:"source_text,omitempty"`
	GeneratedContent map[model.Format]string `json:"generated_content"`
	CoverImageURL    *string                 `json:"cover_image_url"`
	Status           string                  `json:"status"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}
