package dto

import "app/internal/model"

// GenerateRequestDTO is the body of a generate-from-source request.
// Exactly one of URL/Text must be present; that pairing is checked in the
// handler since validator tags cannot express it.
type GenerateRequestDTO struct {
	URL           *string  `json:"url,omitempty" validate:"omitempty,url"`
	Text          *string  `json:"text,omitempty"`
	BrandID       string   `json:"brandId" validate:"required"`
	ContentTypes  []string `json:"contentTypes" validate:"required,min=1"`
	GenerateImage bool     `json:"generateImage"`
	Model         string   `json:"model,omitempty" validate:"omitempty,oneof=reasoning-small reasoning-tiny"`
}

// GenerateResponseDTO is the 201 payload of a generate-from-source request.
type GenerateResponseDTO struct {
	Content   *model.ContentRecord    `json:"content"`
	Generated map[model.Format]string `json:"generated"`
	ImageURL  *string                 `json:"imageUrl"`
}

// UsageResponseDTO reports remaining monthly quota.
type UsageResponseDTO struct {
	Generations       int    `json:"generations"`
	MaxGenerations    int    `json:"max_generations"`
	Transcriptions    int    `json:"transcriptions"`
	MaxTranscriptions int    `json:"max_transcriptions"`
	PeriodStart       string `json:"period_start"`
	PeriodEnd         string `json:"period_end"`
}
