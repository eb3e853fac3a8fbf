package dto

import "time"

// BrandCreateDTO is the body for creating a brand voice.
type BrandCreateDTO struct {
	Name           string   `json:"name" validate:"required,max=120"`
	Tone           string   `json:"tone" validate:"required,oneof=professional casual friendly authoritative playful"`
	StyleNotes     string   `json:"style_notes"`
	UseEmojis      bool     `json:"use_emojis"`
	TargetAudience string   `json:"target_audience"`
	Industry       string   `json:"industry"`
	Keywords       []string `json:"keywords" validate:"max=20,dive,max=60"`
}

// BrandUpdateDTO is the body for updating a brand voice.
type BrandUpdateDTO struct {
	Name           string   `json:"name" validate:"required,max=120"`
	Tone           string   `json:"tone" validate:"required,oneof=professional casual friendly authoritative playful"`
	StyleNotes     string   `json:"style_notes"`
	UseEmojis      bool     `json:"use_emojis"`
	TargetAudience string   `json:"target_audience"`
	Industry       string   `json:"industry"`
	Keywords       []string `json:"keywords" validate:"max=20,dive,max=60"`
}

// BrandResponseDTO is returned for a single brand voice.
type BrandResponseDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Tone           string    `json:"tone"`
	StyleNotes     string    `json:"style_notes"`
	UseEmojis      bool      `json:"use_emojis"`
	TargetAudience string    `json:"target_audience"`
	Industry       string    `json:"industry"`
	Keywords       []string  `json:"keywords"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
