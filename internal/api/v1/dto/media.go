package dto

import "time"

// MediaUploadRequestDTO is the body for initiating a media upload.
type MediaUploadRequestDTO struct {
	Filename  string `json:"filename" validate:"required,max=255"`
	MimeType  string `json:"mime_type" validate:"required,max=100"`
	SizeBytes int64  `json:"size_bytes" validate:"required,gt=0"`
}

// MediaUploadResponseDTO returns the created asset and a presigned PUT URL.
type MediaUploadResponseDTO struct {
	Asset     MediaAssetResponseDTO `json:"asset"`
	UploadURL string                `json:"upload_url"`
}

// MediaAssetResponseDTO is returned for a single media asset.
type MediaAssetResponseDTO struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Transcribed bool      `json:"transcribed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TranscriptionResponseDTO is the transcribe endpoint's payload.
type TranscriptionResponseDTO struct {
	Transcription string `json:"transcription"`
}

// RepurposeRequestDTO is the body for repurposing a transcribed asset.
type RepurposeRequestDTO struct {
	BrandID string   `json:"brandId,omitempty"`
	Formats []string `json:"formats" validate:"required,min=1,dive,oneof=tweets blog reels"`
}

// RepurposeResponseDTO carries the fixed three-field repurposed shape.
type RepurposeResponseDTO struct {
	Content RepurposedContentDTO `json:"content"`
}

// RepurposedContentDTO mirrors the fixed repurpose output.
type RepurposedContentDTO struct {
	Tweets      []string `json:"tweets"`
	BlogOutline string   `json:"blogOutline"`
	ReelsIdeas  []string `json:"reelsIdeas"`
}
