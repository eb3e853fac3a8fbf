package model

import "time"

// Content lifecycle statuses. A record starts at draft; status changes happen
// through the status endpoint, never during generation.
const (
	StatusDraft     = "draft"
	StatusApproved  = "approved"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ContentRecord is the persisted artifact of one generation request.
// BrandID is nil when the built-in default voice was used, so display logic
// can tell "used default" apart from "brand deleted after generation".
// Exactly one of SourceURL / SourceText is set.
type ContentRecord struct {
	ID               string            `db:"id" json:"id"`
	UserID           string            `db:"user_id" json:"user_id"`
	BrandID          *string           `db:"brand_id" json:"brand_id,omitempty"`
	SourceURL        *string           `db:"source_url" json:"source_url,omitempty"`
	SourceText       *string           `db:"source_text" json:"source_text,omitempty"`
	GeneratedContent map[Format]string `db:"generated_content" json:"generated_content"`
	CoverImageURL    *string           `db:"cover_image_url" json:"cover_image_url,omitempty"`
	Status           string            `db:"status" json:"status"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
}

// ValidStatus reports whether s is a known content lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusApproved, StatusPublished, StatusArchived:
		return true
	}
	return false
}
