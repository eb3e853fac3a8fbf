package model

import "time"

// Tone values accepted for a brand voice.
const (
	ToneProfessional  = "professional"
	ToneCasual        = "casual"
	ToneFriendly      = "friendly"
	ToneAuthoritative = "authoritative"
	TonePlayful       = "playful"
)

// DefaultVoiceID is the reserved identifier callers may pass to request the
// built-in default voice profile. It never refers to a stored row.
const DefaultVoiceID = "default"

// BrandVoice is a reusable style configuration owned by a user.
type BrandVoice struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Name           string    `db:"name" json:"name"`
	Tone           string    `db:"tone" json:"tone"`
	StyleNotes     string    `db:"style_notes" json:"style_notes"`
	UseEmojis      bool      `db:"use_emojis" json:"use_emojis"`
	TargetAudience string    `db:"target_audience" json:"target_audience"`
	Industry       string    `db:"industry" json:"industry"`
	Keywords       []string  `db:"keywords" json:"keywords"`
	IsDefault      bool      `db:"is_default" json:"is_default"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// VoiceProfile is the style information prompt compilation consumes.
type VoiceProfile struct {
	Name           string
	Tone           string
	StyleNotes     string
	UseEmojis      bool
	TargetAudience string
	Industry       string
	Keywords       []string
}

// ResolvedVoice is the outcome of brand-voice resolution: either a stored
// brand or the built-in default profile. The default is a sentinel variant,
// not a row with a magic id, so it can never be subject to ownership checks
// or accidental persistence.
type ResolvedVoice struct {
	Profile VoiceProfile
	Brand   *BrandVoice // nil when the default profile was used
}

// IsDefault reports whether the resolved voice is the built-in profile.
func (v ResolvedVoice) IsDefault() bool { return v.Brand == nil }

// DefaultVoiceProfile is the immutable profile substituted when a caller
// requests the reserved default id or owns no brand voices.
var DefaultVoiceProfile = VoiceProfile{
	Name:           "Default Voice",
	Tone:           ToneProfessional,
	StyleNotes:     "Clear, concise, and engaging. Avoid jargon.",
	UseEmojis:      false,
	TargetAudience: "general audience",
	Industry:       "general",
	Keywords:       nil,
}

// Profile converts a stored brand voice into the shape prompt compilation uses.
func (b *BrandVoice) Profile() VoiceProfile {
	return VoiceProfile{
		Name:           b.Name,
		Tone:           b.Tone,
		StyleNotes:     b.StyleNotes,
		UseEmojis:      b.UseEmojis,
		TargetAudience: b.TargetAudience,
		Industry:       b.Industry,
		Keywords:       b.Keywords,
	}
}

// ValidTone reports whether s is one of the accepted tone values.
func ValidTone(s string) bool {
	switch s {
	case ToneProfessional, ToneCasual, ToneFriendly, ToneAuthoritative, TonePlayful:
		return true
	}
	return false
}
