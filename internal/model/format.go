package model

import "fmt"

// Format identifies a target platform/output shape for generated content.
type Format string

const (
	FormatLinkedIn  Format = "linkedin"  // professional long-form post
	FormatTwitter   Format = "twitter"   // thread of short posts
	FormatInstagram Format = "instagram" // caption with hashtags
	FormatTikTok    Format = "tiktok"    // short-form script with a hook
	FormatBlog      Format = "blog"      // outline in markdown
)

// AllFormats lists every supported output format.
var AllFormats = []Format{FormatLinkedIn, FormatTwitter, FormatInstagram, FormatTikTok, FormatBlog}

// ParseFormat converts a wire-level format name into a Format.
// Unknown names are a caller error, not a best-effort fallback.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatLinkedIn, FormatTwitter, FormatInstagram, FormatTikTok, FormatBlog:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown content format %q", s)
}

// ParseFormats converts a list of wire-level names. Empty lists and unknown
// entries are rejected.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one content format is required")
	}
	formats := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}
