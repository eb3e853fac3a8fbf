package service

import (
	"fmt"
	"strings"

	"app/internal/model"
)

// Prompt is a compiled per-format prompt pair. Standard models receive the
// two parts as system+user messages; reasoning models fold them into one.
type Prompt struct {
	System string
	User   string
}

const writerInstruction = "You are an expert social media content writer. Write in the brand voice described below. Return only the finished content, with no preamble or commentary."

// Format-specific instructions. Each one receives the source material after
// the voice block.
var formatTemplates = map[model.Format]string{
	model.FormatLinkedIn: "Write a professional LinkedIn post based on the source material. Open with a strong hook, develop one clear insight, and close with a question or call to action. Use short paragraphs and line breaks for readability.",
	model.FormatTwitter:  "Write a Twitter/X thread of 5-8 short posts based on the source material. Number each post (1/, 2/, ...). The first post must hook the reader; the last should invite replies or a follow.",
	model.FormatTikTok:   "Write a 30-60 second short-form video script based on the source material. Start with a spoken hook in the first two seconds, then deliver the key points conversationally. Mark [HOOK], [BODY], and [CTA] sections.",
	model.FormatInstagram: "Write an Instagram caption based on the source material. Lead with an attention-grabbing first line, keep it scannable, and end with 5-10 relevant hashtags on their own line.",
	model.FormatBlog:     "Write a blog post outline in markdown based on the source material. Include a working title as an H1, section headings as H2s with one-sentence summaries, and a bullet list of key takeaways.",
}

// CompilePrompt renders the prompt for one output format. Unknown formats
// are a caller error rather than a best-effort fallback.
func CompilePrompt(format model.Format, sourceText string, voice model.VoiceProfile) (Prompt, error) {
	tmpl, ok := formatTemplates[format]
	if !ok {
		return Prompt{}, fmt.Errorf("no prompt template for format %q", format)
	}
	return Prompt{
		System: writerInstruction + "\n\n" + voiceBlock(voice),
		User:   tmpl + "\n\nSource material:\n" + sourceText,
	}, nil
}

// voiceBlock renders the brand voice as prompt instructions.
func voiceBlock(v model.VoiceProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Brand voice: %s\n", v.Name)
	fmt.Fprintf(&b, "Tone: %s\n", v.Tone)
	if v.StyleNotes != "" {
		fmt.Fprintf(&b, "Style notes: %s\n", v.StyleNotes)
	}
	if v.UseEmojis {
		b.WriteString("Use emojis where they fit naturally.\n")
	} else {
		b.WriteString("Do not use emojis.\n")
	}
	if v.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", v.TargetAudience)
	}
	if v.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", v.Industry)
	}
	if len(v.Keywords) > 0 {
		fmt.Fprintf(&b, "Work in these keywords where relevant: %s\n", strings.Join(v.Keywords, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
