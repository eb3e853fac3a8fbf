package service

import (
	"strings"
	"testing"

	"app/internal/model"
)

func TestCompilePromptCoversAllFormats(t *testing.T) {
	for _, format := range model.AllFormats {
		prompt, err := CompilePrompt(format, "source", model.DefaultVoiceProfile)
		if err != nil {
			t.Errorf("CompilePrompt(%q) returned error: %v", format, err)
			continue
		}
		if prompt.System == "" || prompt.User == "" {
			t.Errorf("CompilePrompt(%q) produced an empty prompt part", format)
		}
		if !strings.Contains(prompt.User, "source") {
			t.Errorf("CompilePrompt(%q) user prompt missing source material", format)
		}
	}
}

func TestCompilePromptRejectsUnknownFormat(t *testing.T) {
	if _, err := CompilePrompt(model.Format("myspace"), "source", model.DefaultVoiceProfile); err == nil {
		t.Fatal("expected error for unknown format, got nil")
	}
}

func TestVoiceBlockRendersFullProfile(t *testing.T) {
	block := voiceBlock(model.VoiceProfile{
		Name:           "Acme Voice",
		Tone:           model.TonePlayful,
		StyleNotes:     "Short sentences.",
		UseEmojis:      true,
		TargetAudience: "startup founders",
		Industry:       "fintech",
		Keywords:       []string{"growth", "runway"},
	})

	for _, want := range []string{
		"Brand voice: Acme Voice",
		"Tone: playful",
		"Style notes: Short sentences.",
		"Use emojis",
		"Target audience: startup founders",
		"Industry: fintech",
		"growth, runway",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("voice block missing %q:\n%s", want, block)
		}
	}
}

func TestVoiceBlockOmitsEmptyFields(t *testing.T) {
	block := voiceBlock(model.VoiceProfile{Name: "Bare", Tone: model.ToneCasual})

	if strings.Contains(block, "Style notes") {
		t.Errorf("voice block should omit empty style notes:\n%s", block)
	}
	if strings.Contains(block, "Keywords") || strings.Contains(block, "keywords where relevant") {
		t.Errorf("voice block should omit empty keywords:\n%s", block)
	}
	if !strings.Contains(block, "Do not use emojis") {
		t.Errorf("voice block should forbid emojis when disabled:\n%s", block)
	}
}
