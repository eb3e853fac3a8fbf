package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/repository"

	"github.com/rs/zerolog"
)

// ErrQuotaExceeded is returned when a user has reached their monthly cap.
var ErrQuotaExceeded = errors.New("monthly_quota_exceeded")

// QuotaExceededError is the concrete rejection carrying the cap that was
// hit, so user-facing messages can state the actual limit. It matches
// ErrQuotaExceeded under errors.Is.
type QuotaExceededError struct {
	Cap int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly quota of %d exceeded", e.Cap)
}

func (e *QuotaExceededError) Is(target error) bool { return target == ErrQuotaExceeded }

// MonthlyUsage reports a user's consumption within the current window.
type MonthlyUsage struct {
	Generations       int       `json:"generations"`
	MaxGenerations    int       `json:"max_generations"`
	Transcriptions    int       `json:"transcriptions"`
	MaxTranscriptions int       `json:"max_transcriptions"`
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
}

// QuotaService counts a user's generation and transcription actions within
// the current calendar-month window against fixed caps. The check does not
// reserve a slot; the count rises once the caller's own write lands, so two
// concurrent requests can both pass and push the month slightly past the cap.
type QuotaService interface {
	CheckGeneration(ctx context.Context, userID string) error
	CheckTranscription(ctx context.Context, userID string) error
	Usage(ctx context.Context, userID string) (*MonthlyUsage, error)
}

type quotaService struct {
	contentRepo       repository.ContentRepository
	mediaRepo         repository.MediaRepository
	maxGenerations    int
	maxTranscriptions int
	now               func() time.Time
	logger            zerolog.Logger
}

// NewQuotaService creates a QuotaService with the given monthly caps.
func NewQuotaService(
	contentRepo repository.ContentRepository,
	mediaRepo repository.MediaRepository,
	maxGenerations, maxTranscriptions int,
	logger zerolog.Logger,
) QuotaService {
	return &quotaService{
		contentRepo:       contentRepo,
		mediaRepo:         mediaRepo,
		maxGenerations:    maxGenerations,
		maxTranscriptions: maxTranscriptions,
		now:               time.Now,
		logger:            logger.With().Str("service", "QuotaService").Logger(),
	}
}

// MonthWindow returns the half-open interval [first-of-month,
// first-of-next-month) containing t, in t's location.
func MonthWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}

func (s *quotaService) CheckGeneration(ctx context.Context, userID string) error {
	start, end := MonthWindow(s.now())
	count, err := s.contentRepo.CountCreatedInRange(ctx, userID, start, end)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to read generation usage")
		return fmt.Errorf("reading generation usage: %w", err)
	}
	if count >= s.maxGenerations {
		return &QuotaExceededError{Cap: s.maxGenerations}
	}
	return nil
}

func (s *quotaService) CheckTranscription(ctx context.Context, userID string) error {
	start, end := MonthWindow(s.now())
	count, err := s.mediaRepo.CountTranscribedInRange(ctx, userID, start, end)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to read transcription usage")
		return fmt.Errorf("reading transcription usage: %w", err)
	}
	if count >= s.maxTranscriptions {
		return &QuotaExceededError{Cap: s.maxTranscriptions}
	}
	return nil
}

func (s *quotaService) Usage(ctx context.Context, userID string) (*MonthlyUsage, error) {
	start, end := MonthWindow(s.now())
	generations, err := s.contentRepo.CountCreatedInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reading generation usage: %w", err)
	}
	transcriptions, err := s.mediaRepo.CountTranscribedInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reading transcription usage: %w", err)
	}
	return &MonthlyUsage{
		Generations:       generations,
		MaxGenerations:    s.maxGenerations,
		Transcriptions:    transcriptions,
		MaxTranscriptions: s.maxTranscriptions,
		PeriodStart:       start,
		PeriodEnd:         end,
	}, nil
}
