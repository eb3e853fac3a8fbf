package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newQuotaForTest(contentRepo *fakeContentRepo, mediaRepo *fakeMediaRepo, at time.Time) *quotaService {
	s := NewQuotaService(contentRepo, mediaRepo, 5, 5, zerolog.Nop()).(*quotaService)
	s.now = func() time.Time { return at }
	return s
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(time.Date(2025, time.March, 15, 13, 45, 0, 0, time.UTC))

	if want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestMonthWindowDecemberRollsOver(t *testing.T) {
	start, end := MonthWindow(time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC))

	if start.Month() != time.December || start.Year() != 2025 {
		t.Errorf("start = %v, want December 2025", start)
	}
	if end.Month() != time.January || end.Year() != 2026 {
		t.Errorf("end = %v, want January 2026", end)
	}
}

func TestCheckGenerationBelowCap(t *testing.T) {
	contentRepo := &fakeContentRepo{count: 4}
	quota := newQuotaForTest(contentRepo, newFakeMediaRepo(), time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))

	if err := quota.CheckGeneration(context.Background(), "user-1"); err != nil {
		t.Fatalf("CheckGeneration returned error at count 4 of 5: %v", err)
	}

	start, end := MonthWindow(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
	if !contentRepo.rangeStart.Equal(start) || !contentRepo.rangeEnd.Equal(end) {
		t.Errorf("counted range [%v, %v), want [%v, %v)", contentRepo.rangeStart, contentRepo.rangeEnd, start, end)
	}
}

func TestCheckGenerationAtCap(t *testing.T) {
	quota := newQuotaForTest(&fakeContentRepo{count: 5}, newFakeMediaRepo(), time.Now())

	err := quota.CheckGeneration(context.Background(), "user-1")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("CheckGeneration at cap = %v, want ErrQuotaExceeded", err)
	}

	var quotaErr *QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("rejection %v does not carry the cap", err)
	}
	if quotaErr.Cap != 5 {
		t.Errorf("cap = %d, want 5", quotaErr.Cap)
	}
	if !strings.Contains(err.Error(), "5") {
		t.Errorf("rejection message %q does not state the cap", err.Error())
	}
}

func TestCheckGenerationReadFailureIsNotQuotaError(t *testing.T) {
	quota := newQuotaForTest(&fakeContentRepo{countErr: errors.New("db down")}, newFakeMediaRepo(), time.Now())

	err := quota.CheckGeneration(context.Background(), "user-1")
	if err == nil {
		t.Fatal("expected error when the usage read fails")
	}
	if errors.Is(err, ErrQuotaExceeded) {
		t.Fatal("a failed usage read must not be reported as a quota rejection")
	}
}

func TestCheckTranscriptionAtCap(t *testing.T) {
	mediaRepo := newFakeMediaRepo()
	mediaRepo.count = 5
	quota := newQuotaForTest(&fakeContentRepo{}, mediaRepo, time.Now())

	if err := quota.CheckTranscription(context.Background(), "user-1"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("CheckTranscription at cap = %v, want ErrQuotaExceeded", err)
	}
}

func TestUsageReportsWindowAndCounts(t *testing.T) {
	mediaRepo := newFakeMediaRepo()
	mediaRepo.count = 2
	at := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	quota := newQuotaForTest(&fakeContentRepo{count: 3}, mediaRepo, at)

	usage, err := quota.Usage(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Usage returned error: %v", err)
	}
	if usage.Generations != 3 || usage.MaxGenerations != 5 {
		t.Errorf("generations = %d/%d, want 3/5", usage.Generations, usage.MaxGenerations)
	}
	if usage.Transcriptions != 2 || usage.MaxTranscriptions != 5 {
		t.Errorf("transcriptions = %d/%d, want 2/5", usage.Transcriptions, usage.MaxTranscriptions)
	}
	start, end := MonthWindow(at)
	if !usage.PeriodStart.Equal(start) || !usage.PeriodEnd.Equal(end) {
		t.Errorf("period = [%v, %v), want [%v, %v)", usage.PeriodStart, usage.PeriodEnd, start, end)
	}
}
