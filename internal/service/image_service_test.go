package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSynthesizePersistsToDurableStorage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png bytes"))
	}))
	defer upstream.Close()

	generator := &fakeImageGenerator{url: upstream.URL + "/tmp/gen.png"}
	storage := newFakeStorage()
	svc := NewImageService(generator, storage, zerolog.Nop())

	url := svc.Synthesize(context.Background(), "user-1", "launch announcement")
	if url == nil {
		t.Fatal("Synthesize returned nil on the happy path")
	}
	if !strings.HasPrefix(*url, "https://storage.example/covers/user-1/") {
		t.Errorf("url = %q, want a durable covers/ URL", *url)
	}
	if len(storage.objects) != 1 {
		t.Errorf("stored objects = %d, want 1", len(storage.objects))
	}
	for key, data := range storage.objects {
		if !strings.HasPrefix(key, "covers/user-1/") || !strings.HasSuffix(key, ".png") {
			t.Errorf("object key = %q", key)
		}
		if string(data) != "png bytes" {
			t.Errorf("stored bytes = %q", data)
		}
	}
}

func TestSynthesizeGenerationFailureReturnsNil(t *testing.T) {
	generator := &fakeImageGenerator{err: errors.New("model overloaded")}
	svc := NewImageService(generator, newFakeStorage(), zerolog.Nop())

	if url := svc.Synthesize(context.Background(), "user-1", "topic"); url != nil {
		t.Errorf("url = %q, want nil when generation fails", *url)
	}
}

func TestSynthesizePersistFailureFallsBackToEphemeralURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png bytes"))
	}))
	defer upstream.Close()

	ephemeral := upstream.URL + "/tmp/gen.png"
	generator := &fakeImageGenerator{url: ephemeral}
	storage := newFakeStorage()
	storage.uploadErr = errors.New("bucket unavailable")
	svc := NewImageService(generator, storage, zerolog.Nop())

	url := svc.Synthesize(context.Background(), "user-1", "topic")
	if url == nil || *url != ephemeral {
		t.Fatalf("url = %v, want the ephemeral URL %q", url, ephemeral)
	}
}

func TestSynthesizeFetchFailureFallsBackToEphemeralURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	ephemeral := upstream.URL + "/tmp/gen.png"
	svc := NewImageService(&fakeImageGenerator{url: ephemeral}, newFakeStorage(), zerolog.Nop())

	url := svc.Synthesize(context.Background(), "user-1", "topic")
	if url == nil || *url != ephemeral {
		t.Fatalf("url = %v, want the ephemeral URL %q", url, ephemeral)
	}
}
