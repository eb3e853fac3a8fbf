package service

import (
	"bytes"
	"context"
	"io"
	"time"

	"app/internal/model"
)

// fakeBrandRepo is an in-memory BrandRepository.
type fakeBrandRepo struct {
	brands  map[string]*model.BrandVoice
	err     error
	getCall int
}

func newFakeBrandRepo(brands ...*model.BrandVoice) *fakeBrandRepo {
	m := make(map[string]*model.BrandVoice)
	for _, b := range brands {
		m[b.ID] = b
	}
	return &fakeBrandRepo{brands: m}
}

func (f *fakeBrandRepo) CreateBrand(ctx context.Context, b *model.BrandVoice) error {
	if f.err != nil {
		return f.err
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.brands[b.ID] = b
	return nil
}

func (f *fakeBrandRepo) GetBrandByID(ctx context.Context, brandID string) (*model.BrandVoice, error) {
	f.getCall++
	if f.err != nil {
		return nil, f.err
	}
	return f.brands[brandID], nil
}

func (f *fakeBrandRepo) GetDefaultBrandByUserID(ctx context.Context, userID string) (*model.BrandVoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.brands {
		if b.UserID == userID && b.IsDefault {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBrandRepo) ListBrandsByUserID(ctx context.Context, userID string, limit, offset int) ([]model.BrandVoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.BrandVoice
	for _, b := range f.brands {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBrandRepo) UpdateBrand(ctx context.Context, b *model.BrandVoice) error {
	if f.err != nil {
		return f.err
	}
	f.brands[b.ID] = b
	return nil
}

func (f *fakeBrandRepo) DeleteBrand(ctx context.Context, brandID string) error {
	delete(f.brands, brandID)
	return f.err
}

func (f *fakeBrandRepo) SetDefaultBrand(ctx context.Context, userID, brandID string) error {
	if f.err != nil {
		return f.err
	}
	for _, b := range f.brands {
		if b.UserID == userID {
			b.IsDefault = false
		}
	}
	if b, ok := f.brands[brandID]; ok && b.UserID == userID {
		b.IsDefault = true
	}
	return nil
}

// fakeContentRepo is an in-memory ContentRepository with a configurable
// usage count.
type fakeContentRepo struct {
	created    []*model.ContentRecord
	count      int
	countErr   error
	createErr  error
	rangeStart time.Time
	rangeEnd   time.Time
}

func (f *fakeContentRepo) CreateContent(ctx context.Context, c *model.ContentRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.created = append(f.created, c)
	return nil
}

func (f *fakeContentRepo) GetContentByID(ctx context.Context, contentID string) (*model.ContentRecord, error) {
	for _, c := range f.created {
		if c.ID == contentID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeContentRepo) ListContentByUserID(ctx context.Context, userID string, limit, offset int) ([]model.ContentRecord, error) {
	var out []model.ContentRecord
	for _, c := range f.created {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) UpdateContentStatus(ctx context.Context, contentID, status string) error {
	for _, c := range f.created {
		if c.ID == contentID {
			c.Status = status
		}
	}
	return nil
}

func (f *fakeContentRepo) DeleteContent(ctx context.Context, contentID string) error {
	return nil
}

func (f *fakeContentRepo) CountCreatedInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	f.rangeStart, f.rangeEnd = start, end
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

// fakeMediaRepo is an in-memory MediaRepository.
type fakeMediaRepo struct {
	assets         map[string]*model.MediaAsset
	count          int
	countErr       error
	setErr         error
	setTranscripts []string
}

func newFakeMediaRepo(assets ...*model.MediaAsset) *fakeMediaRepo {
	m := make(map[string]*model.MediaAsset)
	for _, a := range assets {
		m[a.ID] = a
	}
	return &fakeMediaRepo{assets: m}
}

func (f *fakeMediaRepo) CreateAsset(ctx context.Context, a *model.MediaAsset) error {
	a.CreatedAt = time.Now()
	f.assets[a.ID] = a
	return nil
}

func (f *fakeMediaRepo) GetAssetByID(ctx context.Context, assetID string) (*model.MediaAsset, error) {
	return f.assets[assetID], nil
}

func (f *fakeMediaRepo) ListAssetsByUserID(ctx context.Context, userID string, limit, offset int) ([]model.MediaAsset, error) {
	var out []model.MediaAsset
	for _, a := range f.assets {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) DeleteAsset(ctx context.Context, assetID string) error {
	delete(f.assets, assetID)
	return nil
}

func (f *fakeMediaRepo) SetTranscript(ctx context.Context, assetID, transcript string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setTranscripts = append(f.setTranscripts, transcript)
	if a, ok := f.assets[assetID]; ok && a.Transcript == nil {
		a.Transcript = &transcript
	}
	return nil
}

func (f *fakeMediaRepo) CountTranscribedInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

// fakeTextGenerator scripts completion responses per call.
type fakeTextGenerator struct {
	respond  func(req CompletionRequest) (string, error)
	requests []CompletionRequest
	jsonResp string
	jsonErr  error
}

func (f *fakeTextGenerator) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.respond == nil {
		return "generated text", nil
	}
	return f.respond(req)
}

func (f *fakeTextGenerator) CompleteJSON(ctx context.Context, req CompletionRequest, schemaName string, schema any) (string, error) {
	f.requests = append(f.requests, req)
	return f.jsonResp, f.jsonErr
}

// fakeImageGenerator returns a fixed ephemeral URL.
type fakeImageGenerator struct {
	url   string
	err   error
	calls int
}

func (f *fakeImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.url, f.err
}

// fakeStorage is an in-memory ObjectStorage.
type fakeStorage struct {
	objects     map[string][]byte
	uploadErr   error
	downloadErr error
	headErr     error
	deleteErr   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, _ := io.ReadAll(body)
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	data, ok := f.objects[key]
	if !ok {
		data = []byte("media bytes")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Head(ctx context.Context, key string) error { return f.headErr }

func (f *fakeStorage) Delete(ctx context.Context, key string) error { return f.deleteErr }

func (f *fakeStorage) PresignPut(ctx context.Context, key string) (string, error) {
	return "https://storage.example/upload/" + key, nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://storage.example/" + key
}

// fakeSpeechToText records calls and returns a fixed transcript.
type fakeSpeechToText struct {
	transcript string
	err        error
	calls      int
	language   string
}

func (f *fakeSpeechToText) Transcribe(ctx context.Context, audio io.Reader, filename, mimeType, language string) (string, error) {
	f.calls++
	f.language = language
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}
