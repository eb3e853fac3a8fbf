package model

import "time"

// MediaAsset is an uploaded audio or video file stored in object storage.
// Transcript is write-once: once set, the transcription pipeline never
// regenerates it and repeat requests return the cached value.
type MediaAsset struct {
	ID          string            `db:"id" json:"id"`
	UserID      string            `db:"user_id" json:"user_id"`
	Filename    string            `db:"filename" json:"filename"`
	MimeType    string            `db:"mime_type" json:"mime_type"`
	SizeBytes   int64             `db:"size_bytes" json:"size_bytes"`
	StoragePath string            `db:"storage_path" json:"storage_path"`
	Transcript  *string           `db:"transcript" json:"transcript,omitempty"`
	Metadata    map[string]string `db:"metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

// Transcribed reports whether the asset already carries a cached transcript.
func (a *MediaAsset) Transcribed() bool {
	return a.Transcript != nil && *a.Transcript != ""
}
