package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"app/internal/model"
)

type MediaRepository interface {
	CreateAsset(ctx context.Context, a *model.MediaAsset) error
	GetAssetByID(ctx context.Context, assetID string) (*model.MediaAsset, error)
	ListAssetsByUserID(ctx context.Context, userID string, limit, offset int) ([]model.MediaAsset, error)
	DeleteAsset(ctx context.Context, assetID string) error
	// SetTranscript writes the transcript onto an asset. Transcripts are
	// write-once; the pipeline never regenerates one that is already set.
	SetTranscript(ctx context.Context, assetID, transcript string) error
	// CountTranscribedInRange counts the user's transcribed assets created
	// within [start, end).
	CountTranscribedInRange(ctx context.Context, userID string, start, end time.Time) (int, error)
}

type mediaRepository struct {
	db *sql.DB
}

func NewMediaRepository(db *sql.DB) MediaRepository {
	return &mediaRepository{db: db}
}

const assetColumns = `id, user_id, filename, mime_type, size_bytes, storage_path, transcript, metadata, created_at`

func scanAsset(row interface{ Scan(dest ...any) error }) (*model.MediaAsset, error) {
	var a model.MediaAsset
	var metadata []byte
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Filename,
		&a.MimeType,
		&a.SizeBytes,
		&a.StoragePath,
		&a.Transcript,
		&metadata,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode asset metadata: %w", err)
		}
	}
	return &a, nil
}

func (r *mediaRepository) CreateAsset(ctx context.Context, a *model.MediaAsset) error {
	metadata, err := json.Marshal(a.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode asset metadata: %w", err)
	}
	query := `
		INSERT INTO media_assets (id, user_id, filename, mime_type, size_bytes, storage_path, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		a.ID, a.UserID, a.Filename, a.MimeType, a.SizeBytes, a.StoragePath, metadata,
	).Scan(&a.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert media asset: %w", err)
	}
	return nil
}

func (r *mediaRepository) GetAssetByID(ctx context.Context, assetID string) (*model.MediaAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM media_assets WHERE id = $1`
	a, err := scanAsset(r.db.QueryRowContext(ctx, query, assetID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan media asset: %w", err)
	}
	return a, nil
}

func (r *mediaRepository) ListAssetsByUserID(ctx context.Context, userID string, limit, offset int) ([]model.MediaAsset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM media_assets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query media assets: %w", err)
	}
	defer rows.Close()

	var assets []model.MediaAsset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media asset row: %w", err)
		}
		assets = append(assets, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return assets, nil
}

func (r *mediaRepository) DeleteAsset(ctx context.Context, assetID string) error {
	query := `DELETE FROM media_assets WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, assetID); err != nil {
		return fmt.Errorf("failed to delete media asset: %w", err)
	}
	return nil
}

func (r *mediaRepository) SetTranscript(ctx context.Context, assetID, transcript string) error {
	query := `UPDATE media_assets SET transcript = $1 WHERE id = $2 AND transcript IS NULL`
	if _, err := r.db.ExecContext(ctx, query, transcript, assetID); err != nil {
		return fmt.Errorf("failed to store transcript: %w", err)
	}
	return nil
}

func (r *mediaRepository) CountTranscribedInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM media_assets
		WHERE user_id = $1
		  AND transcript IS NOT NULL
		  AND created_at >= $2
		  AND created_at < $3
	`
	var count int
	if err := r.db.QueryRowContext(ctx, q, userID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transcribed assets for user %s: %w", userID, err)
	}
	return count, nil
}
