package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"app/internal/model"
)

type ContentRepository interface {
	CreateContent(ctx context.Context, c *model.ContentRecord) error
	GetContentByID(ctx context.Context, contentID string) (*model.ContentRecord, error)
	ListContentByUserID(ctx context.Context, userID string, limit, offset int) ([]model.ContentRecord, error)
	UpdateContentStatus(ctx context.Context, contentID, status string) error
	DeleteContent(ctx context.Context, contentID string) error
	// CountCreatedInRange counts the user's content records created within
	// [start, end).
	CountCreatedInRange(ctx context.Context, userID string, start, end time.Time) (int, error)
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, user_id, brand_id, source_url, source_text, generated_content, cover_image_url, status, created_at, updated_at`

func scanContent(row interface{ Scan(dest ...any) error }) (*model.ContentRecord, error) {
	var c model.ContentRecord
	var generated []byte
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.BrandID,
		&c.SourceURL,
		&c.SourceText,
		&generated,
		&c.CoverImageURL,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(generated) > 0 {
		if err := json.Unmarshal(generated, &c.GeneratedContent); err != nil {
			return nil, fmt.Errorf("failed to decode generated content: %w", err)
		}
	}
	return &c, nil
}

func (r *contentRepository) CreateContent(ctx context.Context, c *model.ContentRecord) error {
	generated, err := json.Marshal(c.GeneratedContent)
	if err != nil {
		return fmt.Errorf("failed to encode generated content: %w", err)
	}
	query := `
		INSERT INTO content_records (id, user_id, brand_id, source_url, source_text, generated_content, cover_image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.BrandID, c.SourceURL, c.SourceText, generated, c.CoverImageURL, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert content record: %w", err)
	}
	return nil
}

func (r *contentRepository) GetContentByID(ctx context.Context, contentID string) (*model.ContentRecord, error) {
	query := `SELECT ` + contentColumns + ` FROM content_records WHERE id = $1`
	c, err := scanContent(r.db.QueryRowContext(ctx, query, contentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan content record: %w", err)
	}
	return c, nil
}

func (r *contentRepository) ListContentByUserID(ctx context.Context, userID string, limit, offset int) ([]model.ContentRecord, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query content records: %w", err)
	}
	defer rows.Close()

	var records []model.ContentRecord
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content record row: %w", err)
		}
		records = append(records, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

func (r *contentRepository) UpdateContentStatus(ctx context.Context, contentID, status string) error {
	query := `UPDATE content_records SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, status, contentID); err != nil {
		return fmt.Errorf("failed to update content status: %w", err)
	}
	return nil
}

func (r *contentRepository) DeleteContent(ctx context.Context, contentID string) error {
	query := `DELETE FROM content_records WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, contentID); err != nil {
		return fmt.Errorf("failed to delete content record: %w", err)
	}
	return nil
}

func (r *contentRepository) CountCreatedInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM content_records
		WHERE user_id = $1
		  AND created_at >= $2
		  AND created_at < $3
	`
	var count int
	if err := r.db.QueryRowContext(ctx, q, userID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count content records for user %s: %w", userID, err)
	}
	return count, nil
}
