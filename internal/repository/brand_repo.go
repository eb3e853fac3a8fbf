package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"app/internal/model"
)

type BrandRepository interface {
	CreateBrand(ctx context.Context, b *model.BrandVoice) error
	GetBrandByID(ctx context.Context, brandID string) (*model.BrandVoice, error)
	GetDefaultBrandByUserID(ctx context.Context, userID string) (*model.BrandVoice, error)
	ListBrandsByUserID(ctx context.Context, userID string, limit, offset int) ([]model.BrandVoice, error)
	UpdateBrand(ctx context.Context, b *model.BrandVoice) error
	DeleteBrand(ctx context.Context, brandID string) error
	// SetDefaultBrand clears the user's current default and marks the given
	// brand. Both writes run in one transaction so a reader never observes
	// zero defaults between them.
	SetDefaultBrand(ctx context.Context, userID, brandID string) error
}

type brandRepository struct {
	db *sql.DB
}

func NewBrandRepository(db *sql.DB) BrandRepository {
	return &brandRepository{db: db}
}

const brandColumns = `id, user_id, name, tone, style_notes, use_emojis, target_audience, industry, keywords, is_default, created_at, updated_at`

func scanBrand(row interface{ Scan(dest ...any) error }) (*model.BrandVoice, error) {
	var b model.BrandVoice
	var keywords []byte
	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Name,
		&b.Tone,
		&b.StyleNotes,
		&b.UseEmojis,
		&b.TargetAudience,
		&b.Industry,
		&keywords,
		&b.IsDefault,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &b.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode brand keywords: %w", err)
		}
	}
	return &b, nil
}

func (r *brandRepository) CreateBrand(ctx context.Context, b *model.BrandVoice) error {
	keywords, err := json.Marshal(b.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode brand keywords: %w", err)
	}
	query := `
		INSERT INTO brand_voices (id, user_id, name, tone, style_notes, use_emojis, target_audience, industry, keywords, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		b.ID, b.UserID, b.Name, b.Tone, b.StyleNotes, b.UseEmojis, b.TargetAudience, b.Industry, keywords, b.IsDefault,
	).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert brand voice: %w", err)
	}
	return nil
}

func (r *brandRepository) GetBrandByID(ctx context.Context, brandID string) (*model.BrandVoice, error) {
	query := `SELECT ` + brandColumns + ` FROM brand_voices WHERE id = $1`
	b, err := scanBrand(r.db.QueryRowContext(ctx, query, brandID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan brand voice: %w", err)
	}
	return b, nil
}

func (r *brandRepository) GetDefaultBrandByUserID(ctx context.Context, userID string) (*model.BrandVoice, error) {
	query := `SELECT ` + brandColumns + ` FROM brand_voices WHERE user_id = $1 AND is_default = TRUE LIMIT 1`
	b, err := scanBrand(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan default brand voice: %w", err)
	}
	return b, nil
}

func (r *brandRepository) ListBrandsByUserID(ctx context.Context, userID string, limit, offset int) ([]model.BrandVoice, error) {
	query := `
		SELECT ` + brandColumns + `
		FROM brand_voices
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query brand voices: %w", err)
	}
	defer rows.Close()

	var brands []model.BrandVoice
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand voice row: %w", err)
		}
		brands = append(brands, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return brands, nil
}

func (r *brandRepository) UpdateBrand(ctx context.Context, b *model.BrandVoice) error {
	keywords, err := json.Marshal(b.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode brand keywords: %w", err)
	}
	query := `
		UPDATE brand_voices
		SET name = $1, tone = $2, style_notes = $3, use_emojis = $4, target_audience = $5, industry = $6, keywords = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		b.Name, b.Tone, b.StyleNotes, b.UseEmojis, b.TargetAudience, b.Industry, keywords, b.ID,
	).Scan(&b.UpdatedAt); err != nil {
		return fmt.Errorf("failed to update brand voice: %w", err)
	}
	return nil
}

func (r *brandRepository) DeleteBrand(ctx context.Context, brandID string) error {
	query := `DELETE FROM brand_voices WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, brandID); err != nil {
		return fmt.Errorf("failed to delete brand voice: %w", err)
	}
	return nil
}

func (r *brandRepository) SetDefaultBrand(ctx context.Context, userID, brandID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin default-brand transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `UPDATE brand_voices SET is_default = FALSE WHERE user_id = $1 AND is_default = TRUE`, userID); err != nil {
		return fmt.Errorf("failed to clear default brand: %w", err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE brand_voices SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`, brandID, userID)
	if err != nil {
		return fmt.Errorf("failed to set default brand: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit default-brand transaction: %w", err)
	}
	return nil
}
