package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fotofocus-backend/internal/model"
)

type ratingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert relies on the (user_id, photo_id) unique constraint so two
// concurrent ratings from the same user collapse into one row.
func (r *ratingRepository) Upsert(ctx context.Context, photoID, userID int64, value int) error {
	query := `
		INSERT INTO ratings (photo_id, user_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, photo_id) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := r.db.ExecContext(ctx, query, photoID, userID, value); err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) Stats(ctx context.Context, photoID int64) (*model.RatingStats, error) {
	query := `
		SELECT COALESCE(AVG(value), 0) AS avg_rating, COUNT(value) AS rating_count
		FROM ratings
		WHERE photo_id = $1
	`
	var stats model.RatingStats
	if err := r.db.GetContext(ctx, &stats, query, photoID); err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	return &stats, nil
}

func (r *ratingRepository) DeleteByPhoto(ctx context.Context, tx *sqlx.Tx, photoID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE photo_id = $1`, photoID); err != nil {
		return fmt.Errorf("failed to delete ratings by photo: %w", err)
	}
	return nil
}

func (r *ratingRepository) DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error {
	query := `
		DELETE FROM ratings
		WHERE photo_id IN (SELECT id FROM photos WHERE challenge_id = $1)
	`
	if _, err := tx.ExecContext(ctx, query, challengeID); err != nil {
		return fmt.Errorf("failed to delete ratings by challenge: %w", err)
	}
	return nil
}

// DeleteForUserCascade removes ratings authored by the user anywhere plus
// ratings on the photos the cascade is about to remove.
func (r *ratingRepository) DeleteForUserCascade(ctx context.Context, tx *sqlx.Tx, userID int64, photoIDs []int64) error {
	query := `DELETE FROM ratings WHERE user_id = $1 OR photo_id = ANY($2)`
	if _, err := tx.ExecContext(ctx, query, userID, pq.Array(photoIDs)); err != nil {
		return fmt.Errorf("failed to delete ratings for user cascade: %w", err)
	}
	return nil
}
