package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fotofocus-backend/internal/model"
)

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// photoViewSelect computes rating aggregates over distinct raters; the
// (user_id, photo_id) unique constraint guarantees one row per rater.
const photoViewSelect = `
	SELECT p.id, p.challenge_id, p.user_id, p.image_url, COALESCE(p.caption, '') AS caption, p.created_at,
	       u.email AS user_email,
	       COALESCE(AVG(r.value), 0) AS avg_rating,
	       COUNT(r.value) AS rating_count
	FROM photos p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN ratings r ON r.photo_id = p.id
`

func (r *photoRepository) Create(ctx context.Context, photo *model.Photo) error {
	query := `
		INSERT INTO photos (challenge_id, user_id, image_url, image_key, caption)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		photo.ChallengeID,
		photo.UserID,
		photo.ImageURL,
		photo.ImageKey,
		photo.Caption,
	)
	if err := row.Scan(&photo.ID, &photo.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

func (r *photoRepository) GetByID(ctx context.Context, id int64) (*model.Photo, error) {
	query := `
		SELECT id, challenge_id, user_id, image_url, image_key, caption, created_at
		FROM photos
		WHERE id = $1
	`
	var photo model.Photo
	err := r.db.GetContext(ctx, &photo, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return &photo, nil
}

func (r *photoRepository) GetView(ctx context.Context, id int64) (*model.PhotoView, error) {
	query := photoViewSelect + `
		WHERE p.id = $1
		GROUP BY p.id, u.email
	`
	var view model.PhotoView
	err := r.db.GetContext(ctx, &view, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo view: %w", err)
	}
	return &view, nil
}

func (r *photoRepository) ListViewsByChallenge(ctx context.Context, challengeID int64) ([]model.PhotoView, error) {
	query := photoViewSelect + `
		WHERE p.challenge_id = $1
		GROUP BY p.id, u.email
		ORDER BY p.created_at DESC
	`
	views := []model.PhotoView{}
	if err := r.db.SelectContext(ctx, &views, query, challengeID); err != nil {
		return nil, fmt.Errorf("failed to list challenge photos: %w", err)
	}
	return views, nil
}

func (r *photoRepository) ListViewsByUser(ctx context.Context, userID int64) ([]model.PhotoView, error) {
	query := `
		SELECT p.id, p.challenge_id, p.user_id, p.image_url, COALESCE(p.caption, '') AS caption, p.created_at,
		       u.email AS user_email,
		       c.title AS challenge_title,
		       COALESCE(AVG(r.value), 0) AS avg_rating,
		       COUNT(r.value) AS rating_count
		FROM photos p
		JOIN users u ON u.id = p.user_id
		JOIN challenges c ON c.id = p.challenge_id
		LEFT JOIN ratings r ON r.photo_id = p.id
		WHERE p.user_id = $1
		GROUP BY p.id, u.email, c.title
		ORDER BY p.created_at DESC
	`
	views := []model.PhotoView{}
	if err := r.db.SelectContext(ctx, &views, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user photos: %w", err)
	}
	return views, nil
}

func (r *photoRepository) ImageKeysByChallenge(ctx context.Context, challengeID int64) ([]string, error) {
	var keys []string
	err := r.db.SelectContext(ctx, &keys,
		`SELECT image_key FROM photos WHERE challenge_id = $1 AND image_key IS NOT NULL`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to select image keys: %w", err)
	}
	return keys, nil
}

// ImageKeysForUserCascade collects blob keys for the photos the account
// deletion will remove, so storage can be cleaned up after the commit.
func (r *photoRepository) ImageKeysForUserCascade(ctx context.Context, userID int64) ([]string, error) {
	var keys []string
	query := `
		SELECT image_key FROM photos
		WHERE image_key IS NOT NULL
		  AND (user_id = $1 OR challenge_id IN (SELECT id FROM challenges WHERE creator_id = $1))
	`
	if err := r.db.SelectContext(ctx, &keys, query, userID); err != nil {
		return nil, fmt.Errorf("failed to select cascade image keys: %w", err)
	}
	return keys, nil
}

// IDsForUserCascade selects the photos the account-deletion cascade must
// remove: the user's own photos plus every photo inside the user's challenges,
// regardless of uploader.
func (r *photoRepository) IDsForUserCascade(ctx context.Context, tx *sqlx.Tx, userID int64, challengeIDs []int64) ([]int64, error) {
	var ids []int64
	err := tx.SelectContext(ctx, &ids,
		`SELECT id FROM photos WHERE user_id = $1 OR challenge_id = ANY($2)`,
		userID, pq.Array(challengeIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to select cascade photo ids: %w", err)
	}
	return ids, nil
}

func (r *photoRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPhotoNotFound
	}
	return nil
}

func (r *photoRepository) DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE challenge_id = $1`, challengeID); err != nil {
		return fmt.Errorf("failed to delete photos by challenge: %w", err)
	}
	return nil
}

func (r *photoRepository) DeleteByIDs(ctx context.Context, tx *sqlx.Tx, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to delete photos by ids: %w", err)
	}
	return nil
}
