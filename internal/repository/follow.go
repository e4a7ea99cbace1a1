package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create is idempotent: a duplicate follow is swallowed by the unique pair.
func (r *followRepository) Create(ctx context.Context, followerID, followingID int64) error {
	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

// Delete is idempotent: unfollowing a user never followed is a no-op.
func (r *followRepository) Delete(ctx context.Context, followerID, followingID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	if _, err := r.db.ExecContext(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, followerID, followingID); err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

func (r *followRepository) Followers(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	query := `
		SELECT u.id, u.email, u.name, u.avatar_url, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`
	users := []model.PublicUser{}
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) Following(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	query := `
		SELECT u.id, u.email, u.name, u.avatar_url, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	users := []model.PublicUser{}
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

// DeleteAllForUser removes follow edges where the user is either side.
func (r *followRepository) DeleteAllForUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 OR following_id = $1`
	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete follows for user: %w", err)
	}
	return nil
}
