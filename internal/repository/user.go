package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, avatar_url, avatar_key, created_at`

// Create inserts a new user. It runs inside the registration-verify
// transaction so the pending entry is consumed atomically.
func (r *userRepository) Create(ctx context.Context, tx *sqlx.Tx, email, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	var u model.User
	if err := tx.GetContext(ctx, &u, query, email, passwordHash); err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &u, nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by their email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// ExistsByEmail checks if an email is already registered
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

func (r *userRepository) UpdateName(ctx context.Context, id int64, name *string) (*model.User, error) {
	query := `UPDATE users SET name = $1 WHERE id = $2 RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, name, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update name: %w", err)
	}

	return &u, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL, avatarKey string) (*model.User, error) {
	query := `UPDATE users SET avatar_url = $1, avatar_key = $2 WHERE id = $3 RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, avatarURL, avatarKey, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return &u, nil
}

// UpdatePasswordHash runs inside the reset transaction so the token row is
// consumed in the same atomic unit.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, tx *sqlx.Tx, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE id = $2`
	result, err := tx.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// Delete removes the user row. Last step of the account-deletion cascade.
func (r *userRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GetStats aggregates the profile counters in a handful of scalar queries.
func (r *userRepository) GetStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	var stats model.UserStats

	if err := r.db.GetContext(ctx, &stats.PhotoCount,
		`SELECT COUNT(*) FROM photos WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.ChallengeCount,
		`SELECT COUNT(*) FROM challenges WHERE creator_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to count challenges: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.FollowersCount,
		`SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.FollowingCount,
		`SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	var agg struct {
		Avg   *float64 `db:"avg"`
		Count int      `db:"count"`
	}
	err := r.db.GetContext(ctx, &agg, `
		SELECT AVG(r.value) AS avg, COUNT(r.value) AS count
		FROM ratings r
		JOIN photos p ON p.id = r.photo_id
		WHERE p.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	if agg.Avg != nil {
		stats.AvgRatingReceived = *agg.Avg
	}
	stats.RatingCount = agg.Count

	return &stats, nil
}
