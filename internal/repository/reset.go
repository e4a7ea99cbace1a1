package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

type passwordResetRepository struct {
	db *sqlx.DB
}

func NewPasswordResetRepository(db *sqlx.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, token.TokenHash, token.UserID, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}
	return nil
}

func (r *passwordResetRepository) GetByHash(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error) {
	query := `
		SELECT token_hash, user_id, expires_at
		FROM password_reset_tokens
		WHERE token_hash = $1
	`
	var token model.PasswordResetToken
	err := r.db.GetContext(ctx, &token, query, tokenHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return &token, nil
}

// Delete consumes the token inside the reset transaction (single use).
func (r *passwordResetRepository) Delete(ctx context.Context, tx *sqlx.Tx, tokenHash string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE token_hash = $1`, tokenHash); err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}

// DeleteByHash drops a dead token outside any transaction, used when an
// expired row is found during a reset attempt.
func (r *passwordResetRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE token_hash = $1`, tokenHash); err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}

// DeleteByUser clears a user's outstanding reset tokens; the account
// deletion cascade needs this before the user row can go.
func (r *passwordResetRepository) DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete reset tokens: %w", err)
	}
	return nil
}
