package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

type pendingRegistrationRepository struct {
	db *sqlx.DB
}

func NewPendingRegistrationRepository(db *sqlx.DB) PendingRegistrationRepository {
	return &pendingRegistrationRepository{db: db}
}

// Upsert creates or replaces the pending entry for the email, resetting the
// attempt counter. A re-request supersedes the previous code entirely.
func (r *pendingRegistrationRepository) Upsert(ctx context.Context, pending *model.PendingRegistration) error {
	query := `
		INSERT INTO pending_registrations (email, password_hash, code_hash, expires_at, attempts, last_sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			code_hash     = EXCLUDED.code_hash,
			expires_at    = EXCLUDED.expires_at,
			attempts      = EXCLUDED.attempts,
			last_sent_at  = EXCLUDED.last_sent_at
	`
	_, err := r.db.ExecContext(ctx, query,
		pending.Email,
		pending.PasswordHash,
		pending.CodeHash,
		pending.ExpiresAt,
		pending.Attempts,
		pending.LastSentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pending registration: %w", err)
	}
	return nil
}

func (r *pendingRegistrationRepository) GetByEmail(ctx context.Context, email string) (*model.PendingRegistration, error) {
	query := `
		SELECT email, password_hash, code_hash, expires_at, attempts, last_sent_at
		FROM pending_registrations
		WHERE email = $1
	`
	var pending model.PendingRegistration
	err := r.db.GetContext(ctx, &pending, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPendingNotFound
		}
		return nil, fmt.Errorf("failed to get pending registration: %w", err)
	}
	return &pending, nil
}

func (r *pendingRegistrationRepository) IncrementAttempts(ctx context.Context, email string) error {
	query := `UPDATE pending_registrations SET attempts = attempts + 1 WHERE email = $1`
	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	return nil
}

func (r *pendingRegistrationRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_registrations WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to delete pending registration: %w", err)
	}
	return nil
}

// DeleteTx removes the pending entry inside the verify transaction, paired
// with the user insert.
func (r *pendingRegistrationRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, email string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_registrations WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to delete pending registration: %w", err)
	}
	return nil
}
