package model

import (
	"errors"
	"time"
)

// PasswordResetToken stores only the hash of a one-shot reset token.
type PasswordResetToken struct {
	TokenHash string    `db:"token_hash"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}

// ForgotPasswordRequest is the request body for /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the request body for /auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ResetTokenTTL is how long a reset token stays valid.
const ResetTokenTTL = 15 * time.Minute

var (
	// ErrResetTokenInvalid covers both unknown and expired reset tokens
	ErrResetTokenInvalid = errors.New("token is invalid or expired")

	// ErrWeakPassword is returned when the new password is below the minimum length
	ErrWeakPassword = errors.New("password too short")
)
