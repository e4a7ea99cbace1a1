package model

import (
	"errors"
	"time"
)

// PendingRegistration is an unverified signup awaiting code confirmation.
// Keyed by email; superseded in place when the user requests a new code.
type PendingRegistration struct {
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CodeHash     string    `db:"code_hash"`
	ExpiresAt    time.Time `db:"expires_at"`
	Attempts     int       `db:"attempts"`
	LastSentAt   time.Time `db:"last_sent_at"`
}

// RegisterRequest is the request body for /auth/register/request.
type RegisterRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=6"`
	ConfirmPassword *string `json:"confirmPassword"`
}

// VerifyRequest is the request body for /auth/register/verify.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// Registration flow constants
const (
	MinPasswordLength = 6
	CodeTTL           = 10 * time.Minute
	ResendWindow      = 60 * time.Second
	MaxVerifyAttempts = 5
)

var (
	// ErrPasswordMismatch is returned when confirmPassword does not match
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrPendingNotFound is returned when no pending registration exists for the email
	ErrPendingNotFound = errors.New("no pending registration")

	// ErrThrottled is returned when a code was requested less than a minute ago
	ErrThrottled = errors.New("code requested too recently")

	// ErrCodeExpired is returned when the pending registration is past its expiry
	ErrCodeExpired = errors.New("verification code expired")

	// ErrTooManyAttempts is returned once five incorrect codes have been tried
	ErrTooManyAttempts = errors.New("too many verification attempts")

	// ErrInvalidCode is returned when the submitted code does not match
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrDeliveryFailed is returned when the verification email could not be sent
	ErrDeliveryFailed = errors.New("failed to deliver verification code")
)
