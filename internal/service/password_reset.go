package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"fotofocus-backend/internal/mail"
	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// PasswordResetService issues one-shot reset tokens by email and applies
// the password change they authorize.
type PasswordResetService struct {
	tx         txRunner
	userRepo   repository.UserRepository
	resetRepo  repository.PasswordResetRepository
	mailer     mail.Mailer
	production bool
}

func NewPasswordResetService(
	tx txRunner,
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	mailer mail.Mailer,
	production bool,
) *PasswordResetService {
	return &PasswordResetService{
		tx:         tx,
		userRepo:   userRepo,
		resetRepo:  resetRepo,
		mailer:     mailer,
		production: production,
	}
}

// Forgot mails a reset link if the address has an account. The response is
// identical either way so the endpoint cannot be used to probe for accounts.
// Outside production the raw token is returned for local testing.
func (s *PasswordResetService) Forgot(ctx context.Context, req model.ForgotPasswordRequest) (devToken string, err error) {
	email := strings.TrimSpace(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == model.ErrUserNotFound {
			return "", nil
		}
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := s.resetRepo.Create(ctx, &model.PasswordResetToken{
		TokenHash: hashToken(token),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(model.ResetTokenTTL),
	}); err != nil {
		return "", err
	}

	body := fmt.Sprintf("Use this code to reset your FotoFocus password: %s\nIt expires in 15 minutes.", token)
	if err := s.mailer.SendEmail(email, "Reset your FotoFocus password", body); err != nil {
		log.Printf("[PasswordResetService] failed to send reset email to %s: %v", email, err)
		return "", model.ErrDeliveryFailed
	}

	if !s.production {
		return token, nil
	}
	return "", nil
}

// Reset validates the token, updates the password, and burns the token, the
// last two inside one transaction so a token can never be spent twice.
func (s *PasswordResetService) Reset(ctx context.Context, req model.ResetPasswordRequest) error {
	if len(req.NewPassword) < model.MinPasswordLength {
		return model.ErrWeakPassword
	}

	tokenHash := hashToken(strings.TrimSpace(req.Token))
	reset, err := s.resetRepo.GetByHash(ctx, tokenHash)
	if err != nil {
		return err
	}
	if time.Now().After(reset.ExpiresAt) {
		if err := s.resetRepo.DeleteByHash(ctx, tokenHash); err != nil {
			log.Printf("[PasswordResetService] failed to clear expired token for user %d: %v", reset.UserID, err)
		}
		return model.ErrResetTokenInvalid
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.tx.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepo.UpdatePasswordHash(ctx, tx, reset.UserID, string(passwordHash)); err != nil {
			return err
		}
		return s.resetRepo.Delete(ctx, tx, tokenHash)
	})
}
