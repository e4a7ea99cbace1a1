package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"fotofocus-backend/internal/mail"
	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// RegistrationService runs the two-phase signup: a code is mailed to the
// address first, and the account row is only created once the code checks out.
type RegistrationService struct {
	tx          txRunner
	userRepo    repository.UserRepository
	pendingRepo repository.PendingRegistrationRepository
	tokens      *TokenService
	mailer      mail.Mailer
}

func NewRegistrationService(
	tx txRunner,
	userRepo repository.UserRepository,
	pendingRepo repository.PendingRegistrationRepository,
	tokens *TokenService,
	mailer mail.Mailer,
) *RegistrationService {
	return &RegistrationService{
		tx:          tx,
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		tokens:      tokens,
		mailer:      mailer,
	}
}

// Request stores a pending registration and mails a verification code.
// Re-requesting replaces the previous pending row wholesale, but no sooner
// than a minute after the last send.
func (s *RegistrationService) Request(ctx context.Context, req model.RegisterRequest) error {
	email := strings.TrimSpace(req.Email)

	if req.ConfirmPassword != nil && *req.ConfirmPassword != req.Password {
		return model.ErrPasswordMismatch
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrEmailExists
	}

	pending, err := s.pendingRepo.GetByEmail(ctx, email)
	if err != nil && err != model.ErrPendingNotFound {
		return err
	}
	if pending != nil && time.Since(pending.LastSentAt) < model.ResendWindow {
		return model.ErrThrottled
	}

	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	if err := s.pendingRepo.Upsert(ctx, &model.PendingRegistration{
		Email:        email,
		PasswordHash: string(passwordHash),
		CodeHash:     hashToken(code),
		ExpiresAt:    now.Add(model.CodeTTL),
		Attempts:     0,
		LastSentAt:   now,
	}); err != nil {
		return err
	}

	body := fmt.Sprintf("Your FotoFocus verification code is %s. It expires in 10 minutes.", code)
	if err := s.mailer.SendEmail(email, "Verify your FotoFocus account", body); err != nil {
		// The pending row stays put: the throttle window still applies and a
		// retry after it re-sends a fresh code.
		log.Printf("[RegistrationService] failed to send verification email to %s: %v", email, err)
		return model.ErrDeliveryFailed
	}

	return nil
}

// Verify checks the submitted code against the pending registration and, on
// success, creates the account and removes the pending row atomically.
func (s *RegistrationService) Verify(ctx context.Context, req model.VerifyRequest) (*model.User, string, error) {
	email := strings.TrimSpace(req.Email)
	code := strings.TrimSpace(req.Code)

	pending, err := s.pendingRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if time.Now().After(pending.ExpiresAt) {
		if err := s.pendingRepo.Delete(ctx, email); err != nil {
			log.Printf("[RegistrationService] failed to clear expired registration for %s: %v", email, err)
		}
		return nil, "", model.ErrCodeExpired
	}

	if pending.Attempts >= model.MaxVerifyAttempts {
		return nil, "", model.ErrTooManyAttempts
	}

	if hashToken(code) != pending.CodeHash {
		if err := s.pendingRepo.IncrementAttempts(ctx, email); err != nil {
			log.Printf("[RegistrationService] failed to record attempt for %s: %v", email, err)
		}
		return nil, "", model.ErrInvalidCode
	}

	var user *model.User
	err = s.tx.InTx(ctx, func(tx *sqlx.Tx) error {
		created, err := s.userRepo.Create(ctx, tx, email, pending.PasswordHash)
		if err != nil {
			return err
		}
		user = created
		return s.pendingRepo.DeleteTx(ctx, tx, email)
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// generateVerificationCode returns a random 6-digit numeric code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
