package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"fotofocus-backend/internal/model"
)

func newTestRegistrationService(userRepo *mockUserRepository, pendingRepo *mockPendingRepository, mailer *mockMailer) *RegistrationService {
	return NewRegistrationService(nil, userRepo, pendingRepo, testTokenService("test-secret", 3600), mailer)
}

func TestRegistrationService_Request_Success(t *testing.T) {
	pendingRepo := &mockPendingRepository{}
	mailer := &mockMailer{}
	svc := newTestRegistrationService(&mockUserRepository{}, pendingRepo, mailer)

	err := svc.Request(context.Background(), model.RegisterRequest{
		Email:    "new@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if len(pendingRepo.upserts) != 1 {
		t.Fatalf("Upsert called %d times, want 1", len(pendingRepo.upserts))
	}
	pending := pendingRepo.upserts[0]

	if pending.Email != "new@example.com" {
		t.Errorf("email = %q", pending.Email)
	}
	if pending.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", pending.Attempts)
	}
	untilExpiry := time.Until(pending.ExpiresAt)
	if untilExpiry < 9*time.Minute || untilExpiry > 10*time.Minute {
		t.Errorf("expiry %v away, want ~10m", untilExpiry)
	}

	// Password must be stored as a bcrypt hash, never raw.
	if pending.PasswordHash == "hunter22" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pending.PasswordHash), []byte("hunter22")); err != nil {
		t.Error("stored hash does not verify against the password")
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	if mailer.sent[0].To != "new@example.com" {
		t.Errorf("mail to = %q", mailer.sent[0].To)
	}

	// The mailed code must hash to the stored code hash.
	code := extractCode(t, mailer.sent[0].Body)
	if hashToken(code) != pending.CodeHash {
		t.Error("mailed code does not match stored hash")
	}
}

func TestRegistrationService_Request_PasswordMismatch(t *testing.T) {
	other := "different"
	svc := newTestRegistrationService(&mockUserRepository{}, &mockPendingRepository{}, &mockMailer{})

	err := svc.Request(context.Background(), model.RegisterRequest{
		Email:           "new@example.com",
		Password:        "hunter22",
		ConfirmPassword: &other,
	})
	if !errors.Is(err, model.ErrPasswordMismatch) {
		t.Errorf("err = %v, want ErrPasswordMismatch", err)
	}
}

func TestRegistrationService_Request_EmailExists(t *testing.T) {
	userRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestRegistrationService(userRepo, &mockPendingRepository{}, &mockMailer{})

	err := svc.Request(context.Background(), model.RegisterRequest{Email: "taken@example.com", Password: "hunter22"})
	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}

func TestRegistrationService_Request_Throttled(t *testing.T) {
	pendingRepo := &mockPendingRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.PendingRegistration, error) {
			return &model.PendingRegistration{
				Email:      email,
				LastSentAt: time.Now().Add(-10 * time.Second),
			}, nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestRegistrationService(&mockUserRepository{}, pendingRepo, mailer)

	err := svc.Request(context.Background(), model.RegisterRequest{Email: "eager@example.com", Password: "hunter22"})
	if !errors.Is(err, model.ErrThrottled) {
		t.Errorf("err = %v, want ErrThrottled", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("no email should be sent while throttled")
	}
}

func TestRegistrationService_Request_ResendAfterWindow(t *testing.T) {
	pendingRepo := &mockPendingRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.PendingRegistration, error) {
			return &model.PendingRegistration{
				Email:      email,
				LastSentAt: time.Now().Add(-2 * time.Minute),
			}, nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestRegistrationService(&mockUserRepository{}, pendingRepo, mailer)

	if err := svc.Request(context.Background(), model.RegisterRequest{Email: "back@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if len(pendingRepo.upserts) != 1 {
		t.Error("pending row should be replaced after the resend window")
	}
	if len(mailer.sent) != 1 {
		t.Error("a fresh code should be mailed")
	}
}

func TestRegistrationService_Request_DeliveryFailure(t *testing.T) {
	pendingRepo := &mockPendingRepository{}
	mailer := &mockMailer{
		sendFn: func(to, subject, body string) error {
			return errors.New("smtp: connection refused")
		},
	}
	svc := newTestRegistrationService(&mockUserRepository{}, pendingRepo, mailer)

	err := svc.Request(context.Background(), model.RegisterRequest{Email: "new@example.com", Password: "hunter22"})
	if !errors.Is(err, model.ErrDeliveryFailed) {
		t.Fatalf("err = %v, want ErrDeliveryFailed", err)
	}
	// Pending row still written; a retry after the window re-sends.
	if len(pendingRepo.upserts) != 1 {
		t.Error("pending row should be kept when delivery fails")
	}
	if len(pendingRepo.deletes) != 0 {
		t.Error("pending row should not be deleted on delivery failure")
	}
}

func TestRegistrationService_Verify_Success(t *testing.T) {
	const email = "new@example.com"
	const code = "123456"

	var created *model.User
	userRepo := &mockUserRepository{
		createFn: func(ctx context.Context, tx *sqlx.Tx, email, passwordHash string) (*model.User, error) {
			created = &model.User{ID: 7, Email: email, PasswordHash: passwordHash}
			return created, nil
		},
	}
	pendingRepo := &mockPendingRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.PendingRegistration, error) {
			return &model.PendingRegistration{
				Email:        email,
				CodeHash:     hashToken(code),
				PasswordHash: "bcrypt-hash",
				ExpiresAt:    time.Now().Add(5 * time.Minute),
			}, nil
		},
	}
	txr := &mockTxRunner{}
	tokens := testTokenService("test-secret", 3600)
	svc := NewRegistrationService(txr, userRepo, pendingRepo, tokens, &mockMailer{})

	user, token, err := svc.Verify(context.Background(), model.VerifyRequest{Email: email, Code: code})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if created == nil || user.ID != created.ID {
		t.Fatalf("user = %+v, want the created account", user)
	}
	if user.Email != email || user.PasswordHash != "bcrypt-hash" {
		t.Errorf("account created with email=%q hash=%q", user.Email, user.PasswordHash)
	}
	if txr.calls != 1 {
		t.Errorf("transactions = %d, want 1", txr.calls)
	}
	// The pending row is consumed in the same transaction as the insert.
	if len(pendingRepo.deletes) != 1 || pendingRepo.deletes[0] != email {
		t.Errorf("pending deletes = %v, want [%s]", pendingRepo.deletes, email)
	}

	identity, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if identity.UserID != user.ID || identity.Email != email {
		t.Errorf("token identity = %+v", identity)
	}
}

func TestRegistrationService_Verify_NotFound(t *testing.T) {
	svc := newTestRegistrationService(&mockUserRepository{}, &mockPendingRepository{}, &mockMailer{})

	_, _, err := svc.Verify(context.Background(), model.VerifyRequest{Email: "nobody@example.com", Code: "123456"})
	if !errors.Is(err, model.ErrPendingNotFound) {
		t.Errorf("err = %v, want ErrPendingNotFound", err)
	}
}

func TestRegistrationService_Verify_Expired(t *testing.T) {
	pendingRepo := &mockPendingRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.PendingRegistration, error) {
			return &model.PendingRegistration{
				Email:     email,
				CodeHash:  hashToken("123456"),
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
	}
	svc := newTestRegistrationService(&mockUserRepository{}, pendingRepo, &mockMailer{})

	_, _, err := svc.Verify(context.Background(), model.VerifyRequest{Email: "late@example.com", Code: "123456"})
	if !errors.Is(err, model.ErrCodeExpired) {
		t.Fatalf("err = %v, want ErrCodeExpired", err)
	}
	// An expired pending row is cleared so the email can start over.
	if len(pendingRepo.deletes) != 1 {
		t.Error("expired pending row should be deleted")
	}
}

func TestRegistrationService_Verify_TooManyAttempts(t *testing.T) {
	pendingRepo := &mockPendingRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.PendingRegistration, error) {
			return &model.PendingRegistration{
				Email:     email,
				CodeHash:  hashToken("123456"),
				ExpiresAt: time.Now().Add(5 * time.Minute),
				Attempts:  model.MaxVerifyAttempts,
			}, nil
		},
	}
	svc := newTestRegistrationService(&mockUserRepository{}, pendingRepo, &mockMailer{})

	_, _, err := svc.Verify(context.Background(), model.VerifyRequest{Email: "locked@example.com", Code: "123456"})
	if !errors.Is(err, model.ErrTooManyAttempts) {
		t.Errorf("err = %v, want ErrTooManyAttempts", err)
	}
}

func TestRegistrationService_Verify_WrongCode(t *testing.T) {
	pendingRepo := &mockPendingRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.PendingRegistration, error) {
			return &model.PendingRegistration{
				Email:     email,
				CodeHash:  hashToken("123456"),
				ExpiresAt: time.Now().Add(5 * time.Minute),
				Attempts:  1,
			}, nil
		},
	}
	svc := newTestRegistrationService(&mockUserRepository{}, pendingRepo, &mockMailer{})

	_, _, err := svc.Verify(context.Background(), model.VerifyRequest{Email: "guess@example.com", Code: "000000"})
	if !errors.Is(err, model.ErrInvalidCode) {
		t.Fatalf("err = %v, want ErrInvalidCode", err)
	}
	if len(pendingRepo.increments) != 1 {
		t.Error("a wrong code should count as an attempt")
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateVerificationCode()
		if err != nil {
			t.Fatalf("generateVerificationCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		if code[0] == '0' {
			t.Fatalf("code %q has a leading zero; range starts at 100000", code)
		}
	}
}

// extractCode pulls the 6-digit code out of the email body.
func extractCode(t *testing.T, body string) string {
	t.Helper()
	for _, word := range strings.Fields(body) {
		trimmed := strings.TrimRight(word, ".")
		if len(trimmed) == 6 && strings.IndexFunc(trimmed, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			return trimmed
		}
	}
	t.Fatalf("no code found in body %q", body)
	return ""
}
