package service

import (
	"testing"

	"fotofocus-backend/internal/config"
	"fotofocus-backend/internal/model"
)

func testTokenService(secret string, maxAgeSec int) *TokenService {
	return NewTokenService(&config.Config{JWTSecret: secret, TokenMaxAgeSec: maxAgeSec})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := testTokenService("test-secret", 3600)

	token, err := svc.Issue(42, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	identity, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != 42 {
		t.Errorf("UserID = %d, want 42", identity.UserID)
	}
	if identity.Email != "user@example.com" {
		t.Errorf("Email = %q, want user@example.com", identity.Email)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	token, err := testTokenService("secret-a", 3600).Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := testTokenService("secret-b", 3600).Verify(token); err != model.ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := testTokenService("test-secret", -60)

	token, err := svc.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); err != model.ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := testTokenService("test-secret", 3600)

	for _, tokenString := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Verify(tokenString); err != model.ErrInvalidToken {
			t.Errorf("Verify(%q) err = %v, want ErrInvalidToken", tokenString, err)
		}
	}
}
