package service

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fotofocus-backend/internal/config"
	"fotofocus-backend/internal/model"
)

// TokenService signs and verifies the bearer tokens the API hands out.
type TokenService struct {
	secret []byte
	maxAge time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		maxAge: time.Duration(cfg.TokenMaxAgeSec) * time.Second,
	}
}

// Issue creates a signed token carrying the user's identity.
func (s *TokenService) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   now.Add(s.maxAge).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a token string and extracts the identity it carries.
// Any failure, including expiry, surfaces as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*model.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, model.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, model.ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	return &model.Identity{UserID: int64(sub), Email: email}, nil
}

// hashToken is the storage form for verification codes and reset tokens;
// the raw secret never touches the database.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
