package model

import (
	"errors"
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         *string   `db:"name" json:"name"`
	AvatarURL    *string   `db:"avatar_url" json:"avatarUrl"`
	AvatarKey    *string   `db:"avatar_key" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// PublicUser is the safe subset of User embedded in other responses.
type PublicUser struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      *string   `db:"name" json:"name"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Public returns the safe view of a user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	UserID int64
	Email  string
}

// LoginRequest is the request body for /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the request body for PUT /me.
type UpdateProfileRequest struct {
	Name *string `json:"name"`
}

// UserStats aggregates profile counters for the stats endpoints.
type UserStats struct {
	PhotoCount        int     `json:"photoCount"`
	ChallengeCount    int     `json:"challengeCount"`
	FollowersCount    int     `json:"followersCount"`
	FollowingCount    int     `json:"followingCount"`
	AvgRatingReceived float64 `json:"avgRatingReceived"`
	RatingCount       int     `json:"ratingCount"`
	IsFollowing       bool    `json:"isFollowing"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when the email is already registered
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a bearer token fails verification
	ErrInvalidToken = errors.New("invalid token")
)
