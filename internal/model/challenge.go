package model

import (
	"errors"
	"time"
)

// Challenge is a themed collection users submit photos to.
type Challenge struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	CoverURL    *string   `db:"cover_url" json:"coverUrl"`
	CoverKey    *string   `db:"cover_key" json:"-"`
	CreatorID   int64     `db:"creator_id" json:"creatorId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	// Joined fields
	Creator    *PublicUser `json:"creator,omitempty"`
	PhotoCount int         `db:"photo_count" json:"photoCount"`
}

// UpdateChallengeRequest is the request body for PUT /challenges/{id}.
// Nil fields are left unchanged.
type UpdateChallengeRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

var (
	// ErrChallengeNotFound is returned when a challenge id does not resolve
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrNotChallengeOwner is returned when the caller did not create the challenge
	ErrNotChallengeOwner = errors.New("not the creator of this challenge")

	// ErrTitleRequired is returned when a challenge title is empty after trimming
	ErrTitleRequired = errors.New("title required")
)
