package model

import (
	"errors"
	"time"
)

// Photo is a submission to a challenge.
type Photo struct {
	ID          int64     `db:"id" json:"id"`
	ChallengeID int64     `db:"challenge_id" json:"challengeId"`
	UserID      int64     `db:"user_id" json:"userId"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	ImageKey    *string   `db:"image_key" json:"-"`
	Caption     *string   `db:"caption" json:"caption"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// PhotoView is the enriched photo shape returned by the API: rating
// aggregates reflect distinct raters only (one rating per user per photo).
type PhotoView struct {
	ID          int64     `db:"id" json:"id"`
	ChallengeID int64     `db:"challenge_id" json:"challengeId"`
	UserID      int64     `db:"user_id" json:"userId"`
	UserEmail   string    `db:"user_email" json:"userEmail"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	Caption     string    `db:"caption" json:"caption"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	AvgRating   float64   `db:"avg_rating" json:"avgRating"`
	RatingCount int       `db:"rating_count" json:"ratingCount"`

	// ChallengeTitle is joined in for the per-user photo listings.
	ChallengeTitle *string `db:"challenge_title" json:"challengeTitle,omitempty"`
}

// Rating is a (user, photo)-unique score with upsert semantics.
type Rating struct {
	ID        int64     `db:"id" json:"id"`
	PhotoID   int64     `db:"photo_id" json:"photoId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Value     int       `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// RateRequest is the request body for POST /photos/{id}/ratings.
type RateRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

// RatingStats is the recomputed aggregate returned after rating a photo.
type RatingStats struct {
	AvgRating   float64 `db:"avg_rating" json:"avgRating"`
	RatingCount int     `db:"rating_count" json:"ratingCount"`
}

var (
	// ErrPhotoNotFound is returned when a photo id does not resolve
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrNotPhotoOwner is returned when the caller does not own the photo
	ErrNotPhotoOwner = errors.New("not the owner of this photo")

	// ErrPhotoFileRequired is returned when the upload is missing its file part
	ErrPhotoFileRequired = errors.New("photo file required")
)
