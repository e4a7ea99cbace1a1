package model

import (
	"errors"
	"time"
)

// Post is a generic feed entry: text, an image, or both.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Text      *string   `db:"text" json:"text"`
	ImageURL  *string   `db:"image_url" json:"imageUrl"`
	ImageKey  *string   `db:"image_key" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// PostView is a post enriched with author, counters, and viewer state.
type PostView struct {
	Post
	User         PublicUser `json:"user"`
	LikeCount    int        `db:"like_count" json:"likeCount"`
	CommentCount int        `db:"comment_count" json:"commentCount"`
	LikedByMe    bool       `json:"likedByMe"`
}

// PostComment is a flat comment on a feed post (no nesting).
type PostComment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"postId"`
	UserID    int64     `db:"user_id" json:"-"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Joined field
	User *PublicUser `json:"user,omitempty"`
}

// CreatePostCommentRequest is the request body for POST /posts/{id}/comments.
type CreatePostCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Feed pagination limits
const (
	DefaultFeedPageSize = 20
	MaxFeedPageSize     = 50
)

var (
	// ErrPostNotFound is returned when a post id does not resolve
	ErrPostNotFound = errors.New("post not found")

	// ErrNotPostOwner is returned when the caller does not own the post
	ErrNotPostOwner = errors.New("not the owner of this post")

	// ErrEmptyPost is returned when a post has neither text nor image
	ErrEmptyPost = errors.New("post cannot be empty")

	// ErrPostCommentNotFound is returned when a post comment id does not resolve
	ErrPostCommentNotFound = errors.New("comment not found")

	// ErrNotAllowed is returned when the caller is neither comment author nor post owner
	ErrNotAllowed = errors.New("not allowed")
)
