package model

import (
	"errors"
	"time"
)

// Comment is a comment on a photo. ParentID, when set, always references a
// top-level comment: nesting is clamped to one level at write time.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PhotoID   int64     `db:"photo_id" json:"photoId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Text      string    `db:"text" json:"text"`
	ParentID  *int64    `db:"parent_id" json:"parentId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Joined field
	User *PublicUser `json:"user,omitempty"`
}

// CommentThread is a top-level comment with its direct replies.
type CommentThread struct {
	Comment
	Replies []Comment `json:"replies"`
}

// CreateCommentRequest is the request body for POST /photos/{id}/comments.
type CreateCommentRequest struct {
	Text     string `json:"text" validate:"required"`
	ParentID *int64 `json:"parentId"`
}

var (
	// ErrCommentNotFound is returned when a comment id does not resolve
	ErrCommentNotFound = errors.New("comment not found")

	// ErrEmptyComment is returned when the comment text is blank
	ErrEmptyComment = errors.New("comment text required")

	// ErrNotCommentOwner is returned when the caller did not author the comment
	ErrNotCommentOwner = errors.New("not the author of this comment")
)
