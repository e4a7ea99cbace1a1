package model

import (
	"errors"
	"time"
)

// Follow is a directed edge from follower to followed user.
type Follow struct {
	ID          int64     `db:"id" json:"id"`
	FollowerID  int64     `db:"follower_id" json:"followerId"`
	FollowingID int64     `db:"following_id" json:"followingId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("cannot follow yourself")
