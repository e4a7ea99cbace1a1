package model

import "errors"

// Lesson is a seeded photography lesson, ordered by Order.
type Lesson struct {
	ID       int64  `db:"id" json:"id"`
	Slug     string `db:"slug" json:"slug"`
	Title    string `db:"title" json:"title"`
	Body     string `db:"body" json:"body"`
	ImageURL string `db:"image_url" json:"imageUrl"`
	Order    int    `db:"ord" json:"order"`
}

// ErrLessonNotFound is returned when a lesson id does not resolve.
var ErrLessonNotFound = errors.New("lesson not found")
