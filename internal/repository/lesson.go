package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

type lessonRepository struct {
	db *sqlx.DB
}

func NewLessonRepository(db *sqlx.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) List(ctx context.Context) ([]model.Lesson, error) {
	query := `SELECT id, slug, title, body, image_url, ord FROM lessons ORDER BY ord ASC`
	lessons := []model.Lesson{}
	if err := r.db.SelectContext(ctx, &lessons, query); err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT id, slug, title, body, image_url, ord FROM lessons WHERE id = $1`
	var lesson model.Lesson
	err := r.db.GetContext(ctx, &lesson, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return &lesson, nil
}

// Seed inserts the default lessons, skipping slugs that already exist.
func (r *lessonRepository) Seed(ctx context.Context, lessons []model.Lesson) error {
	query := `
		INSERT INTO lessons (slug, title, body, image_url, ord)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO NOTHING
	`
	for _, lesson := range lessons {
		if _, err := r.db.ExecContext(ctx, query, lesson.Slug, lesson.Title, lesson.Body, lesson.ImageURL, lesson.Order); err != nil {
			return fmt.Errorf("failed to seed lesson %q: %w", lesson.Slug, err)
		}
	}
	return nil
}
