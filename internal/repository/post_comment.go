package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

type postCommentRepository struct {
	db *sqlx.DB
}

func NewPostCommentRepository(db *sqlx.DB) PostCommentRepository {
	return &postCommentRepository{db: db}
}

type postCommentRow struct {
	model.PostComment
	AuthorEmail     string  `db:"author_email"`
	AuthorName      *string `db:"author_name"`
	AuthorAvatarURL *string `db:"author_avatar_url"`
}

func (row *postCommentRow) toComment() model.PostComment {
	c := row.PostComment
	c.User = &model.PublicUser{
		ID:        c.UserID,
		Email:     row.AuthorEmail,
		Name:      row.AuthorName,
		AvatarURL: row.AuthorAvatarURL,
	}
	return c
}

func (r *postCommentRepository) Create(ctx context.Context, postID, userID int64, text string) (*model.PostComment, error) {
	query := `
		INSERT INTO post_comments (post_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, user_id, text, created_at
	`
	var comment model.PostComment
	err := r.db.GetContext(ctx, &comment, query, postID, userID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post comment: %w", err)
	}
	return &comment, nil
}

func (r *postCommentRepository) GetByID(ctx context.Context, id int64) (*model.PostComment, error) {
	query := `
		SELECT id, post_id, user_id, text, created_at
		FROM post_comments
		WHERE id = $1
	`
	var comment model.PostComment
	err := r.db.GetContext(ctx, &comment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostCommentNotFound
		}
		return nil, fmt.Errorf("failed to get post comment: %w", err)
	}
	return &comment, nil
}

func (r *postCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.PostComment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.text, c.created_at,
		       u.email AS author_email, u.name AS author_name, u.avatar_url AS author_avatar_url
		FROM post_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
	`
	var rows []postCommentRow
	if err := r.db.SelectContext(ctx, &rows, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list post comments: %w", err)
	}

	comments := make([]model.PostComment, len(rows))
	for i := range rows {
		comments[i] = rows[i].toComment()
	}
	return comments, nil
}

func (r *postCommentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM post_comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete post comment: %w", err)
	}
	return nil
}

func (r *postCommentRepository) DeleteByPost(ctx context.Context, tx *sqlx.Tx, postID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete comments by post: %w", err)
	}
	return nil
}

func (r *postCommentRepository) DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_comments WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete comments by user: %w", err)
	}
	return nil
}

func (r *postCommentRepository) DeleteOnPostsOwnedBy(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	query := `
		DELETE FROM post_comments
		WHERE post_id IN (SELECT id FROM posts WHERE user_id = $1)
	`
	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete comments on user's posts: %w", err)
	}
	return nil
}
