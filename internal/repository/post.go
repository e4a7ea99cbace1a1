package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fotofocus-backend/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postViewRow carries the author join and counters alongside post columns.
type postViewRow struct {
	model.Post
	LikeCount       int     `db:"like_count"`
	CommentCount    int     `db:"comment_count"`
	AuthorEmail     string  `db:"author_email"`
	AuthorName      *string `db:"author_name"`
	AuthorAvatarURL *string `db:"author_avatar_url"`
}

func (row *postViewRow) toView() model.PostView {
	return model.PostView{
		Post: row.Post,
		User: model.PublicUser{
			ID:        row.UserID,
			Email:     row.AuthorEmail,
			Name:      row.AuthorName,
			AvatarURL: row.AuthorAvatarURL,
		},
		LikeCount:    row.LikeCount,
		CommentCount: row.CommentCount,
	}
}

const postViewSelect = `
	SELECT p.id, p.user_id, p.text, p.image_url, p.image_key, p.created_at,
	       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
	       (SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id) AS comment_count,
	       u.email AS author_email, u.name AS author_name, u.avatar_url AS author_avatar_url
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

func (r *postRepository) Create(ctx context.Context, userID int64, text, imageURL, imageKey *string) (*model.Post, error) {
	query := `
		INSERT INTO posts (user_id, text, image_url, image_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, text, image_url, image_key, created_at
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, userID, text, imageURL, imageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT id, user_id, text, image_url, image_key, created_at
		FROM posts
		WHERE id = $1
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) GetView(ctx context.Context, id int64) (*model.PostView, error) {
	var row postViewRow
	err := r.db.GetContext(ctx, &row, postViewSelect+` WHERE p.id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post view: %w", err)
	}
	view := row.toView()
	return &view, nil
}

// ListFeed returns the newest posts, optionally continuing past an id cursor.
func (r *postRepository) ListFeed(ctx context.Context, take int, cursor *int64) ([]model.PostView, error) {
	var rows []postViewRow
	var err error
	if cursor != nil {
		err = r.db.SelectContext(ctx, &rows,
			postViewSelect+` WHERE p.id < $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2`, *cursor, take)
	} else {
		err = r.db.SelectContext(ctx, &rows,
			postViewSelect+` ORDER BY p.created_at DESC, p.id DESC LIMIT $1`, take)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}

	views := make([]model.PostView, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}
	return views, nil
}

func (r *postRepository) ListByUser(ctx context.Context, authorID int64) ([]model.PostView, error) {
	var rows []postViewRow
	err := r.db.SelectContext(ctx, &rows,
		postViewSelect+` WHERE p.user_id = $1 ORDER BY p.created_at DESC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}

	views := make([]model.PostView, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}
	return views, nil
}

func (r *postRepository) ListLikedBy(ctx context.Context, userID int64) ([]model.PostView, error) {
	var rows []postViewRow
	err := r.db.SelectContext(ctx, &rows,
		postViewSelect+`
		WHERE EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id = $1)
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked posts: %w", err)
	}

	views := make([]model.PostView, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}
	return views, nil
}

func (r *postRepository) ImageKeysByUser(ctx context.Context, userID int64) ([]string, error) {
	var keys []string
	err := r.db.SelectContext(ctx, &keys,
		`SELECT image_key FROM posts WHERE user_id = $1 AND image_key IS NOT NULL`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select post image keys: %w", err)
	}
	return keys, nil
}

func (r *postRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete posts by user: %w", err)
	}
	return nil
}

// Like is idempotent: a duplicate like is swallowed by the unique pair.
func (r *postRepository) Like(ctx context.Context, postID, userID int64) error {
	query := `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

// Unlike is idempotent: unliking a post that was never liked is a no-op.
func (r *postRepository) Unlike(ctx context.Context, postID, userID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID); err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

func (r *postRepository) LikedSet(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool)
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []int64
	err := r.db.SelectContext(ctx, &ids,
		`SELECT post_id FROM post_likes WHERE user_id = $1 AND post_id = ANY($2)`, userID, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to check likes: %w", err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *postRepository) DeleteLikesByPost(ctx context.Context, tx *sqlx.Tx, postID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete likes by post: %w", err)
	}
	return nil
}

func (r *postRepository) DeleteLikesByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete likes by user: %w", err)
	}
	return nil
}

func (r *postRepository) DeleteLikesOnPostsOwnedBy(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	query := `
		DELETE FROM post_likes
		WHERE post_id IN (SELECT id FROM posts WHERE user_id = $1)
	`
	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete likes on user's posts: %w", err)
	}
	return nil
}
