package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fotofocus-backend/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// commentRow carries the author join alongside the comment columns.
type commentRow struct {
	model.Comment
	AuthorEmail     string  `db:"author_email"`
	AuthorName      *string `db:"author_name"`
	AuthorAvatarURL *string `db:"author_avatar_url"`
}

func (row *commentRow) toComment() model.Comment {
	c := row.Comment
	c.User = &model.PublicUser{
		ID:        c.UserID,
		Email:     row.AuthorEmail,
		Name:      row.AuthorName,
		AvatarURL: row.AuthorAvatarURL,
	}
	return c
}

const commentSelect = `
	SELECT c.id, c.photo_id, c.user_id, c.text, c.parent_id, c.created_at,
	       u.email AS author_email, u.name AS author_name, u.avatar_url AS author_avatar_url
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

func (r *commentRepository) Create(ctx context.Context, photoID, userID int64, text string, parentID *int64) (*model.Comment, error) {
	query := `
		INSERT INTO comments (photo_id, user_id, text, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, photo_id, user_id, text, parent_id, created_at
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, photoID, userID, text, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	query := `
		SELECT id, photo_id, user_id, text, parent_id, created_at
		FROM comments
		WHERE id = $1
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// ListThreads returns top-level comments oldest first, each with its direct
// replies attached.
func (r *commentRepository) ListThreads(ctx context.Context, photoID int64) ([]model.CommentThread, error) {
	var topRows []commentRow
	err := r.db.SelectContext(ctx, &topRows,
		commentSelect+` WHERE c.photo_id = $1 AND c.parent_id IS NULL ORDER BY c.created_at ASC`, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	var replyRows []commentRow
	err = r.db.SelectContext(ctx, &replyRows,
		commentSelect+` WHERE c.photo_id = $1 AND c.parent_id IS NOT NULL ORDER BY c.created_at ASC`, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	repliesByParent := make(map[int64][]model.Comment)
	for i := range replyRows {
		reply := replyRows[i].toComment()
		repliesByParent[*reply.ParentID] = append(repliesByParent[*reply.ParentID], reply)
	}

	threads := make([]model.CommentThread, len(topRows))
	for i := range topRows {
		top := topRows[i].toComment()
		replies := repliesByParent[top.ID]
		if replies == nil {
			replies = []model.Comment{}
		}
		threads[i] = model.CommentThread{Comment: top, Replies: replies}
	}
	return threads, nil
}

// DeleteWithReplies removes direct replies first, then the comment itself.
func (r *commentRepository) DeleteWithReplies(ctx context.Context, tx *sqlx.Tx, commentID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE parent_id = $1`, commentID); err != nil {
		return fmt.Errorf("failed to delete replies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (r *commentRepository) DeleteByPhoto(ctx context.Context, tx *sqlx.Tx, photoID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE photo_id = $1`, photoID); err != nil {
		return fmt.Errorf("failed to delete comments by photo: %w", err)
	}
	return nil
}

func (r *commentRepository) DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error {
	query := `
		DELETE FROM comments
		WHERE photo_id IN (SELECT id FROM photos WHERE challenge_id = $1)
	`
	if _, err := tx.ExecContext(ctx, query, challengeID); err != nil {
		return fmt.Errorf("failed to delete comments by challenge: %w", err)
	}
	return nil
}

func (r *commentRepository) DeleteByPhotoIDs(ctx context.Context, tx *sqlx.Tx, photoIDs []int64) error {
	if len(photoIDs) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE photo_id = ANY($1)`, pq.Array(photoIDs)); err != nil {
		return fmt.Errorf("failed to delete comments by photo ids: %w", err)
	}
	return nil
}

// DeleteAuthoredClosure removes every comment the user authored and the full
// transitive closure of replies beneath them. Depth is clamped to one level at
// write time, but the traversal stays correct if that ever changes.
func (r *commentRepository) DeleteAuthoredClosure(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	query := `
		WITH RECURSIVE to_delete AS (
			SELECT id FROM comments WHERE user_id = $1
			UNION
			SELECT c.id
			FROM comments c
			JOIN to_delete td ON c.parent_id = td.id
		)
		DELETE FROM comments
		WHERE id IN (SELECT id FROM to_delete)
	`
	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete authored comment closure: %w", err)
	}
	return nil
}
