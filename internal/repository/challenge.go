package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

type challengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

// challengeRow carries the creator join alongside the challenge columns.
type challengeRow struct {
	model.Challenge
	CreatorEmail     string  `db:"creator_email"`
	CreatorName      *string `db:"creator_name"`
	CreatorAvatarURL *string `db:"creator_avatar_url"`
}

func (row *challengeRow) toChallenge() model.Challenge {
	c := row.Challenge
	c.Creator = &model.PublicUser{
		ID:        c.CreatorID,
		Email:     row.CreatorEmail,
		Name:      row.CreatorName,
		AvatarURL: row.CreatorAvatarURL,
	}
	return c
}

const challengeSelect = `
	SELECT c.id, c.title, c.description, c.cover_url, c.cover_key, c.creator_id, c.created_at,
	       (SELECT COUNT(*) FROM photos p WHERE p.challenge_id = c.id) AS photo_count,
	       u.email AS creator_email, u.name AS creator_name, u.avatar_url AS creator_avatar_url
	FROM challenges c
	JOIN users u ON u.id = c.creator_id
`

func (r *challengeRepository) Create(ctx context.Context, challenge *model.Challenge) error {
	query := `
		INSERT INTO challenges (title, description, cover_url, cover_key, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		challenge.Title,
		challenge.Description,
		challenge.CoverURL,
		challenge.CoverKey,
		challenge.CreatorID,
	)
	if err := row.Scan(&challenge.ID, &challenge.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert challenge: %w", err)
	}
	return nil
}

func (r *challengeRepository) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	var row challengeRow
	err := r.db.GetContext(ctx, &row, challengeSelect+` WHERE c.id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	c := row.toChallenge()
	return &c, nil
}

func (r *challengeRepository) GetCreatorID(ctx context.Context, id int64) (int64, error) {
	var creatorID int64
	err := r.db.GetContext(ctx, &creatorID, `SELECT creator_id FROM challenges WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, model.ErrChallengeNotFound
		}
		return 0, fmt.Errorf("failed to get challenge creator: %w", err)
	}
	return creatorID, nil
}

func (r *challengeRepository) List(ctx context.Context) ([]model.Challenge, error) {
	var rows []challengeRow
	err := r.db.SelectContext(ctx, &rows, challengeSelect+` ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	challenges := make([]model.Challenge, len(rows))
	for i := range rows {
		challenges[i] = rows[i].toChallenge()
	}
	return challenges, nil
}

func (r *challengeRepository) ListByCreator(ctx context.Context, creatorID int64) ([]model.Challenge, error) {
	var rows []challengeRow
	err := r.db.SelectContext(ctx, &rows, challengeSelect+` WHERE c.creator_id = $1 ORDER BY c.created_at DESC`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges by creator: %w", err)
	}

	challenges := make([]model.Challenge, len(rows))
	for i := range rows {
		challenges[i] = rows[i].toChallenge()
	}
	return challenges, nil
}

// Update applies the non-nil fields only.
func (r *challengeRepository) Update(ctx context.Context, id int64, req model.UpdateChallengeRequest) (*model.Challenge, error) {
	query := `
		UPDATE challenges
		SET title       = COALESCE($1, title),
		    description = COALESCE($2, description)
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, req.Title, req.Description, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, model.ErrChallengeNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *challengeRepository) CoverKeysByCreator(ctx context.Context, creatorID int64) ([]string, error) {
	var keys []string
	query := `SELECT cover_key FROM challenges WHERE creator_id = $1 AND cover_key IS NOT NULL`
	if err := r.db.SelectContext(ctx, &keys, query, creatorID); err != nil {
		return nil, fmt.Errorf("failed to select cover keys: %w", err)
	}
	return keys, nil
}

func (r *challengeRepository) IDsByCreator(ctx context.Context, tx *sqlx.Tx, creatorID int64) ([]int64, error) {
	var ids []int64
	err := tx.SelectContext(ctx, &ids, `SELECT id FROM challenges WHERE creator_id = $1`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to select challenge ids: %w", err)
	}
	return ids, nil
}

func (r *challengeRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrChallengeNotFound
	}
	return nil
}

func (r *challengeRepository) DeleteByCreator(ctx context.Context, tx *sqlx.Tx, creatorID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM challenges WHERE creator_id = $1`, creatorID); err != nil {
		return fmt.Errorf("failed to delete challenges by creator: %w", err)
	}
	return nil
}
