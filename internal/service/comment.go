package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// CommentService handles photo comment threads. Threads are one level deep:
// a reply to a reply is re-parented onto the top-level comment when written.
type CommentService struct {
	tx          txRunner
	commentRepo repository.CommentRepository
	photoRepo   repository.PhotoRepository
}

func NewCommentService(tx txRunner, commentRepo repository.CommentRepository, photoRepo repository.PhotoRepository) *CommentService {
	return &CommentService{
		tx:          tx,
		commentRepo: commentRepo,
		photoRepo:   photoRepo,
	}
}

func (s *CommentService) Create(ctx context.Context, photoID, userID int64, req model.CreateCommentRequest) (*model.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, model.ErrEmptyComment
	}

	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return nil, err
	}

	parentID := req.ParentID
	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PhotoID != photoID {
			return nil, model.ErrCommentNotFound
		}
		// Replying to a reply attaches to that reply's top-level parent.
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	return s.commentRepo.Create(ctx, photoID, userID, text, parentID)
}

func (s *CommentService) ListThreads(ctx context.Context, photoID int64) ([]model.CommentThread, error) {
	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListThreads(ctx, photoID)
}

// Delete removes the caller's comment; deleting a top-level comment takes its
// replies with it, in the same transaction.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return model.ErrNotCommentOwner
	}

	return s.tx.InTx(ctx, func(tx *sqlx.Tx) error {
		return s.commentRepo.DeleteWithReplies(ctx, tx, commentID)
	})
}
