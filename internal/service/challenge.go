package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// ChallengeService owns the challenge lifecycle, including tearing one down
// with all its photos, ratings, and comments.
type ChallengeService struct {
	tx            txRunner
	challengeRepo repository.ChallengeRepository
	photoRepo     repository.PhotoRepository
	ratingRepo    repository.RatingRepository
	commentRepo   repository.CommentRepository
	blobs         blobDeleter
}

func NewChallengeService(
	tx txRunner,
	challengeRepo repository.ChallengeRepository,
	photoRepo repository.PhotoRepository,
	ratingRepo repository.RatingRepository,
	commentRepo repository.CommentRepository,
	blobs blobDeleter,
) *ChallengeService {
	return &ChallengeService{
		tx:            tx,
		challengeRepo: challengeRepo,
		photoRepo:     photoRepo,
		ratingRepo:    ratingRepo,
		commentRepo:   commentRepo,
		blobs:         blobs,
	}
}

func (s *ChallengeService) Create(ctx context.Context, creatorID int64, title, description string, cover *model.UploadResult) (*model.Challenge, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.ErrTitleRequired
	}

	challenge := &model.Challenge{
		Title:     title,
		CreatorID: creatorID,
	}
	if d := strings.TrimSpace(description); d != "" {
		challenge.Description = &d
	}
	if cover != nil {
		challenge.CoverURL = &cover.URL
		challenge.CoverKey = &cover.Key
	}

	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, err
	}
	return s.challengeRepo.GetByID(ctx, challenge.ID)
}

func (s *ChallengeService) Get(ctx context.Context, id int64) (*model.Challenge, error) {
	return s.challengeRepo.GetByID(ctx, id)
}

func (s *ChallengeService) List(ctx context.Context) ([]model.Challenge, error) {
	return s.challengeRepo.List(ctx)
}

func (s *ChallengeService) ListByCreator(ctx context.Context, creatorID int64) ([]model.Challenge, error) {
	return s.challengeRepo.ListByCreator(ctx, creatorID)
}

// Update applies a partial edit; only the creator may edit.
func (s *ChallengeService) Update(ctx context.Context, id, userID int64, req model.UpdateChallengeRequest) (*model.Challenge, error) {
	creatorID, err := s.challengeRepo.GetCreatorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if creatorID != userID {
		return nil, model.ErrNotChallengeOwner
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, model.ErrTitleRequired
		}
		req.Title = &trimmed
	}

	return s.challengeRepo.Update(ctx, id, req)
}

// Delete removes the challenge and, in the same transaction, every photo in
// it along with those photos' ratings and comments.
func (s *ChallengeService) Delete(ctx context.Context, id, userID int64) error {
	challenge, err := s.challengeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if challenge.CreatorID != userID {
		return model.ErrNotChallengeOwner
	}

	photoKeys, err := s.photoRepo.ImageKeysByChallenge(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.ratingRepo.DeleteByChallenge(ctx, tx, id); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByChallenge(ctx, tx, id); err != nil {
			return err
		}
		if err := s.photoRepo.DeleteByChallenge(ctx, tx, id); err != nil {
			return err
		}
		return s.challengeRepo.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	keys := photoKeys
	if challenge.CoverKey != nil {
		keys = append(keys, *challenge.CoverKey)
	}
	deleteBlobs(ctx, s.blobs, "ChallengeService", keys)

	return nil
}
