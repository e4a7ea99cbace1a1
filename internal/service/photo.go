package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// PhotoService covers challenge submissions and their ratings.
type PhotoService struct {
	tx            txRunner
	photoRepo     repository.PhotoRepository
	challengeRepo repository.ChallengeRepository
	ratingRepo    repository.RatingRepository
	commentRepo   repository.CommentRepository
	blobs         blobDeleter
}

func NewPhotoService(
	tx txRunner,
	photoRepo repository.PhotoRepository,
	challengeRepo repository.ChallengeRepository,
	ratingRepo repository.RatingRepository,
	commentRepo repository.CommentRepository,
	blobs blobDeleter,
) *PhotoService {
	return &PhotoService{
		tx:            tx,
		photoRepo:     photoRepo,
		challengeRepo: challengeRepo,
		ratingRepo:    ratingRepo,
		commentRepo:   commentRepo,
		blobs:         blobs,
	}
}

// Upload records a submission to a challenge. The image has already been
// stored; this only writes the row.
func (s *PhotoService) Upload(ctx context.Context, challengeID, userID int64, upload *model.UploadResult, caption string) (*model.PhotoView, error) {
	if _, err := s.challengeRepo.GetCreatorID(ctx, challengeID); err != nil {
		return nil, err
	}

	photo := &model.Photo{
		ChallengeID: challengeID,
		UserID:      userID,
		ImageURL:    upload.URL,
		ImageKey:    &upload.Key,
	}
	if c := strings.TrimSpace(caption); c != "" {
		photo.Caption = &c
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}
	return s.photoRepo.GetView(ctx, photo.ID)
}

func (s *PhotoService) Get(ctx context.Context, id int64) (*model.PhotoView, error) {
	return s.photoRepo.GetView(ctx, id)
}

func (s *PhotoService) ListByChallenge(ctx context.Context, challengeID int64) ([]model.PhotoView, error) {
	if _, err := s.challengeRepo.GetCreatorID(ctx, challengeID); err != nil {
		return nil, err
	}
	return s.photoRepo.ListViewsByChallenge(ctx, challengeID)
}

func (s *PhotoService) ListByUser(ctx context.Context, userID int64) ([]model.PhotoView, error) {
	return s.photoRepo.ListViewsByUser(ctx, userID)
}

// Rate records a 1-5 score. Rating the same photo again replaces the caller's
// previous score rather than adding a second one. Returns the fresh aggregate.
func (s *PhotoService) Rate(ctx context.Context, photoID, userID int64, value int) (*model.RatingStats, error) {
	if _, err := s.photoRepo.GetByID(ctx, photoID); err != nil {
		return nil, err
	}

	if err := s.ratingRepo.Upsert(ctx, photoID, userID, value); err != nil {
		return nil, err
	}
	return s.ratingRepo.Stats(ctx, photoID)
}

// Delete removes the photo with its ratings and comments in one transaction;
// only the uploader may delete.
func (s *PhotoService) Delete(ctx context.Context, photoID, userID int64) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return model.ErrNotPhotoOwner
	}

	err = s.tx.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.ratingRepo.DeleteByPhoto(ctx, tx, photoID); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByPhoto(ctx, tx, photoID); err != nil {
			return err
		}
		return s.photoRepo.DeleteTx(ctx, tx, photoID)
	})
	if err != nil {
		return err
	}

	if photo.ImageKey != nil {
		deleteBlobs(ctx, s.blobs, "PhotoService", []string{*photo.ImageKey})
	}
	return nil
}
