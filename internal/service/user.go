package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// blobDeleter is the slice of MediaService the cleanup paths need.
type blobDeleter interface {
	DeleteObject(ctx context.Context, key string) error
}

// deleteBlobs removes stored objects after a successful commit. Failures are
// logged and swallowed: the rows are already gone and orphaned objects are
// harmless.
func deleteBlobs(ctx context.Context, blobs blobDeleter, tag string, keys []string) {
	if blobs == nil {
		return
	}
	for _, key := range keys {
		if err := blobs.DeleteObject(ctx, key); err != nil {
			log.Printf("[%s] failed to delete blob %s: %v", tag, key, err)
		}
	}
}

// UserService handles login, profiles, and full account deletion.
type UserService struct {
	tx            txRunner
	userRepo      repository.UserRepository
	resetRepo     repository.PasswordResetRepository
	challengeRepo repository.ChallengeRepository
	photoRepo     repository.PhotoRepository
	ratingRepo    repository.RatingRepository
	commentRepo   repository.CommentRepository
	postRepo      repository.PostRepository
	postCmtRepo   repository.PostCommentRepository
	followRepo    repository.FollowRepository
	tokens        *TokenService
	blobs         blobDeleter
}

func NewUserService(
	tx txRunner,
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	challengeRepo repository.ChallengeRepository,
	photoRepo repository.PhotoRepository,
	ratingRepo repository.RatingRepository,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	postCmtRepo repository.PostCommentRepository,
	followRepo repository.FollowRepository,
	tokens *TokenService,
	blobs blobDeleter,
) *UserService {
	return &UserService{
		tx:            tx,
		userRepo:      userRepo,
		resetRepo:     resetRepo,
		challengeRepo: challengeRepo,
		photoRepo:     photoRepo,
		ratingRepo:    ratingRepo,
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		postCmtRepo:   postCmtRepo,
		followRepo:    followRepo,
		tokens:        tokens,
		blobs:         blobs,
	}
}

// Login checks the credentials and issues a bearer token. Unknown email and
// wrong password both come back as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	email := strings.TrimSpace(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, "", model.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile sets the display name; an empty string clears it.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error) {
	name := req.Name
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			name = nil
		} else {
			name = &trimmed
		}
	}
	return s.userRepo.UpdateName(ctx, userID, name)
}

// UpdateAvatar swaps in the freshly uploaded avatar and drops the old blob.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, upload *model.UploadResult) (*model.User, error) {
	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateAvatar(ctx, userID, upload.URL, upload.Key)
	if err != nil {
		return nil, err
	}

	if current.AvatarKey != nil {
		deleteBlobs(ctx, s.blobs, "UserService", []string{*current.AvatarKey})
	}
	return user, nil
}

// GetStats returns profile counters; when a viewer is supplied the response
// also says whether the viewer follows the profile.
func (s *UserService) GetStats(ctx context.Context, userID int64, viewerID *int64) (*model.UserStats, error) {
	stats, err := s.userRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	if viewerID != nil && *viewerID != userID {
		following, err := s.followRepo.Exists(ctx, *viewerID, userID)
		if err != nil {
			return nil, err
		}
		stats.IsFollowing = following
	}
	return stats, nil
}

// DeleteAccount removes the user and everything hanging off the account in a
// single transaction: ratings and comments on affected photos, the photos
// themselves (own uploads plus everything in the user's challenges), posts
// with their likes and comments, follow edges, challenges, outstanding
// password reset tokens, and finally the user row. Stored objects are
// cleaned up after the commit.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	// Collect blob keys up front; the rows are unreadable after the commit.
	photoKeys, err := s.photoRepo.ImageKeysForUserCascade(ctx, userID)
	if err != nil {
		return err
	}
	postKeys, err := s.postRepo.ImageKeysByUser(ctx, userID)
	if err != nil {
		return err
	}
	coverKeys, err := s.challengeRepo.CoverKeysByCreator(ctx, userID)
	if err != nil {
		return err
	}

	err = s.tx.InTx(ctx, func(tx *sqlx.Tx) error {
		challengeIDs, err := s.challengeRepo.IDsByCreator(ctx, tx, userID)
		if err != nil {
			return err
		}
		photoIDs, err := s.photoRepo.IDsForUserCascade(ctx, tx, userID, challengeIDs)
		if err != nil {
			return err
		}

		if err := s.ratingRepo.DeleteForUserCascade(ctx, tx, userID, photoIDs); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByPhotoIDs(ctx, tx, photoIDs); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteAuthoredClosure(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.photoRepo.DeleteByIDs(ctx, tx, photoIDs); err != nil {
			return err
		}
		if err := s.postRepo.DeleteLikesByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.postCmtRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.postRepo.DeleteLikesOnPostsOwnedBy(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.postCmtRepo.DeleteOnPostsOwnedBy(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.postRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.followRepo.DeleteAllForUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.challengeRepo.DeleteByCreator(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.resetRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, tx, userID)
	})
	if err != nil {
		return err
	}

	keys := append(append(photoKeys, postKeys...), coverKeys...)
	if user.AvatarKey != nil {
		keys = append(keys, *user.AvatarKey)
	}
	deleteBlobs(ctx, s.blobs, "UserService", keys)

	return nil
}
