package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

// Methods taking a *sqlx.Tx participate in a caller-owned transaction; the
// cascade deletion paths rely on this so that a partial failure rolls back
// every dependent row at once.

type UserRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, email, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateName(ctx context.Context, id int64, name *string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL, avatarKey string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, tx *sqlx.Tx, id int64, passwordHash string) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	GetStats(ctx context.Context, userID int64) (*model.UserStats, error)
}

type PendingRegistrationRepository interface {
	Upsert(ctx context.Context, pending *model.PendingRegistration) error
	GetByEmail(ctx context.Context, email string) (*model.PendingRegistration, error)
	IncrementAttempts(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, email string) error
}

type PasswordResetRepository interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	GetByHash(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error)
	Delete(ctx context.Context, tx *sqlx.Tx, tokenHash string) error
	DeleteByHash(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error
}

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *model.Challenge) error
	GetByID(ctx context.Context, id int64) (*model.Challenge, error)
	GetCreatorID(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]model.Challenge, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.Challenge, error)
	Update(ctx context.Context, id int64, req model.UpdateChallengeRequest) (*model.Challenge, error)
	CoverKeysByCreator(ctx context.Context, creatorID int64) ([]string, error)
	IDsByCreator(ctx context.Context, tx *sqlx.Tx, creatorID int64) ([]int64, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error
	DeleteByCreator(ctx context.Context, tx *sqlx.Tx, creatorID int64) error
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
	GetByID(ctx context.Context, id int64) (*model.Photo, error)
	GetView(ctx context.Context, id int64) (*model.PhotoView, error)
	ListViewsByChallenge(ctx context.Context, challengeID int64) ([]model.PhotoView, error)
	ListViewsByUser(ctx context.Context, userID int64) ([]model.PhotoView, error)
	ImageKeysByChallenge(ctx context.Context, challengeID int64) ([]string, error)
	ImageKeysForUserCascade(ctx context.Context, userID int64) ([]string, error)
	IDsForUserCascade(ctx context.Context, tx *sqlx.Tx, userID int64, challengeIDs []int64) ([]int64, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error
	DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error
	DeleteByIDs(ctx context.Context, tx *sqlx.Tx, ids []int64) error
}

type RatingRepository interface {
	Upsert(ctx context.Context, photoID, userID int64, value int) error
	Stats(ctx context.Context, photoID int64) (*model.RatingStats, error)
	DeleteByPhoto(ctx context.Context, tx *sqlx.Tx, photoID int64) error
	DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error
	DeleteForUserCascade(ctx context.Context, tx *sqlx.Tx, userID int64, photoIDs []int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, photoID, userID int64, text string, parentID *int64) (*model.Comment, error)
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	ListThreads(ctx context.Context, photoID int64) ([]model.CommentThread, error)
	DeleteWithReplies(ctx context.Context, tx *sqlx.Tx, commentID int64) error
	DeleteByPhoto(ctx context.Context, tx *sqlx.Tx, photoID int64) error
	DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error
	DeleteByPhotoIDs(ctx context.Context, tx *sqlx.Tx, photoIDs []int64) error
	// DeleteAuthoredClosure removes every comment authored by the user plus
	// the transitive closure of replies beneath them.
	DeleteAuthoredClosure(ctx context.Context, tx *sqlx.Tx, userID int64) error
}

type PostRepository interface {
	Create(ctx context.Context, userID int64, text, imageURL, imageKey *string) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetView(ctx context.Context, id int64) (*model.PostView, error)
	ListFeed(ctx context.Context, take int, cursor *int64) ([]model.PostView, error)
	ListByUser(ctx context.Context, authorID int64) ([]model.PostView, error)
	ListLikedBy(ctx context.Context, userID int64) ([]model.PostView, error)
	ImageKeysByUser(ctx context.Context, userID int64) ([]string, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error
	DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error
	// Likes
	Like(ctx context.Context, postID, userID int64) error
	Unlike(ctx context.Context, postID, userID int64) error
	LikedSet(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
	DeleteLikesByPost(ctx context.Context, tx *sqlx.Tx, postID int64) error
	DeleteLikesByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error
	DeleteLikesOnPostsOwnedBy(ctx context.Context, tx *sqlx.Tx, userID int64) error
}

type PostCommentRepository interface {
	Create(ctx context.Context, postID, userID int64, text string) (*model.PostComment, error)
	GetByID(ctx context.Context, id int64) (*model.PostComment, error)
	ListByPost(ctx context.Context, postID int64) ([]model.PostComment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByPost(ctx context.Context, tx *sqlx.Tx, postID int64) error
	DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error
	DeleteOnPostsOwnedBy(ctx context.Context, tx *sqlx.Tx, userID int64) error
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID int64) error
	Delete(ctx context.Context, followerID, followingID int64) error
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	Followers(ctx context.Context, userID int64) ([]model.PublicUser, error)
	Following(ctx context.Context, userID int64) ([]model.PublicUser, error)
	DeleteAllForUser(ctx context.Context, tx *sqlx.Tx, userID int64) error
}

type LessonRepository interface {
	List(ctx context.Context) ([]model.Lesson, error)
	GetByID(ctx context.Context, id int64) (*model.Lesson, error)
	Seed(ctx context.Context, lessons []model.Lesson) error
}
