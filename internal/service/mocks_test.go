package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
)

// Function-field mocks. Each test fills in only the methods it expects the
// service to call; anything else returns a zero value or a not-found error.

// mockTxRunner satisfies the transaction seam by handing the callback a nil
// tx; the repository mocks never touch it.
type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type mockUserRepository struct {
	createFn             func(ctx context.Context, tx *sqlx.Tx, email, passwordHash string) (*model.User, error)
	getByIDFn            func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn         func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn      func(ctx context.Context, email string) (bool, error)
	updateNameFn         func(ctx context.Context, id int64, name *string) (*model.User, error)
	updatePasswordHashFn func(ctx context.Context, tx *sqlx.Tx, id int64, passwordHash string) error
	deleteFn             func(ctx context.Context, tx *sqlx.Tx, id int64) error
	getStatsFn           func(ctx context.Context, userID int64) (*model.UserStats, error)
}

func (m *mockUserRepository) Create(ctx context.Context, tx *sqlx.Tx, email, passwordHash string) (*model.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, tx, email, passwordHash)
	}
	return &model.User{ID: 1, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateName(ctx context.Context, id int64, name *string) (*model.User, error) {
	if m.updateNameFn != nil {
		return m.updateNameFn(ctx, id, name)
	}
	return &model.User{ID: id, Name: name}, nil
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL, avatarKey string) (*model.User, error) {
	return &model.User{ID: id, AvatarURL: &avatarURL, AvatarKey: &avatarKey}, nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, tx *sqlx.Tx, id int64, passwordHash string) error {
	if m.updatePasswordHashFn != nil {
		return m.updatePasswordHashFn(ctx, tx, id, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}

func (m *mockUserRepository) GetStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	if m.getStatsFn != nil {
		return m.getStatsFn(ctx, userID)
	}
	return &model.UserStats{}, nil
}

type mockPendingRepository struct {
	upsertFn            func(ctx context.Context, pending *model.PendingRegistration) error
	getByEmailFn        func(ctx context.Context, email string) (*model.PendingRegistration, error)
	incrementAttemptsFn func(ctx context.Context, email string) error
	deleteFn            func(ctx context.Context, email string) error

	upserts    []*model.PendingRegistration
	increments []string
	deletes    []string
}

func (m *mockPendingRepository) Upsert(ctx context.Context, pending *model.PendingRegistration) error {
	m.upserts = append(m.upserts, pending)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, pending)
	}
	return nil
}

func (m *mockPendingRepository) GetByEmail(ctx context.Context, email string) (*model.PendingRegistration, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrPendingNotFound
}

func (m *mockPendingRepository) IncrementAttempts(ctx context.Context, email string) error {
	m.increments = append(m.increments, email)
	if m.incrementAttemptsFn != nil {
		return m.incrementAttemptsFn(ctx, email)
	}
	return nil
}

func (m *mockPendingRepository) Delete(ctx context.Context, email string) error {
	m.deletes = append(m.deletes, email)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, email)
	}
	return nil
}

func (m *mockPendingRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, email string) error {
	m.deletes = append(m.deletes, email)
	return nil
}

type mockResetRepository struct {
	createFn       func(ctx context.Context, token *model.PasswordResetToken) error
	getByHashFn    func(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error)
	deleteByUserFn func(ctx context.Context, tx *sqlx.Tx, userID int64) error

	creates     []*model.PasswordResetToken
	deletes     []string
	hashDeletes []string
	userDeletes []int64
}

func (m *mockResetRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	m.creates = append(m.creates, token)
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockResetRepository) GetByHash(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error) {
	if m.getByHashFn != nil {
		return m.getByHashFn(ctx, tokenHash)
	}
	return nil, model.ErrResetTokenInvalid
}

func (m *mockResetRepository) Delete(ctx context.Context, tx *sqlx.Tx, tokenHash string) error {
	m.deletes = append(m.deletes, tokenHash)
	return nil
}

func (m *mockResetRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	m.hashDeletes = append(m.hashDeletes, tokenHash)
	return nil
}

func (m *mockResetRepository) DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	m.userDeletes = append(m.userDeletes, userID)
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, tx, userID)
	}
	return nil
}

type mockChallengeRepository struct {
	getByIDFn      func(ctx context.Context, id int64) (*model.Challenge, error)
	getCreatorIDFn func(ctx context.Context, id int64) (int64, error)
}

func (m *mockChallengeRepository) Create(ctx context.Context, challenge *model.Challenge) error {
	return nil
}

func (m *mockChallengeRepository) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrChallengeNotFound
}

func (m *mockChallengeRepository) GetCreatorID(ctx context.Context, id int64) (int64, error) {
	if m.getCreatorIDFn != nil {
		return m.getCreatorIDFn(ctx, id)
	}
	return 0, model.ErrChallengeNotFound
}

func (m *mockChallengeRepository) List(ctx context.Context) ([]model.Challenge, error) {
	return nil, nil
}

func (m *mockChallengeRepository) ListByCreator(ctx context.Context, creatorID int64) ([]model.Challenge, error) {
	return nil, nil
}

func (m *mockChallengeRepository) Update(ctx context.Context, id int64, req model.UpdateChallengeRequest) (*model.Challenge, error) {
	return nil, model.ErrChallengeNotFound
}

func (m *mockChallengeRepository) CoverKeysByCreator(ctx context.Context, creatorID int64) ([]string, error) {
	return nil, nil
}

func (m *mockChallengeRepository) IDsByCreator(ctx context.Context, tx *sqlx.Tx, creatorID int64) ([]int64, error) {
	return nil, nil
}

func (m *mockChallengeRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	return nil
}

func (m *mockChallengeRepository) DeleteByCreator(ctx context.Context, tx *sqlx.Tx, creatorID int64) error {
	return nil
}

type mockRatingRepository struct{}

func (m *mockRatingRepository) Upsert(ctx context.Context, photoID, userID int64, value int) error {
	return nil
}

func (m *mockRatingRepository) Stats(ctx context.Context, photoID int64) (*model.RatingStats, error) {
	return &model.RatingStats{}, nil
}

func (m *mockRatingRepository) DeleteByPhoto(ctx context.Context, tx *sqlx.Tx, photoID int64) error {
	return nil
}

func (m *mockRatingRepository) DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error {
	return nil
}

func (m *mockRatingRepository) DeleteForUserCascade(ctx context.Context, tx *sqlx.Tx, userID int64, photoIDs []int64) error {
	return nil
}

type mockPhotoRepository struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Photo, error)
}

func (m *mockPhotoRepository) Create(ctx context.Context, photo *model.Photo) error { return nil }

func (m *mockPhotoRepository) GetByID(ctx context.Context, id int64) (*model.Photo, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPhotoNotFound
}

func (m *mockPhotoRepository) GetView(ctx context.Context, id int64) (*model.PhotoView, error) {
	return nil, model.ErrPhotoNotFound
}

func (m *mockPhotoRepository) ListViewsByChallenge(ctx context.Context, challengeID int64) ([]model.PhotoView, error) {
	return nil, nil
}

func (m *mockPhotoRepository) ListViewsByUser(ctx context.Context, userID int64) ([]model.PhotoView, error) {
	return nil, nil
}

func (m *mockPhotoRepository) ImageKeysByChallenge(ctx context.Context, challengeID int64) ([]string, error) {
	return nil, nil
}

func (m *mockPhotoRepository) ImageKeysForUserCascade(ctx context.Context, userID int64) ([]string, error) {
	return nil, nil
}

func (m *mockPhotoRepository) IDsForUserCascade(ctx context.Context, tx *sqlx.Tx, userID int64, challengeIDs []int64) ([]int64, error) {
	return nil, nil
}

func (m *mockPhotoRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error { return nil }

func (m *mockPhotoRepository) DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error {
	return nil
}

func (m *mockPhotoRepository) DeleteByIDs(ctx context.Context, tx *sqlx.Tx, ids []int64) error {
	return nil
}

type mockCommentRepository struct {
	createFn  func(ctx context.Context, photoID, userID int64, text string, parentID *int64) (*model.Comment, error)
	getByIDFn func(ctx context.Context, id int64) (*model.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, photoID, userID int64, text string, parentID *int64) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, photoID, userID, text, parentID)
	}
	return &model.Comment{ID: 1, PhotoID: photoID, UserID: userID, Text: text, ParentID: parentID}, nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) ListThreads(ctx context.Context, photoID int64) ([]model.CommentThread, error) {
	return nil, nil
}

func (m *mockCommentRepository) DeleteWithReplies(ctx context.Context, tx *sqlx.Tx, commentID int64) error {
	return nil
}

func (m *mockCommentRepository) DeleteByPhoto(ctx context.Context, tx *sqlx.Tx, photoID int64) error {
	return nil
}

func (m *mockCommentRepository) DeleteByChallenge(ctx context.Context, tx *sqlx.Tx, challengeID int64) error {
	return nil
}

func (m *mockCommentRepository) DeleteByPhotoIDs(ctx context.Context, tx *sqlx.Tx, photoIDs []int64) error {
	return nil
}

func (m *mockCommentRepository) DeleteAuthoredClosure(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return nil
}

type mockPostRepository struct {
	getByIDFn  func(ctx context.Context, id int64) (*model.Post, error)
	listFeedFn func(ctx context.Context, take int, cursor *int64) ([]model.PostView, error)
	likedSetFn func(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
}

func (m *mockPostRepository) Create(ctx context.Context, userID int64, text, imageURL, imageKey *string) (*model.Post, error) {
	return &model.Post{ID: 1, UserID: userID, Text: text, ImageURL: imageURL, ImageKey: imageKey}, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetView(ctx context.Context, id int64) (*model.PostView, error) {
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) ListFeed(ctx context.Context, take int, cursor *int64) ([]model.PostView, error) {
	if m.listFeedFn != nil {
		return m.listFeedFn(ctx, take, cursor)
	}
	return nil, nil
}

func (m *mockPostRepository) ListByUser(ctx context.Context, authorID int64) ([]model.PostView, error) {
	return nil, nil
}

func (m *mockPostRepository) ListLikedBy(ctx context.Context, userID int64) ([]model.PostView, error) {
	return nil, nil
}

func (m *mockPostRepository) ImageKeysByUser(ctx context.Context, userID int64) ([]string, error) {
	return nil, nil
}

func (m *mockPostRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error { return nil }

func (m *mockPostRepository) DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return nil
}

func (m *mockPostRepository) Like(ctx context.Context, postID, userID int64) error   { return nil }
func (m *mockPostRepository) Unlike(ctx context.Context, postID, userID int64) error { return nil }

func (m *mockPostRepository) LikedSet(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	if m.likedSetFn != nil {
		return m.likedSetFn(ctx, userID, postIDs)
	}
	return map[int64]bool{}, nil
}

func (m *mockPostRepository) DeleteLikesByPost(ctx context.Context, tx *sqlx.Tx, postID int64) error {
	return nil
}

func (m *mockPostRepository) DeleteLikesByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return nil
}

func (m *mockPostRepository) DeleteLikesOnPostsOwnedBy(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return nil
}

type mockPostCommentRepository struct {
	getByIDFn func(ctx context.Context, id int64) (*model.PostComment, error)

	deletes []int64
}

func (m *mockPostCommentRepository) Create(ctx context.Context, postID, userID int64, text string) (*model.PostComment, error) {
	return &model.PostComment{ID: 1, PostID: postID, UserID: userID, Text: text}, nil
}

func (m *mockPostCommentRepository) GetByID(ctx context.Context, id int64) (*model.PostComment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPostCommentNotFound
}

func (m *mockPostCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.PostComment, error) {
	return nil, nil
}

func (m *mockPostCommentRepository) Delete(ctx context.Context, id int64) error {
	m.deletes = append(m.deletes, id)
	return nil
}

func (m *mockPostCommentRepository) DeleteByPost(ctx context.Context, tx *sqlx.Tx, postID int64) error {
	return nil
}

func (m *mockPostCommentRepository) DeleteByUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return nil
}

func (m *mockPostCommentRepository) DeleteOnPostsOwnedBy(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return nil
}

type mockFollowRepository struct {
	existsFn func(ctx context.Context, followerID, followingID int64) (bool, error)

	creates [][2]int64
	removes [][2]int64
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followingID int64) error {
	m.creates = append(m.creates, [2]int64{followerID, followingID})
	return nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followingID int64) error {
	m.removes = append(m.removes, [2]int64{followerID, followingID})
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followingID)
	}
	return false, nil
}

func (m *mockFollowRepository) Followers(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	return nil, nil
}

func (m *mockFollowRepository) Following(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	return nil, nil
}

func (m *mockFollowRepository) DeleteAllForUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return nil
}

// mockMailer records sends and optionally fails them.
type mockMailer struct {
	sendFn func(to, subject, body string) error

	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *mockMailer) SendEmail(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	if m.sendFn != nil {
		return m.sendFn(to, subject, body)
	}
	return nil
}
