package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// PostService runs the feed: posts, likes, and their flat comments.
type PostService struct {
	tx          txRunner
	postRepo    repository.PostRepository
	postCmtRepo repository.PostCommentRepository
	blobs       blobDeleter
}

func NewPostService(tx txRunner, postRepo repository.PostRepository, postCmtRepo repository.PostCommentRepository, blobs blobDeleter) *PostService {
	return &PostService{
		tx:          tx,
		postRepo:    postRepo,
		postCmtRepo: postCmtRepo,
		blobs:       blobs,
	}
}

// Create publishes a post. Text, an image, or both; never neither.
func (s *PostService) Create(ctx context.Context, userID int64, text string, image *model.UploadResult) (*model.PostView, error) {
	var textPtr, imageURL, imageKey *string
	if t := strings.TrimSpace(text); t != "" {
		textPtr = &t
	}
	if image != nil {
		imageURL = &image.URL
		imageKey = &image.Key
	}
	if textPtr == nil && imageURL == nil {
		return nil, model.ErrEmptyPost
	}

	post, err := s.postRepo.Create(ctx, userID, textPtr, imageURL, imageKey)
	if err != nil {
		return nil, err
	}
	return s.getView(ctx, post.ID, &userID)
}

// Feed returns a page of the global feed, newest first, keyed by an id
// cursor. Page size is clamped to the configured maximum.
func (s *PostService) Feed(ctx context.Context, take int, cursor *int64, viewerID *int64) ([]model.PostView, error) {
	if take <= 0 {
		take = model.DefaultFeedPageSize
	}
	if take > model.MaxFeedPageSize {
		take = model.MaxFeedPageSize
	}

	posts, err := s.postRepo.ListFeed(ctx, take, cursor)
	if err != nil {
		return nil, err
	}
	return s.markLiked(ctx, posts, viewerID)
}

func (s *PostService) ListByUser(ctx context.Context, authorID int64, viewerID *int64) ([]model.PostView, error) {
	posts, err := s.postRepo.ListByUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.markLiked(ctx, posts, viewerID)
}

func (s *PostService) ListLikedBy(ctx context.Context, userID int64) ([]model.PostView, error) {
	posts, err := s.postRepo.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Every post in this listing is by definition liked by the user.
	for i := range posts {
		posts[i].LikedByMe = true
	}
	return posts, nil
}

// Delete removes the post together with its likes and comments; only the
// author may delete.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return model.ErrNotPostOwner
	}

	err = s.tx.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.postRepo.DeleteLikesByPost(ctx, tx, postID); err != nil {
			return err
		}
		if err := s.postCmtRepo.DeleteByPost(ctx, tx, postID); err != nil {
			return err
		}
		return s.postRepo.DeleteTx(ctx, tx, postID)
	})
	if err != nil {
		return err
	}

	if post.ImageKey != nil {
		deleteBlobs(ctx, s.blobs, "PostService", []string{*post.ImageKey})
	}
	return nil
}

// Like records a like; liking twice is a no-op.
func (s *PostService) Like(ctx context.Context, postID, userID int64) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Like(ctx, postID, userID)
}

// Unlike removes a like; removing an absent like is a no-op.
func (s *PostService) Unlike(ctx context.Context, postID, userID int64) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Unlike(ctx, postID, userID)
}

func (s *PostService) CreateComment(ctx context.Context, postID, userID int64, text string) (*model.PostComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyComment
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.postCmtRepo.Create(ctx, postID, userID, text)
}

func (s *PostService) ListComments(ctx context.Context, postID int64) ([]model.PostComment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.postCmtRepo.ListByPost(ctx, postID)
}

// DeleteComment allows either the comment author or the post owner to remove
// a comment.
func (s *PostService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	comment, err := s.postCmtRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		post, err := s.postRepo.GetByID(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return model.ErrNotAllowed
		}
	}
	return s.postCmtRepo.Delete(ctx, commentID)
}

func (s *PostService) getView(ctx context.Context, postID int64, viewerID *int64) (*model.PostView, error) {
	view, err := s.postRepo.GetView(ctx, postID)
	if err != nil {
		return nil, err
	}
	views, err := s.markLiked(ctx, []model.PostView{*view}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *PostService) markLiked(ctx context.Context, posts []model.PostView, viewerID *int64) ([]model.PostView, error) {
	if viewerID == nil || len(posts) == 0 {
		return posts, nil
	}

	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	liked, err := s.postRepo.LikedSet(ctx, *viewerID, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].LikedByMe = liked[posts[i].ID]
	}
	return posts, nil
}
