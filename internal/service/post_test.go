package service

import (
	"context"
	"errors"
	"testing"

	"fotofocus-backend/internal/model"
)

func TestPostService_Feed_ClampsPageSize(t *testing.T) {
	var gotTake int
	postRepo := &mockPostRepository{
		listFeedFn: func(ctx context.Context, take int, cursor *int64) ([]model.PostView, error) {
			gotTake = take
			return nil, nil
		},
	}
	svc := NewPostService(nil, postRepo, &mockPostCommentRepository{}, nil)

	if _, err := svc.Feed(context.Background(), 500, nil, nil); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if gotTake != model.MaxFeedPageSize {
		t.Errorf("take = %d, want clamped to %d", gotTake, model.MaxFeedPageSize)
	}

	if _, err := svc.Feed(context.Background(), 0, nil, nil); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if gotTake != model.DefaultFeedPageSize {
		t.Errorf("take = %d, want default %d", gotTake, model.DefaultFeedPageSize)
	}
}

func TestPostService_Feed_MarksLiked(t *testing.T) {
	postRepo := &mockPostRepository{
		listFeedFn: func(ctx context.Context, take int, cursor *int64) ([]model.PostView, error) {
			return []model.PostView{
				{Post: model.Post{ID: 1}},
				{Post: model.Post{ID: 2}},
			}, nil
		},
		likedSetFn: func(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
			return map[int64]bool{2: true}, nil
		},
	}
	svc := NewPostService(nil, postRepo, &mockPostCommentRepository{}, nil)

	viewer := int64(7)
	posts, err := svc.Feed(context.Background(), 10, nil, &viewer)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if posts[0].LikedByMe {
		t.Error("post 1 should not be marked liked")
	}
	if !posts[1].LikedByMe {
		t.Error("post 2 should be marked liked")
	}
}

func TestPostService_Create_Empty(t *testing.T) {
	svc := NewPostService(nil, &mockPostRepository{}, &mockPostCommentRepository{}, nil)

	_, err := svc.Create(context.Background(), 1, "   ", nil)
	if !errors.Is(err, model.ErrEmptyPost) {
		t.Errorf("err = %v, want ErrEmptyPost", err)
	}
}

func TestPostService_DeleteComment_Author(t *testing.T) {
	postCmtRepo := &mockPostCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.PostComment, error) {
			return &model.PostComment{ID: id, PostID: 10, UserID: 5}, nil
		},
	}
	svc := NewPostService(nil, &mockPostRepository{}, postCmtRepo, nil)

	if err := svc.DeleteComment(context.Background(), 100, 5); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if len(postCmtRepo.deletes) != 1 {
		t.Error("comment should be deleted by its author")
	}
}

func TestPostService_DeleteComment_PostOwner(t *testing.T) {
	postCmtRepo := &mockPostCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.PostComment, error) {
			return &model.PostComment{ID: id, PostID: 10, UserID: 5}, nil
		},
	}
	postRepo := &mockPostRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Post, error) {
			return &model.Post{ID: id, UserID: 8}, nil
		},
	}
	svc := NewPostService(nil, postRepo, postCmtRepo, nil)

	// User 8 owns the post, so they may moderate its comments.
	if err := svc.DeleteComment(context.Background(), 100, 8); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if len(postCmtRepo.deletes) != 1 {
		t.Error("post owner should be able to delete the comment")
	}
}

func TestPostService_DeleteComment_Stranger(t *testing.T) {
	postCmtRepo := &mockPostCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.PostComment, error) {
			return &model.PostComment{ID: id, PostID: 10, UserID: 5}, nil
		},
	}
	postRepo := &mockPostRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Post, error) {
			return &model.Post{ID: id, UserID: 8}, nil
		},
	}
	svc := NewPostService(nil, postRepo, postCmtRepo, nil)

	err := svc.DeleteComment(context.Background(), 100, 99)
	if !errors.Is(err, model.ErrNotAllowed) {
		t.Errorf("err = %v, want ErrNotAllowed", err)
	}
	if len(postCmtRepo.deletes) != 0 {
		t.Error("stranger must not delete the comment")
	}
}

func TestFollowService_SelfFollow(t *testing.T) {
	svc := NewFollowService(&mockFollowRepository{}, &mockUserRepository{})

	err := svc.Follow(context.Background(), 1, 1)
	if !errors.Is(err, model.ErrSelfFollow) {
		t.Errorf("err = %v, want ErrSelfFollow", err)
	}
}

func TestFollowService_FollowUnknownUser(t *testing.T) {
	svc := NewFollowService(&mockFollowRepository{}, &mockUserRepository{})

	err := svc.Follow(context.Background(), 1, 42)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestFollowService_IsFollowing(t *testing.T) {
	followRepo := &mockFollowRepository{
		existsFn: func(ctx context.Context, followerID, followingID int64) (bool, error) {
			return followerID == 1 && followingID == 2, nil
		},
	}
	svc := NewFollowService(followRepo, &mockUserRepository{})

	following, err := svc.IsFollowing(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if !following {
		t.Error("IsFollowing = false, want true")
	}

	following, err = svc.IsFollowing(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if following {
		t.Error("IsFollowing = true for the reverse edge, want false")
	}
}
