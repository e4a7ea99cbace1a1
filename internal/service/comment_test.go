package service

import (
	"context"
	"errors"
	"testing"

	"fotofocus-backend/internal/model"
)

func photoRepoWith(photoID int64) *mockPhotoRepository {
	return &mockPhotoRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Photo, error) {
			if id == photoID {
				return &model.Photo{ID: id, ChallengeID: 1, UserID: 2}, nil
			}
			return nil, model.ErrPhotoNotFound
		},
	}
}

func TestCommentService_Create_TopLevel(t *testing.T) {
	svc := NewCommentService(nil, &mockCommentRepository{}, photoRepoWith(10))

	comment, err := svc.Create(context.Background(), 10, 5, model.CreateCommentRequest{Text: "  nice shot  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comment.Text != "nice shot" {
		t.Errorf("text = %q, want trimmed", comment.Text)
	}
	if comment.ParentID != nil {
		t.Errorf("parentID = %v, want nil", comment.ParentID)
	}
}

func TestCommentService_Create_ReplyToTopLevel(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, PhotoID: 10, ParentID: nil}, nil
		},
	}
	svc := NewCommentService(nil, commentRepo, photoRepoWith(10))

	parentID := int64(100)
	comment, err := svc.Create(context.Background(), 10, 5, model.CreateCommentRequest{Text: "agreed", ParentID: &parentID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comment.ParentID == nil || *comment.ParentID != 100 {
		t.Errorf("parentID = %v, want 100", comment.ParentID)
	}
}

func TestCommentService_Create_ReplyToReplyClamps(t *testing.T) {
	topLevel := int64(100)
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			// id 200 is itself a reply to comment 100.
			return &model.Comment{ID: id, PhotoID: 10, ParentID: &topLevel}, nil
		},
	}
	svc := NewCommentService(nil, commentRepo, photoRepoWith(10))

	replyID := int64(200)
	comment, err := svc.Create(context.Background(), 10, 5, model.CreateCommentRequest{Text: "me too", ParentID: &replyID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// The reply lands on the top-level comment, not the reply.
	if comment.ParentID == nil || *comment.ParentID != 100 {
		t.Errorf("parentID = %v, want clamped to 100", comment.ParentID)
	}
}

func TestCommentService_Create_ParentOnOtherPhoto(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, PhotoID: 99}, nil
		},
	}
	svc := NewCommentService(nil, commentRepo, photoRepoWith(10))

	parentID := int64(100)
	_, err := svc.Create(context.Background(), 10, 5, model.CreateCommentRequest{Text: "hi", ParentID: &parentID})
	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("err = %v, want ErrCommentNotFound", err)
	}
}

func TestCommentService_Create_EmptyText(t *testing.T) {
	svc := NewCommentService(nil, &mockCommentRepository{}, photoRepoWith(10))

	_, err := svc.Create(context.Background(), 10, 5, model.CreateCommentRequest{Text: "   "})
	if !errors.Is(err, model.ErrEmptyComment) {
		t.Errorf("err = %v, want ErrEmptyComment", err)
	}
}

func TestCommentService_Create_PhotoMissing(t *testing.T) {
	svc := NewCommentService(nil, &mockCommentRepository{}, photoRepoWith(10))

	_, err := svc.Create(context.Background(), 404, 5, model.CreateCommentRequest{Text: "hello"})
	if !errors.Is(err, model.ErrPhotoNotFound) {
		t.Errorf("err = %v, want ErrPhotoNotFound", err)
	}
}

func TestCommentService_Delete_NotAuthor(t *testing.T) {
	commentRepo := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, PhotoID: 10, UserID: 1}, nil
		},
	}
	svc := NewCommentService(nil, commentRepo, photoRepoWith(10))

	err := svc.Delete(context.Background(), 100, 2)
	if !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("err = %v, want ErrNotCommentOwner", err)
	}
}
