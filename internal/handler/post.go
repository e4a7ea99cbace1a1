package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"fotofocus-backend/internal/httputil"
	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/service"
	"fotofocus-backend/internal/transport/http/middleware"
	"fotofocus-backend/internal/validate"
)

type PostHandler struct {
	postService  *service.PostService
	mediaService *service.MediaService
}

func NewPostHandler(postService *service.PostService, mediaService *service.MediaService) *PostHandler {
	return &PostHandler{
		postService:  postService,
		mediaService: mediaService,
	}
}

// Create handles POST /posts (multipart: text and/or image)
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(model.MaxImageSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	var image *model.UploadResult
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		image, err = h.mediaService.UploadImage(r.Context(), file, header, model.PostFolder)
		if err != nil {
			writeUploadError(w, err, identity.UserID)
			return
		}
	}

	post, err := h.postService.Create(r.Context(), identity.UserID, r.FormValue("text"), image)
	if err != nil {
		if image != nil {
			if delErr := h.mediaService.DeleteObject(r.Context(), image.Key); delErr != nil {
				log.Printf("[ERROR] Cleanup orphaned post blob %s: %v", image.Key, delErr)
			}
		}
		if errors.Is(err, model.ErrEmptyPost) {
			httputil.WriteBadRequest(w, "Post needs text or an image")
			return
		}
		log.Printf("[ERROR] Create post handler: user=%d err=%v", identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// Feed handles GET /posts
// Query params: take (page size, capped), cursor (id of the oldest post seen).
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	take := 0
	if v := r.URL.Query().Get("take"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httputil.WriteBadRequest(w, "Invalid take parameter")
			return
		}
		take = n
	}

	var cursor *int64
	if v := r.URL.Query().Get("cursor"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			httputil.WriteBadRequest(w, "Invalid cursor parameter")
			return
		}
		cursor = &n
	}

	posts, err := h.postService.Feed(r.Context(), take, cursor, viewerID(r))
	if err != nil {
		log.Printf("[ERROR] Feed handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to load feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// Delete handles DELETE /posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	if err := h.postService.Delete(r.Context(), postID, identity.UserID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "Only the author can delete this post")
		default:
			log.Printf("[ERROR] Delete post handler: post=%d err=%v", postID, err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted",
	})
}

// Like handles POST /posts/{id}/like
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.postService.Like, "Liked")
}

// Unlike handles DELETE /posts/{id}/like
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.postService.Unlike, "Unliked")
}

func (h *PostHandler) toggleLike(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, postID, userID int64) error, message string) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	if err := op(r.Context(), postID, identity.UserID); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Like toggle handler: post=%d user=%d err=%v", postID, identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to update like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}

// CreateComment handles POST /posts/{id}/comments
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.CreatePostCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, "Comment text is required")
		return
	}

	comment, err := h.postService.CreateComment(r.Context(), postID, identity.UserID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmptyComment):
			httputil.WriteBadRequest(w, "Comment text is required")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			log.Printf("[ERROR] Create post comment handler: post=%d user=%d err=%v", postID, identity.UserID, err)
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// ListComments handles GET /posts/{id}/comments
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	comments, err := h.postService.ListComments(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] List post comments handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to list comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// DeleteComment handles DELETE /posts/{postId}/comments/{commentId}
// Allowed for the comment author or the post owner.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	commentID, ok := parseIDParam(r, "commentId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	if err := h.postService.DeleteComment(r.Context(), commentID, identity.UserID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotAllowed):
			httputil.WriteForbidden(w, "Only the comment author or post owner can delete this comment")
		default:
			log.Printf("[ERROR] Delete post comment handler: comment=%d err=%v", commentID, err)
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Comment deleted",
	})
}

// ListMine handles GET /me/posts
func (h *PostHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	h.writeByUser(w, r, identity.UserID)
}

// ListByUser handles GET /users/{id}/posts
func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}
	h.writeByUser(w, r, userID)
}

func (h *PostHandler) writeByUser(w http.ResponseWriter, r *http.Request, userID int64) {
	posts, err := h.postService.ListByUser(r.Context(), userID, viewerID(r))
	if err != nil {
		log.Printf("[ERROR] List user posts handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, posts)
}

// ListMyLiked handles GET /me/liked-posts
func (h *PostHandler) ListMyLiked(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	h.writeLikedBy(w, r, identity.UserID)
}

// ListLikedBy handles GET /users/{id}/liked-posts
func (h *PostHandler) ListLikedBy(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}
	h.writeLikedBy(w, r, userID)
}

func (h *PostHandler) writeLikedBy(w http.ResponseWriter, r *http.Request, userID int64) {
	posts, err := h.postService.ListLikedBy(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] List liked posts handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list liked posts")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, posts)
}

// viewerID returns the authenticated caller's id when one is present.
func viewerID(r *http.Request) *int64 {
	if identity, ok := middleware.GetIdentity(r.Context()); ok {
		return &identity.UserID
	}
	return nil
}
