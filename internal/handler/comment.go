package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fotofocus-backend/internal/httputil"
	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/service"
	"fotofocus-backend/internal/transport/http/middleware"
	"fotofocus-backend/internal/validate"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles POST /photos/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	photoID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid photo ID")
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, "Comment text is required")
		return
	}

	comment, err := h.commentService.Create(r.Context(), photoID, identity.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmptyComment):
			httputil.WriteBadRequest(w, "Comment text is required")
		case errors.Is(err, model.ErrPhotoNotFound):
			httputil.WriteNotFound(w, "Photo not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Parent comment not found")
		default:
			log.Printf("[ERROR] Create comment handler: photo=%d user=%d err=%v", photoID, identity.UserID, err)
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// List handles GET /photos/{id}/comments
// Returns top-level comments with their replies nested.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	photoID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid photo ID")
		return
	}

	threads, err := h.commentService.ListThreads(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, model.ErrPhotoNotFound) {
			httputil.WriteNotFound(w, "Photo not found")
			return
		}
		log.Printf("[ERROR] List comments handler: photo=%d err=%v", photoID, err)
		httputil.WriteInternalError(w, "Failed to list comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, threads)
}

// Delete handles DELETE /comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	commentID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, identity.UserID); err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "Only the author can delete this comment")
		default:
			log.Printf("[ERROR] Delete comment handler: comment=%d err=%v", commentID, err)
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Comment deleted",
	})
}
