package handler

import (
	"errors"
	"log"
	"net/http"

	"fotofocus-backend/internal/httputil"
	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/service"
	"fotofocus-backend/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow handles POST /users/{id}/follow
// Following someone already followed is a success, not an error.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	targetID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	if err := h.followService.Follow(r.Context(), identity.UserID, targetID); err != nil {
		switch {
		case errors.Is(err, model.ErrSelfFollow):
			httputil.WriteBadRequest(w, "Cannot follow yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] Follow handler: follower=%d target=%d err=%v", identity.UserID, targetID, err)
			httputil.WriteInternalError(w, "Failed to follow user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Following"})
}

// Unfollow handles DELETE /users/{id}/follow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	targetID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	if err := h.followService.Unfollow(r.Context(), identity.UserID, targetID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Unfollow handler: follower=%d target=%d err=%v", identity.UserID, targetID, err)
		httputil.WriteInternalError(w, "Failed to unfollow user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Unfollowed"})
}

// IsFollowing handles GET /users/{id}/isFollowing
// Answers whether the caller follows the given user.
func (h *FollowHandler) IsFollowing(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	targetID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	following, err := h.followService.IsFollowing(r.Context(), identity.UserID, targetID)
	if err != nil {
		log.Printf("[ERROR] IsFollowing handler: follower=%d target=%d err=%v", identity.UserID, targetID, err)
		httputil.WriteInternalError(w, "Failed to check follow status")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"isFollowing": following})
}

// Followers handles GET /users/{id}/followers
func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	users, err := h.followService.Followers(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Followers handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list followers")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// Following handles GET /users/{id}/following
func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	users, err := h.followService.Following(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Following handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list following")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}
