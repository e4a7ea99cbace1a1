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
)

type UserHandler struct {
	userService  *service.UserService
	mediaService *service.MediaService
}

func NewUserHandler(userService *service.UserService, mediaService *service.MediaService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

// Me handles GET /me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Me handler: user=%d err=%v", identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to load profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user.Public())
}

// UpdateMe handles PUT /me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), identity.UserID, req)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Update profile handler: user=%d err=%v", identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to update profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user.Public())
}

// UploadAvatar handles POST /me/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "Avatar file required")
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadAvatar(r.Context(), file, header)
	if err != nil {
		writeUploadError(w, err, identity.UserID)
		return
	}

	user, err := h.userService.UpdateAvatar(r.Context(), identity.UserID, upload)
	if err != nil {
		if delErr := h.mediaService.DeleteObject(r.Context(), upload.Key); delErr != nil {
			log.Printf("[ERROR] Cleanup orphaned avatar blob %s: %v", upload.Key, delErr)
		}
		log.Printf("[ERROR] Update avatar handler: user=%d err=%v", identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to update avatar")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user.Public())
}

// DeleteMe handles DELETE /me
// Removes the account and everything attached to it.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), identity.UserID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Delete account handler: user=%d err=%v", identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to delete account")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Account deleted",
	})
}

// GetByID handles GET /users/{id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Get user handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to load user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user.Public())
}

// Stats handles GET /users/{id}/stats
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}
	h.writeStats(w, r, userID)
}

// MyStats handles GET /me/stats
func (h *UserHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	h.writeStats(w, r, identity.UserID)
}

func (h *UserHandler) writeStats(w http.ResponseWriter, r *http.Request, userID int64) {
	var viewerID *int64
	if identity, ok := middleware.GetIdentity(r.Context()); ok {
		viewerID = &identity.UserID
	}

	stats, err := h.userService.GetStats(r.Context(), userID, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] User stats handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to load stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

// writeUploadError maps media validation failures onto client errors.
func writeUploadError(w http.ResponseWriter, err error, userID int64) {
	switch {
	case errors.Is(err, model.ErrFileTooLarge):
		httputil.WriteBadRequest(w, "File too large")
	case errors.Is(err, model.ErrInvalidImageType):
		httputil.WriteBadRequest(w, "Unsupported image type")
	default:
		log.Printf("[ERROR] Upload: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to store upload")
	}
}
