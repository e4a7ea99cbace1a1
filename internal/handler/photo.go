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

type PhotoHandler struct {
	photoService *service.PhotoService
	mediaService *service.MediaService
}

func NewPhotoHandler(photoService *service.PhotoService, mediaService *service.MediaService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		mediaService: mediaService,
	}
}

// Upload handles POST /challenges/{id}/photos (multipart field "photo", optional caption)
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	challengeID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid challenge ID")
		return
	}

	if err := r.ParseMultipartForm(model.MaxImageSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		httputil.WriteBadRequest(w, "Photo file required")
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadImage(r.Context(), file, header, model.PhotoFolder)
	if err != nil {
		writeUploadError(w, err, identity.UserID)
		return
	}

	photo, err := h.photoService.Upload(r.Context(), challengeID, identity.UserID, upload, r.FormValue("caption"))
	if err != nil {
		if delErr := h.mediaService.DeleteObject(r.Context(), upload.Key); delErr != nil {
			log.Printf("[ERROR] Cleanup orphaned photo blob %s: %v", upload.Key, delErr)
		}
		if errors.Is(err, model.ErrChallengeNotFound) {
			httputil.WriteNotFound(w, "Challenge not found")
			return
		}
		log.Printf("[ERROR] Upload photo handler: challenge=%d user=%d err=%v", challengeID, identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to upload photo")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, photo)
}

// ListByChallenge handles GET /challenges/{id}/photos
func (h *PhotoHandler) ListByChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid challenge ID")
		return
	}

	photos, err := h.photoService.ListByChallenge(r.Context(), challengeID)
	if err != nil {
		if errors.Is(err, model.ErrChallengeNotFound) {
			httputil.WriteNotFound(w, "Challenge not found")
			return
		}
		log.Printf("[ERROR] List challenge photos handler: challenge=%d err=%v", challengeID, err)
		httputil.WriteInternalError(w, "Failed to list photos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, photos)
}

// GetByID handles GET /photos/{id}
func (h *PhotoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	photoID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid photo ID")
		return
	}

	photo, err := h.photoService.Get(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, model.ErrPhotoNotFound) {
			httputil.WriteNotFound(w, "Photo not found")
			return
		}
		log.Printf("[ERROR] Get photo handler: photo=%d err=%v", photoID, err)
		httputil.WriteInternalError(w, "Failed to load photo")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, photo)
}

// Rate handles POST /photos/{id}/ratings
// Re-rating replaces the caller's previous score.
func (h *PhotoHandler) Rate(w http.ResponseWriter, r *http.Request) {
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

	var req model.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, "Rating value must be between 1 and 5")
		return
	}

	stats, err := h.photoService.Rate(r.Context(), photoID, identity.UserID, req.Value)
	if err != nil {
		if errors.Is(err, model.ErrPhotoNotFound) {
			httputil.WriteNotFound(w, "Photo not found")
			return
		}
		log.Printf("[ERROR] Rate photo handler: photo=%d user=%d err=%v", photoID, identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to rate photo")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

// Delete handles DELETE /photos/{id}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.photoService.Delete(r.Context(), photoID, identity.UserID); err != nil {
		switch {
		case errors.Is(err, model.ErrPhotoNotFound):
			httputil.WriteNotFound(w, "Photo not found")
		case errors.Is(err, model.ErrNotPhotoOwner):
			httputil.WriteForbidden(w, "Only the uploader can delete this photo")
		default:
			log.Printf("[ERROR] Delete photo handler: photo=%d err=%v", photoID, err)
			httputil.WriteInternalError(w, "Failed to delete photo")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Photo deleted",
	})
}

// ListMine handles GET /me/photos
func (h *PhotoHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	h.writeByUser(w, r, identity.UserID)
}

// ListByUser handles GET /users/{id}/photos
func (h *PhotoHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}
	h.writeByUser(w, r, userID)
}

func (h *PhotoHandler) writeByUser(w http.ResponseWriter, r *http.Request, userID int64) {
	photos, err := h.photoService.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] List user photos handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list photos")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, photos)
}
