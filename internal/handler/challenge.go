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

type ChallengeHandler struct {
	challengeService *service.ChallengeService
	mediaService     *service.MediaService
}

func NewChallengeHandler(challengeService *service.ChallengeService, mediaService *service.MediaService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		mediaService:     mediaService,
	}
}

// Create handles POST /challenges (multipart: title, description, optional cover)
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(model.MaxImageSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	var cover *model.UploadResult
	if file, header, err := r.FormFile("cover"); err == nil {
		defer file.Close()
		cover, err = h.mediaService.UploadImage(r.Context(), file, header, model.CoverFolder)
		if err != nil {
			writeUploadError(w, err, identity.UserID)
			return
		}
	}

	challenge, err := h.challengeService.Create(
		r.Context(),
		identity.UserID,
		r.FormValue("title"),
		r.FormValue("description"),
		cover,
	)
	if err != nil {
		if cover != nil {
			if delErr := h.mediaService.DeleteObject(r.Context(), cover.Key); delErr != nil {
				log.Printf("[ERROR] Cleanup orphaned cover blob %s: %v", cover.Key, delErr)
			}
		}
		if errors.Is(err, model.ErrTitleRequired) {
			httputil.WriteBadRequest(w, "Title is required")
			return
		}
		log.Printf("[ERROR] Create challenge handler: user=%d err=%v", identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to create challenge")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, challenge)
}

// List handles GET /challenges
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challengeService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List challenges handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list challenges")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, challenges)
}

// GetByID handles GET /challenges/{id}
func (h *ChallengeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid challenge ID")
		return
	}

	challenge, err := h.challengeService.Get(r.Context(), challengeID)
	if err != nil {
		if errors.Is(err, model.ErrChallengeNotFound) {
			httputil.WriteNotFound(w, "Challenge not found")
			return
		}
		log.Printf("[ERROR] Get challenge handler: challenge=%d err=%v", challengeID, err)
		httputil.WriteInternalError(w, "Failed to load challenge")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, challenge)
}

// Update handles PUT /challenges/{id}
func (h *ChallengeHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req model.UpdateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	challenge, err := h.challengeService.Update(r.Context(), challengeID, identity.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrChallengeNotFound):
			httputil.WriteNotFound(w, "Challenge not found")
		case errors.Is(err, model.ErrNotChallengeOwner):
			httputil.WriteForbidden(w, "Only the creator can edit this challenge")
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteBadRequest(w, "Title cannot be empty")
		default:
			log.Printf("[ERROR] Update challenge handler: challenge=%d err=%v", challengeID, err)
			httputil.WriteInternalError(w, "Failed to update challenge")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, challenge)
}

// Delete handles DELETE /challenges/{id}
// Removes the challenge, its photos, and their ratings and comments.
func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.challengeService.Delete(r.Context(), challengeID, identity.UserID); err != nil {
		switch {
		case errors.Is(err, model.ErrChallengeNotFound):
			httputil.WriteNotFound(w, "Challenge not found")
		case errors.Is(err, model.ErrNotChallengeOwner):
			httputil.WriteForbidden(w, "Only the creator can delete this challenge")
		default:
			log.Printf("[ERROR] Delete challenge handler: challenge=%d err=%v", challengeID, err)
			httputil.WriteInternalError(w, "Failed to delete challenge")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Challenge deleted",
	})
}

// ListMine handles GET /me/challenges
func (h *ChallengeHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	h.writeByCreator(w, r, identity.UserID)
}

// ListByUser handles GET /users/{id}/mychallenges
func (h *ChallengeHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}
	h.writeByCreator(w, r, userID)
}

func (h *ChallengeHandler) writeByCreator(w http.ResponseWriter, r *http.Request, creatorID int64) {
	challenges, err := h.challengeService.ListByCreator(r.Context(), creatorID)
	if err != nil {
		log.Printf("[ERROR] List challenges by creator handler: user=%d err=%v", creatorID, err)
		httputil.WriteInternalError(w, "Failed to list challenges")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, challenges)
}
