package handler

import (
	"errors"
	"log"
	"net/http"

	"fotofocus-backend/internal/httputil"
	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/service"
)

type LessonHandler struct {
	lessonService *service.LessonService
}

func NewLessonHandler(lessonService *service.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// List handles GET /lessons
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessonService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List lessons handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list lessons")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, lessons)
}

// GetByID handles GET /lessons/{id}
func (h *LessonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := parseIDParam(r, "id")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid lesson ID")
		return
	}

	lesson, err := h.lessonService.Get(r.Context(), lessonID)
	if err != nil {
		if errors.Is(err, model.ErrLessonNotFound) {
			httputil.WriteNotFound(w, "Lesson not found")
			return
		}
		log.Printf("[ERROR] Get lesson handler: lesson=%d err=%v", lessonID, err)
		httputil.WriteInternalError(w, "Failed to load lesson")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, lesson)
}
