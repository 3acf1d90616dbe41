package handlers

import (
	"context"
	"errors"
	"net/http"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
	"neetprep-backend/internal/repository"
)

type SubjectStore interface {
	List(ctx context.Context) ([]models.SubjectRecord, error)
	Create(ctx context.Context, s *models.SubjectRecord) error
	Delete(ctx context.Context, id int64) error
}

type SubjectHandler struct {
	subjects SubjectStore
	chapters ChapterStore
	log      *logger.Logger
}

func NewSubjectHandler(subjects SubjectStore, chapters ChapterStore, log *logger.Logger) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, chapters: chapters, log: log}
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.List(r.Context())
	if err != nil {
		internalError(w, r, h.log, "Failed to fetch subjects", err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subject := &models.SubjectRecord{Name: req.Name, Color: req.Color}
	if err := h.subjects.Create(r.Context(), subject); err != nil {
		internalError(w, r, h.log, "Failed to create subject", err)
		return
	}
	writeJSON(w, http.StatusCreated, subject)
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.subjects.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Subject not found", r))
			return
		}
		internalError(w, r, h.log, "Failed to delete subject", err)
		return
	}
	writeSuccess(w)
}

// Chapters lists the chapters of one subject.
func (h *SubjectHandler) Chapters(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	chapters, err := h.chapters.ListBySubject(r.Context(), id)
	if err != nil {
		internalError(w, r, h.log, "Failed to fetch chapters", err)
		return
	}
	writeJSON(w, http.StatusOK, chapters)
}
