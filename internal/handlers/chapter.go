package handlers

import (
	"context"
	"errors"
	"net/http"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
	"neetprep-backend/internal/repository"
)

type ChapterStore interface {
	List(ctx context.Context) ([]models.ChapterRecord, error)
	ListBySubject(ctx context.Context, subjectID int64) ([]models.ChapterRecord, error)
	GetByID(ctx context.Context, id int64) (*models.ChapterRecord, error)
	Create(ctx context.Context, c *models.ChapterRecord) error
	Delete(ctx context.Context, id int64) error
}

type ChapterHandler struct {
	chapters ChapterStore
	log      *logger.Logger
}

func NewChapterHandler(chapters ChapterStore, log *logger.Logger) *ChapterHandler {
	return &ChapterHandler{chapters: chapters, log: log}
}

func (h *ChapterHandler) List(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.chapters.List(r.Context())
	if err != nil {
		internalError(w, r, h.log, "Failed to fetch chapters", err)
		return
	}
	writeJSON(w, http.StatusOK, chapters)
}

func (h *ChapterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	chapter, err := h.chapters.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chapter not found", r))
			return
		}
		internalError(w, r, h.log, "Failed to fetch chapter", err)
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}

func (h *ChapterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChapterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.ApplyDefaults()

	chapter := &models.ChapterRecord{
		SubjectID:   req.SubjectID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Progress:    req.Progress,
	}

	err := h.chapters.Create(r.Context(), chapter)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, chapter)
	case errors.Is(err, repository.ErrDuplicate):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Chapter title already exists",
			map[string]string{"title": "already exists"}, r))
	case errors.Is(err, repository.ErrInvalidReference):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Subject does not exist",
			map[string]string{"subjectId": "does not exist"}, r))
	default:
		internalError(w, r, h.log, "Failed to create chapter", err)
	}
}

// Delete removes the chapter together with its questions.
func (h *ChapterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.chapters.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chapter not found", r))
			return
		}
		internalError(w, r, h.log, "Failed to delete chapter", err)
		return
	}
	writeSuccess(w)
}
