package handlers

import (
	"context"
	"errors"
	"net/http"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
	"neetprep-backend/internal/repository"
)

type QuestionStore interface {
	ListByChapter(ctx context.Context, chapterID int64) ([]models.QuestionRecord, error)
	CreateBulk(ctx context.Context, chapterID int64, questions []models.QuestionRecord) ([]models.QuestionRecord, error)
	Delete(ctx context.Context, id int64) error
}

type QuestionHandler struct {
	questions QuestionStore
	log       *logger.Logger
}

func NewQuestionHandler(questions QuestionStore, log *logger.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, log: log}
}

func (h *QuestionHandler) ListByChapter(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := parseID(w, r, "chapterId")
	if !ok {
		return
	}

	questions, err := h.questions.ListByChapter(r.Context(), chapterID)
	if err != nil {
		internalError(w, r, h.log, "Failed to fetch questions", err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// CreateBulk inserts every question of the body or none of them.
func (h *QuestionHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkQuestionsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	records := make([]models.QuestionRecord, 0, len(req.Questions))
	for _, in := range req.Questions {
		in.ApplyDefaults()
		records = append(records, in.Record(req.ChapterID))
	}

	created, err := h.questions.CreateBulk(r.Context(), req.ChapterID, records)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chapter not found", r))
			return
		}
		internalError(w, r, h.log, "Failed to create questions", err)
		return
	}

	writeJSON(w, http.StatusCreated, models.BulkQuestionsResponse{
		Success:      true,
		CreatedCount: len(created),
		Questions:    created,
	})
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.questions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Question not found", r))
			return
		}
		internalError(w, r, h.log, "Failed to delete question", err)
		return
	}
	writeSuccess(w)
}
