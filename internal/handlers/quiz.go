package handlers

import (
	"context"
	"errors"
	"net/http"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
	"neetprep-backend/internal/quiz"
)

type QuizService interface {
	CreateSession(ctx context.Context, chapterID int64, totalQuestions int) (models.QuizSession, error)
	Session(ctx context.Context, id int64) (models.QuizSession, bool, error)
	UpdateSession(ctx context.Context, id int64, patch models.QuizSessionPatch) (models.QuizSession, error)
	RecordAnswer(ctx context.Context, sessionID int64, req models.RecordAnswerRequest) (models.QuizAnswer, models.QuizSession, error)
	AnswersBySession(ctx context.Context, sessionID int64) ([]models.QuizAnswer, error)
	CreateStat(ctx context.Context, req models.CreateQuizStatRequest) (models.QuizStat, error)
	UserStats(ctx context.Context) (models.UserStats, error)
	UpdateUserStats(ctx context.Context, patch models.UserStatsPatch) (models.UserStats, error)
	Clear(ctx context.Context) error
}

type QuizHandler struct {
	quiz QuizService
	log  *logger.Logger
}

func NewQuizHandler(svc QuizService, log *logger.Logger) *QuizHandler {
	return &QuizHandler{quiz: svc, log: log}
}

func (h *QuizHandler) handleQuizError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Quiz session not found", r))
	case errors.Is(err, quiz.ErrSessionCompleted):
		writeJSON(w, http.StatusConflict, errorResp("SESSION_COMPLETED", "Quiz session is already completed", r))
	case errors.Is(err, quiz.ErrDuplicateAnswer):
		writeJSON(w, http.StatusConflict, errorResp("DUPLICATE_ANSWER", "Question already answered in this session", r))
	case errors.Is(err, quiz.ErrInvalidTransition):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
	default:
		internalError(w, r, h.log, "Quiz storage failed", err)
	}
}

func (h *QuizHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.quiz.CreateSession(r.Context(), req.ChapterID, req.TotalQuestions)
	if err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *QuizHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	session, found, err := h.quiz.Session(r.Context(), id)
	if err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	if !found {
		h.handleQuizError(w, r, quiz.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *QuizHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var patch models.QuizSessionPatch
	if !decodeAndValidate(w, r, &patch) {
		return
	}

	session, err := h.quiz.UpdateSession(r.Context(), id, patch)
	if err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *QuizHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req models.RecordAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answer, session, err := h.quiz.RecordAnswer(r.Context(), id, req)
	if err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.RecordAnswerResponse{Answer: answer, Session: session})
}

func (h *QuizHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	answers, err := h.quiz.AnswersBySession(r.Context(), id)
	if err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, answers)
}

func (h *QuizHandler) CreateStat(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizStatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	stat, err := h.quiz.CreateStat(r.Context(), req)
	if err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stat)
}

func (h *QuizHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.quiz.UserStats(r.Context())
	if err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *QuizHandler) UpdateUserStats(w http.ResponseWriter, r *http.Request) {
	var patch models.UserStatsPatch
	if !decodeAndValidate(w, r, &patch) {
		return
	}

	stats, err := h.quiz.UpdateUserStats(r.Context(), patch)
	if err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *QuizHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.quiz.Clear(r.Context()); err != nil {
		h.handleQuizError(w, r, err)
		return
	}
	writeSuccess(w)
}
