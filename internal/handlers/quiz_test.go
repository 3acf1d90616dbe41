package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"neetprep-backend/internal/kvstore"
	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
	"neetprep-backend/internal/quiz"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func newQuizHandler() *QuizHandler {
	return NewQuizHandler(quiz.NewService(kvstore.NewMemoryStore()), logger.Nop())
}

func createSession(t *testing.T, h *QuizHandler, total int) models.QuizSession {
	t.Helper()
	rr := httptest.NewRecorder()
	h.CreateSession(rr, newRequest(t, http.MethodPost, "/api/quiz/sessions", map[string]interface{}{"chapterId": 1, "totalQuestions": total}, nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var s models.QuizSession
	decodeBody(t, rr, &s)
	return s
}

func TestQuizHandler_SessionLifecycle(t *testing.T) {
	h := newQuizHandler()
	session := createSession(t, h, 2)
	params := map[string]string{"id": itoa(session.ID)}

	rr := httptest.NewRecorder()
	h.RecordAnswer(rr, newRequest(t, http.MethodPost, "/api/quiz/sessions/x/answers", map[string]interface{}{"questionId": 10, "selectedAnswer": 1, "isCorrect": true}, params))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.RecordAnswerResponse
	decodeBody(t, rr, &resp)
	if resp.Session.Score != 1 || resp.Session.CurrentQuestion != 1 {
		t.Errorf("Unexpected session: %+v", resp.Session)
	}

	rr = httptest.NewRecorder()
	h.RecordAnswer(rr, newRequest(t, http.MethodPost, "/api/quiz/sessions/x/answers", map[string]interface{}{"questionId": 10, "selectedAnswer": 2, "isCorrect": false}, params))
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate answer, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.UpdateSession(rr, newRequest(t, http.MethodPatch, "/api/quiz/sessions/x", map[string]interface{}{"score": 0}, params))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for decreasing score, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.UpdateSession(rr, newRequest(t, http.MethodPatch, "/api/quiz/sessions/x", map[string]interface{}{"isCompleted": true}, params))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.UpdateSession(rr, newRequest(t, http.MethodPatch, "/api/quiz/sessions/x", map[string]interface{}{"currentQuestion": 2}, params))
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected 409 for completed session, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ListAnswers(rr, newRequest(t, http.MethodGet, "/api/quiz/sessions/x/answers", nil, params))
	var answers []models.QuizAnswer
	decodeBody(t, rr, &answers)
	if len(answers) != 1 {
		t.Errorf("Expected 1 answer, got %d", len(answers))
	}
}

func TestQuizHandler_GetSessionNotFound(t *testing.T) {
	h := newQuizHandler()

	rr := httptest.NewRecorder()
	h.GetSession(rr, newRequest(t, http.MethodGet, "/api/quiz/sessions/5", nil, map[string]string{"id": "5"}))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}

func TestQuizHandler_StatsAndClear(t *testing.T) {
	h := newQuizHandler()

	rr := httptest.NewRecorder()
	h.CreateStat(rr, newRequest(t, http.MethodPost, "/api/quiz/stats", map[string]interface{}{"chapterTitle": "Optics", "subjectTitle": "Physics", "score": 3, "totalQuestions": 4}, nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.CreateStat(rr, newRequest(t, http.MethodPost, "/api/quiz/stats", map[string]interface{}{"chapterTitle": "Optics", "score": 5, "totalQuestions": 4}, nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for score above total, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.UpdateUserStats(rr, newRequest(t, http.MethodPut, "/api/quiz/user-stats", map[string]interface{}{"studyStreak": 4}, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.GetUserStats(rr, newRequest(t, http.MethodGet, "/api/quiz/user-stats", nil, nil))
	var stats models.UserStats
	decodeBody(t, rr, &stats)
	if stats.StudyStreak != 4 || len(stats.QuizStats) != 1 || stats.QuizStats[0].Percentage != 75 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	rr = httptest.NewRecorder()
	h.Clear(rr, newRequest(t, http.MethodDelete, "/api/quiz", nil, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.GetUserStats(rr, newRequest(t, http.MethodGet, "/api/quiz/user-stats", nil, nil))
	stats = models.UserStats{}
	decodeBody(t, rr, &stats)
	if stats.StudyStreak != 0 || len(stats.QuizStats) != 0 {
		t.Errorf("Expected cleared stats, got %+v", stats)
	}
}
