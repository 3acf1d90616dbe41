package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"neetprep-backend/internal/models"
)

func (c *Client) CreateQuizSession(ctx context.Context, chapterID int64, totalQuestions int) (models.QuizSession, error) {
	var session models.QuizSession
	req := models.CreateQuizSessionRequest{ChapterID: chapterID, TotalQuestions: totalQuestions}
	if err := c.create(ctx, "quiz session", "/api/quiz/sessions", req, &session); err != nil {
		return models.QuizSession{}, err
	}
	return session, nil
}

// QuizSession reports false when the session does not exist or could not be
// read.
func (c *Client) QuizSession(ctx context.Context, id int64) (models.QuizSession, bool) {
	var session models.QuizSession
	if err := c.get(ctx, "get quiz session", fmt.Sprintf("/api/quiz/sessions/%d", id), &session); err != nil {
		return models.QuizSession{}, false
	}
	return session, true
}

func (c *Client) UpdateQuizSession(ctx context.Context, id int64, patch models.QuizSessionPatch) (models.QuizSession, error) {
	var session models.QuizSession
	path := fmt.Sprintf("/api/quiz/sessions/%d", id)
	if err := c.update(ctx, http.MethodPatch, "quiz session", path, patch, &session); err != nil {
		return models.QuizSession{}, err
	}
	return session, nil
}

// RecordAnswer stores one answer and returns the session as advanced by it.
func (c *Client) RecordAnswer(ctx context.Context, sessionID, questionID int64, selected int, correct bool) (models.QuizAnswer, models.QuizSession, error) {
	var resp models.RecordAnswerResponse
	req := models.RecordAnswerRequest{QuestionID: questionID, SelectedAnswer: &selected, IsCorrect: correct}
	path := fmt.Sprintf("/api/quiz/sessions/%d/answers", sessionID)
	if err := c.create(ctx, "quiz answer", path, req, &resp); err != nil {
		return models.QuizAnswer{}, models.QuizSession{}, err
	}
	return resp.Answer, resp.Session, nil
}

func (c *Client) QuizAnswers(ctx context.Context, sessionID int64) []models.QuizAnswer {
	var answers []models.QuizAnswer
	if err := c.get(ctx, "list quiz answers", fmt.Sprintf("/api/quiz/sessions/%d/answers", sessionID), &answers); err != nil {
		return []models.QuizAnswer{}
	}
	if answers == nil {
		return []models.QuizAnswer{}
	}
	return answers
}

func (c *Client) CreateQuizStat(ctx context.Context, req models.CreateQuizStatRequest) (models.QuizStat, error) {
	var stat models.QuizStat
	if err := c.create(ctx, "quiz stat", "/api/quiz/stats", req, &stat); err != nil {
		return models.QuizStat{}, err
	}
	return stat, nil
}

// UserStats falls back to zeroed stats when the read fails.
func (c *Client) UserStats(ctx context.Context) models.UserStats {
	var stats models.UserStats
	if err := c.get(ctx, "get user stats", "/api/quiz/user-stats", &stats); err != nil {
		return models.UserStats{QuizStats: []models.QuizStat{}}
	}
	if stats.QuizStats == nil {
		stats.QuizStats = []models.QuizStat{}
	}
	return stats
}

func (c *Client) UpdateUserStats(ctx context.Context, patch models.UserStatsPatch) (models.UserStats, error) {
	var stats models.UserStats
	if err := c.update(ctx, http.MethodPut, "user stats", "/api/quiz/user-stats", patch, &stats); err != nil {
		return models.UserStats{}, err
	}
	return stats, nil
}

func (c *Client) ClearQuiz(ctx context.Context) Result {
	return c.delete(ctx, "quiz data", 0, "/api/quiz")
}

// ClearAll wipes chat history and quiz data. Both clears are attempted; the
// first failure is the one reported.
func (c *Client) ClearAll(ctx context.Context) Result {
	messages := c.ClearMessages(ctx)
	quiz := c.ClearQuiz(ctx)
	if !messages.OK {
		return messages
	}
	return quiz
}

// IsConflict reports whether err is a create refused because the session was
// already completed or the question already answered.
func IsConflict(err error) bool {
	var cerr *CreationError
	return errors.As(err, &cerr) && cerr.Status == http.StatusConflict
}
