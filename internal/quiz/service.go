// Package quiz keeps quiz sessions, answers and user statistics in a
// kvstore, one blob per collection.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"neetprep-backend/internal/kvstore"
	"neetprep-backend/internal/models"
)

const (
	keySessions  = "quizSessions"
	keyAnswers   = "quizAnswers"
	keyUserStats = "userStats"
)

var (
	ErrSessionNotFound   = errors.New("quiz session not found")
	ErrSessionCompleted  = errors.New("quiz session is already completed")
	ErrDuplicateAnswer   = errors.New("question already answered in this session")
	ErrInvalidTransition = errors.New("invalid quiz session update")
)

type sessionCollection struct {
	NextID   int64                `json:"nextId"`
	Sessions []models.QuizSession `json:"sessions"`
}

type answerCollection struct {
	NextID  int64               `json:"nextId"`
	Answers []models.QuizAnswer `json:"answers"`
}

type userStatsBlob struct {
	NextStatID int64 `json:"nextStatId"`
	models.UserStats
}

type Service struct {
	store kvstore.Store
	now   func() time.Time

	// mu serialises every read-modify-write of the collections.
	mu sync.Mutex
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) loadSessions(ctx context.Context) (*sessionCollection, error) {
	c := &sessionCollection{}
	if _, err := s.store.Get(ctx, keySessions, c); err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return c, nil
}

func (s *Service) loadAnswers(ctx context.Context) (*answerCollection, error) {
	c := &answerCollection{}
	if _, err := s.store.Get(ctx, keyAnswers, c); err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	return c, nil
}

func (s *Service) loadUserStats(ctx context.Context) (*userStatsBlob, error) {
	b := &userStatsBlob{}
	if _, err := s.store.Get(ctx, keyUserStats, b); err != nil {
		return nil, fmt.Errorf("load user stats: %w", err)
	}
	if b.QuizStats == nil {
		b.QuizStats = []models.QuizStat{}
	}
	return b, nil
}

func (c *sessionCollection) find(id int64) int {
	for i := range c.Sessions {
		if c.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) CreateSession(ctx context.Context, chapterID int64, totalQuestions int) (models.QuizSession, error) {
	if totalQuestions <= 0 {
		return models.QuizSession{}, fmt.Errorf("%w: totalQuestions must be positive", ErrInvalidTransition)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadSessions(ctx)
	if err != nil {
		return models.QuizSession{}, err
	}

	c.NextID++
	session := models.QuizSession{
		ID:             c.NextID,
		ChapterID:      chapterID,
		TotalQuestions: totalQuestions,
		CreatedAt:      s.now().UTC(),
	}
	c.Sessions = append(c.Sessions, session)

	if err := s.store.Set(ctx, keySessions, c); err != nil {
		return models.QuizSession{}, fmt.Errorf("save sessions: %w", err)
	}
	return session, nil
}

func (s *Service) Session(ctx context.Context, id int64) (models.QuizSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadSessions(ctx)
	if err != nil {
		return models.QuizSession{}, false, err
	}
	if i := c.find(id); i >= 0 {
		return c.Sessions[i], true, nil
	}
	return models.QuizSession{}, false, nil
}

// applyPatch checks the patch against the session's monotonic fields and
// returns the updated copy.
func applyPatch(cur models.QuizSession, patch models.QuizSessionPatch) (models.QuizSession, error) {
	if cur.IsCompleted {
		return cur, ErrSessionCompleted
	}
	next := cur
	if patch.CurrentQuestion != nil {
		v := *patch.CurrentQuestion
		if v < cur.CurrentQuestion {
			return cur, fmt.Errorf("%w: currentQuestion cannot go from %d to %d", ErrInvalidTransition, cur.CurrentQuestion, v)
		}
		if v > cur.TotalQuestions {
			return cur, fmt.Errorf("%w: currentQuestion %d exceeds totalQuestions %d", ErrInvalidTransition, v, cur.TotalQuestions)
		}
		next.CurrentQuestion = v
	}
	if patch.Score != nil {
		v := *patch.Score
		if v < cur.Score {
			return cur, fmt.Errorf("%w: score cannot go from %d to %d", ErrInvalidTransition, cur.Score, v)
		}
		if v > cur.TotalQuestions {
			return cur, fmt.Errorf("%w: score %d exceeds totalQuestions %d", ErrInvalidTransition, v, cur.TotalQuestions)
		}
		next.Score = v
	}
	if patch.IsCompleted != nil && *patch.IsCompleted {
		next.IsCompleted = true
	}
	return next, nil
}

func (s *Service) UpdateSession(ctx context.Context, id int64, patch models.QuizSessionPatch) (models.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadSessions(ctx)
	if err != nil {
		return models.QuizSession{}, err
	}
	i := c.find(id)
	if i < 0 {
		return models.QuizSession{}, ErrSessionNotFound
	}

	next, err := applyPatch(c.Sessions[i], patch)
	if err != nil {
		return c.Sessions[i], err
	}
	c.Sessions[i] = next

	if err := s.store.Set(ctx, keySessions, c); err != nil {
		return models.QuizSession{}, fmt.Errorf("save sessions: %w", err)
	}
	return next, nil
}

// RecordAnswer appends the answer, advances the session by one question and
// completes it after the last one.
func (s *Service) RecordAnswer(ctx context.Context, sessionID int64, req models.RecordAnswerRequest) (models.QuizAnswer, models.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return models.QuizAnswer{}, models.QuizSession{}, err
	}
	i := sessions.find(sessionID)
	if i < 0 {
		return models.QuizAnswer{}, models.QuizSession{}, ErrSessionNotFound
	}
	session := sessions.Sessions[i]
	if session.IsCompleted {
		return models.QuizAnswer{}, session, ErrSessionCompleted
	}

	answers, err := s.loadAnswers(ctx)
	if err != nil {
		return models.QuizAnswer{}, session, err
	}
	for _, a := range answers.Answers {
		if a.SessionID == sessionID && a.QuestionID == req.QuestionID {
			return models.QuizAnswer{}, session, ErrDuplicateAnswer
		}
	}

	answers.NextID++
	answer := models.QuizAnswer{
		ID:         answers.NextID,
		SessionID:  sessionID,
		QuestionID: req.QuestionID,
		IsCorrect:  req.IsCorrect,
	}
	if req.SelectedAnswer != nil {
		answer.SelectedAnswer = *req.SelectedAnswer
	}

	session.CurrentQuestion++
	if answer.IsCorrect {
		session.Score++
	}
	if session.CurrentQuestion >= session.TotalQuestions {
		session.CurrentQuestion = session.TotalQuestions
		session.IsCompleted = true
	}

	answers.Answers = append(answers.Answers, answer)
	prev := sessions.Sessions[i]
	sessions.Sessions[i] = session
	// The answer and the session advance commit together.
	err = s.store.SetMany(ctx, map[string]any{keyAnswers: answers, keySessions: sessions})
	if err != nil {
		return models.QuizAnswer{}, prev, fmt.Errorf("save answer: %w", err)
	}
	return answer, session, nil
}

func (s *Service) AnswersBySession(ctx context.Context, sessionID int64) ([]models.QuizAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadAnswers(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.QuizAnswer{}
	for _, a := range c.Answers {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*100 + total/2) / total
}

func (s *Service) CreateStat(ctx context.Context, req models.CreateQuizStatRequest) (models.QuizStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loadUserStats(ctx)
	if err != nil {
		return models.QuizStat{}, err
	}

	b.NextStatID++
	stat := models.QuizStat{
		ID:             b.NextStatID,
		Date:           s.now().UTC(),
		ChapterTitle:   req.ChapterTitle,
		SubjectTitle:   req.SubjectTitle,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Percentage:     req.Percentage,
	}
	if req.Date != nil {
		stat.Date = req.Date.UTC()
	}
	if stat.Percentage == 0 {
		stat.Percentage = percentage(stat.Score, stat.TotalQuestions)
	}
	b.QuizStats = append(b.QuizStats, stat)

	if err := s.store.Set(ctx, keyUserStats, b); err != nil {
		return models.QuizStat{}, fmt.Errorf("save user stats: %w", err)
	}
	return stat, nil
}

func (s *Service) UserStats(ctx context.Context) (models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loadUserStats(ctx)
	if err != nil {
		return models.UserStats{}, err
	}
	return b.UserStats, nil
}

func (s *Service) UpdateUserStats(ctx context.Context, patch models.UserStatsPatch) (models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loadUserStats(ctx)
	if err != nil {
		return models.UserStats{}, err
	}
	if patch.TotalQuestionsSolved != nil {
		b.TotalQuestionsSolved = *patch.TotalQuestionsSolved
	}
	if patch.TotalCorrectAnswers != nil {
		b.TotalCorrectAnswers = *patch.TotalCorrectAnswers
	}
	if patch.StudyStreak != nil {
		b.StudyStreak = *patch.StudyStreak
	}
	if patch.TotalStudyTimeMinutes != nil {
		b.TotalStudyTimeMinutes = *patch.TotalStudyTimeMinutes
	}

	if err := s.store.Set(ctx, keyUserStats, b); err != nil {
		return models.UserStats{}, fmt.Errorf("save user stats: %w", err)
	}
	return b.UserStats, nil
}

// Clear drops every quiz collection.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, keySessions, keyAnswers, keyUserStats); err != nil {
		return fmt.Errorf("clear quiz data: %w", err)
	}
	return nil
}
