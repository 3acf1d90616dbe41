package models

import "time"

type QuizSession struct {
	ID              int64     `json:"id"`
	ChapterID       int64     `json:"chapterId"`
	TotalQuestions  int       `json:"totalQuestions"`
	CurrentQuestion int       `json:"currentQuestion"`
	Score           int       `json:"score"`
	IsCompleted     bool      `json:"isCompleted"`
	CreatedAt       time.Time `json:"createdAt"`
}

type QuizAnswer struct {
	ID             int64 `json:"id"`
	SessionID      int64 `json:"sessionId"`
	QuestionID     int64 `json:"questionId"`
	SelectedAnswer int   `json:"selectedAnswer"`
	IsCorrect      bool  `json:"isCorrect"`
}

type QuizStat struct {
	ID             int64     `json:"id"`
	Date           time.Time `json:"date"`
	ChapterTitle   string    `json:"chapterTitle"`
	SubjectTitle   string    `json:"subjectTitle"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
}

type UserStats struct {
	TotalQuestionsSolved  int        `json:"totalQuestionsSolved"`
	TotalCorrectAnswers   int        `json:"totalCorrectAnswers"`
	StudyStreak           int        `json:"studyStreak"`
	TotalStudyTimeMinutes int        `json:"totalStudyTimeMinutes"`
	QuizStats             []QuizStat `json:"quizStats"`
}

type CreateQuizSessionRequest struct {
	ChapterID      int64 `json:"chapterId" validate:"required,gt=0"`
	TotalQuestions int   `json:"totalQuestions" validate:"required,gt=0"`
}

// QuizSessionPatch carries only the fields being changed.
type QuizSessionPatch struct {
	CurrentQuestion *int  `json:"currentQuestion,omitempty" validate:"omitempty,min=0"`
	Score           *int  `json:"score,omitempty" validate:"omitempty,min=0"`
	IsCompleted     *bool `json:"isCompleted,omitempty"`
}

type RecordAnswerRequest struct {
	QuestionID     int64 `json:"questionId" validate:"required,gt=0"`
	SelectedAnswer *int  `json:"selectedAnswer" validate:"required,min=0,max=3"`
	IsCorrect      bool  `json:"isCorrect"`
}

type CreateQuizStatRequest struct {
	Date           *time.Time `json:"date,omitempty"`
	ChapterTitle   string     `json:"chapterTitle" validate:"required"`
	SubjectTitle   string     `json:"subjectTitle"`
	Score          int        `json:"score" validate:"min=0,ltefield=TotalQuestions"`
	TotalQuestions int        `json:"totalQuestions" validate:"required,gt=0"`
	Percentage     int        `json:"percentage" validate:"min=0,max=100"`
}

type UserStatsPatch struct {
	TotalQuestionsSolved  *int `json:"totalQuestionsSolved,omitempty" validate:"omitempty,min=0"`
	TotalCorrectAnswers   *int `json:"totalCorrectAnswers,omitempty" validate:"omitempty,min=0"`
	StudyStreak           *int `json:"studyStreak,omitempty" validate:"omitempty,min=0"`
	TotalStudyTimeMinutes *int `json:"totalStudyTimeMinutes,omitempty" validate:"omitempty,min=0"`
}

type RecordAnswerResponse struct {
	Answer  QuizAnswer  `json:"answer"`
	Session QuizSession `json:"session"`
}
