package models

import "time"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type ChapterRecord struct {
	ID             int64     `json:"id"`
	SubjectID      int64     `json:"subjectId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	Progress       int       `json:"progress"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Chapter struct {
	ID             int64     `json:"id"`
	SubjectID      int64     `json:"subjectId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	Progress       int       `json:"progress"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CreateChapterRequest struct {
	SubjectID   int64  `json:"subjectId" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Progress    int    `json:"progress" validate:"min=0,max=100"`
}

func (r *CreateChapterRequest) ApplyDefaults() {
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
}

func ChapterFromRecord(r ChapterRecord) Chapter {
	return Chapter{
		ID:             r.ID,
		SubjectID:      r.SubjectID,
		Title:          r.Title,
		Description:    r.Description,
		Difficulty:     r.Difficulty,
		Progress:       r.Progress,
		TotalQuestions: r.TotalQuestions,
		CreatedAt:      r.CreatedAt,
	}
}

func (c Chapter) Record() ChapterRecord {
	return ChapterRecord{
		ID:             c.ID,
		SubjectID:      c.SubjectID,
		Title:          c.Title,
		Description:    c.Description,
		Difficulty:     c.Difficulty,
		Progress:       c.Progress,
		TotalQuestions: c.TotalQuestions,
		CreatedAt:      c.CreatedAt,
	}
}
