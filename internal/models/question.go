package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	OptionCount        = 4
	DefaultExplanation = "No explanation provided"
)

var ErrOptionCount = errors.New("a question needs exactly 4 options")

// QuestionRecord stores the four options as discrete fields.
type QuestionRecord struct {
	ID            int64     `json:"id"`
	ChapterID     int64     `json:"chapterId"`
	Question      string    `json:"question"`
	OptionA       string    `json:"optionA"`
	OptionB       string    `json:"optionB"`
	OptionC       string    `json:"optionC"`
	OptionD       string    `json:"optionD"`
	CorrectAnswer int       `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Question is the caller-facing shape: Options[CorrectAnswer] is the right one.
type Question struct {
	ID            int64    `json:"id"`
	ChapterID     int64    `json:"chapterId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type QuestionInput struct {
	Question      string `json:"question" validate:"required"`
	OptionA       string `json:"optionA" validate:"required"`
	OptionB       string `json:"optionB" validate:"required"`
	OptionC       string `json:"optionC" validate:"required"`
	OptionD       string `json:"optionD" validate:"required"`
	CorrectAnswer *int   `json:"correctAnswer" validate:"required,min=0,max=3"`
	Explanation   string `json:"explanation"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type BulkQuestionsRequest struct {
	ChapterID int64           `json:"chapterId" validate:"required,gt=0"`
	Questions []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type BulkQuestionsResponse struct {
	Success      bool             `json:"success"`
	CreatedCount int              `json:"created_count"`
	Questions    []QuestionRecord `json:"questions"`
}

func (in *QuestionInput) ApplyDefaults() {
	if in.Explanation == "" {
		in.Explanation = DefaultExplanation
	}
	if in.Difficulty == "" {
		in.Difficulty = DifficultyMedium
	}
}

// Record builds the row to insert under chapterID. Call after validation.
func (in QuestionInput) Record(chapterID int64) QuestionRecord {
	rec := QuestionRecord{
		ChapterID:   chapterID,
		Question:    in.Question,
		OptionA:     in.OptionA,
		OptionB:     in.OptionB,
		OptionC:     in.OptionC,
		OptionD:     in.OptionD,
		Explanation: in.Explanation,
		Difficulty:  in.Difficulty,
	}
	if in.CorrectAnswer != nil {
		rec.CorrectAnswer = *in.CorrectAnswer
	}
	return rec
}

// Input is the inverse of QuestionInput.Record.
func (r QuestionRecord) Input() QuestionInput {
	correct := r.CorrectAnswer
	return QuestionInput{
		Question:      r.Question,
		OptionA:       r.OptionA,
		OptionB:       r.OptionB,
		OptionC:       r.OptionC,
		OptionD:       r.OptionD,
		CorrectAnswer: &correct,
		Explanation:   r.Explanation,
		Difficulty:    r.Difficulty,
	}
}

func QuestionFromRecord(r QuestionRecord) Question {
	return Question{
		ID:            r.ID,
		ChapterID:     r.ChapterID,
		Question:      r.Question,
		Options:       []string{r.OptionA, r.OptionB, r.OptionC, r.OptionD},
		CorrectAnswer: r.CorrectAnswer,
		Explanation:   r.Explanation,
		Difficulty:    r.Difficulty,
	}
}

func NewQuestionRecord(q Question) (QuestionRecord, error) {
	if len(q.Options) != OptionCount {
		return QuestionRecord{}, fmt.Errorf("%w: got %d", ErrOptionCount, len(q.Options))
	}
	return QuestionRecord{
		ID:            q.ID,
		ChapterID:     q.ChapterID,
		Question:      q.Question,
		OptionA:       q.Options[0],
		OptionB:       q.Options[1],
		OptionC:       q.Options[2],
		OptionD:       q.Options[3],
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
	}, nil
}
