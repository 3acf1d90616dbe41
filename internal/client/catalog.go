package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"neetprep-backend/internal/models"
)

// questionFanout bounds the per-chapter requests made by Questions.
const questionFanout = 4

// ──── Subjects ────

func (c *Client) Subjects(ctx context.Context) []models.Subject {
	var records []models.SubjectRecord
	if err := c.get(ctx, "list subjects", "/api/subjects", &records); err != nil {
		return []models.Subject{}
	}
	out := make([]models.Subject, 0, len(records))
	for _, r := range records {
		out = append(out, models.SubjectFromRecord(r))
	}
	return out
}

func (c *Client) CreateSubject(ctx context.Context, name, color string) (models.Subject, error) {
	var rec models.SubjectRecord
	req := models.CreateSubjectRequest{Name: name, Color: color}
	if err := c.create(ctx, "subject", "/api/subjects", req, &rec); err != nil {
		return models.Subject{}, err
	}
	return models.SubjectFromRecord(rec), nil
}

func (c *Client) DeleteSubject(ctx context.Context, id int64) Result {
	return c.delete(ctx, "subject", id, fmt.Sprintf("/api/subjects/%d", id))
}

// ──── Chapters ────

func (c *Client) Chapters(ctx context.Context) []models.Chapter {
	return c.chapters(ctx, "list chapters", "/api/chapters")
}

func (c *Client) ChaptersBySubject(ctx context.Context, subjectID int64) []models.Chapter {
	return c.chapters(ctx, "list subject chapters", fmt.Sprintf("/api/subjects/%d/chapters", subjectID))
}

func (c *Client) chapters(ctx context.Context, op, path string) []models.Chapter {
	var records []models.ChapterRecord
	if err := c.get(ctx, op, path, &records); err != nil {
		return []models.Chapter{}
	}
	out := make([]models.Chapter, 0, len(records))
	for _, r := range records {
		out = append(out, models.ChapterFromRecord(r))
	}
	return out
}

// ChapterByID looks the chapter up in the full list. A missing chapter and a
// failed read both report false.
func (c *Client) ChapterByID(ctx context.Context, id int64) (models.Chapter, bool) {
	for _, ch := range c.Chapters(ctx) {
		if ch.ID == id {
			return ch, true
		}
	}
	return models.Chapter{}, false
}

func (c *Client) CreateChapter(ctx context.Context, req models.CreateChapterRequest) (models.Chapter, error) {
	var rec models.ChapterRecord
	if err := c.create(ctx, "chapter", "/api/chapters", req, &rec); err != nil {
		return models.Chapter{}, err
	}
	return models.ChapterFromRecord(rec), nil
}

func (c *Client) DeleteChapter(ctx context.Context, id int64) Result {
	return c.delete(ctx, "chapter", id, fmt.Sprintf("/api/chapters/%d", id))
}

// ──── Questions ────

func (c *Client) QuestionsByChapter(ctx context.Context, chapterID int64) []models.Question {
	var records []models.QuestionRecord
	if err := c.get(ctx, "list questions", fmt.Sprintf("/api/questions/chapter/%d", chapterID), &records); err != nil {
		return []models.Question{}
	}
	out := make([]models.Question, 0, len(records))
	for _, r := range records {
		out = append(out, models.QuestionFromRecord(r))
	}
	return out
}

// Questions gathers every chapter's questions in chapter order. A chapter
// whose read fails contributes nothing.
func (c *Client) Questions(ctx context.Context) []models.Question {
	chapters := c.Chapters(ctx)
	perChapter := make([][]models.Question, len(chapters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(questionFanout)
	for i, ch := range chapters {
		g.Go(func() error {
			perChapter[i] = c.QuestionsByChapter(gctx, ch.ID)
			return nil
		})
	}
	// Reads fail soft, so no goroutine returns an error.
	g.Wait()

	out := []models.Question{}
	for _, qs := range perChapter {
		out = append(out, qs...)
	}
	return out
}

// CreateQuestion stores one question. The chapter's question counter is
// maintained by the server in the same transaction.
func (c *Client) CreateQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	created, err := c.CreateBulkQuestions(ctx, q.ChapterID, []models.Question{q})
	if err != nil {
		return models.Question{}, err
	}
	if len(created) != 1 {
		return models.Question{}, &CreationError{Entity: "question", Message: fmt.Sprintf("server created %d questions", len(created))}
	}
	return created[0], nil
}

// CreateBulkQuestions stores all questions under chapterID or none of them.
func (c *Client) CreateBulkQuestions(ctx context.Context, chapterID int64, questions []models.Question) ([]models.Question, error) {
	req := models.BulkQuestionsRequest{ChapterID: chapterID, Questions: make([]models.QuestionInput, 0, len(questions))}
	for i, q := range questions {
		rec, err := models.NewQuestionRecord(q)
		if err != nil {
			return nil, &CreationError{Entity: "question", Message: fmt.Sprintf("question %d: %v", i, err), Err: err}
		}
		req.Questions = append(req.Questions, rec.Input())
	}

	var resp models.BulkQuestionsResponse
	if err := c.create(ctx, "questions", "/api/questions/bulk", req, &resp); err != nil {
		return nil, err
	}

	out := make([]models.Question, 0, len(resp.Questions))
	for _, r := range resp.Questions {
		out = append(out, models.QuestionFromRecord(r))
	}
	return out, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id int64) Result {
	return c.delete(ctx, "question", id, fmt.Sprintf("/api/questions/%d", id))
}
