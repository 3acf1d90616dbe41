package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"neetprep-backend/internal/models"
)

type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

func (r *QuestionRepo) ListByChapter(ctx context.Context, chapterID int64) ([]models.QuestionRecord, error) {
	query := `SELECT id, chapter_id, question, option_a, option_b, option_c, option_d,
		correct_answer, explanation, difficulty, created_at
		FROM questions WHERE chapter_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := []models.QuestionRecord{}
	for rows.Next() {
		var q models.QuestionRecord
		err := rows.Scan(&q.ID, &q.ChapterID, &q.Question, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectAnswer, &q.Explanation, &q.Difficulty, &q.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// lockChapter takes a row lock on the chapter so concurrent writers recount
// in turn.
func lockChapter(ctx context.Context, tx pgx.Tx, chapterID int64) error {
	var id int64
	err := tx.QueryRow(ctx, "SELECT id FROM chapters WHERE id = $1 FOR UPDATE", chapterID).Scan(&id)
	return mapError(err)
}

func recountChapter(ctx context.Context, tx pgx.Tx, chapterID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE chapters SET total_questions = (SELECT COUNT(*) FROM questions WHERE chapter_id = $1)
		WHERE id = $1`, chapterID)
	return err
}

// CreateBulk inserts every question under chapterID and refreshes the
// chapter's total_questions in the same transaction. Either all rows land or
// none do.
func (r *QuestionRepo) CreateBulk(ctx context.Context, chapterID int64, questions []models.QuestionRecord) ([]models.QuestionRecord, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockChapter(ctx, tx, chapterID); err != nil {
		return nil, fmt.Errorf("lock chapter %d: %w", chapterID, err)
	}

	query := `INSERT INTO questions (chapter_id, question, option_a, option_b, option_c, option_d,
		correct_answer, explanation, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at`

	created := make([]models.QuestionRecord, 0, len(questions))
	for _, q := range questions {
		q.ChapterID = chapterID
		err := tx.QueryRow(ctx, query,
			q.ChapterID, q.Question, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
			q.CorrectAnswer, q.Explanation, q.Difficulty,
		).Scan(&q.ID, &q.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert question: %w", mapError(err))
		}
		created = append(created, q)
	}

	if err := recountChapter(ctx, tx, chapterID); err != nil {
		return nil, fmt.Errorf("recount chapter %d: %w", chapterID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit bulk insert: %w", err)
	}
	return created, nil
}

// Delete removes one question and refreshes its chapter's counter.
func (r *QuestionRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin question delete: %w", err)
	}
	defer tx.Rollback(ctx)

	var chapterID int64
	if err := tx.QueryRow(ctx, "SELECT chapter_id FROM questions WHERE id = $1", id).Scan(&chapterID); err != nil {
		return fmt.Errorf("find question %d: %w", id, mapError(err))
	}
	if err := lockChapter(ctx, tx, chapterID); err != nil {
		return fmt.Errorf("lock chapter %d: %w", chapterID, err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := recountChapter(ctx, tx, chapterID); err != nil {
		return fmt.Errorf("recount chapter %d: %w", chapterID, err)
	}
	return tx.Commit(ctx)
}
