package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"neetprep-backend/internal/models"
)

const chapterColumns = "id, subject_id, title, description, difficulty, progress, total_questions, created_at"

type ChapterRepo struct {
	pool *pgxpool.Pool
}

func NewChapterRepo(pool *pgxpool.Pool) *ChapterRepo {
	return &ChapterRepo{pool: pool}
}

func scanChapter(row pgx.Row, c *models.ChapterRecord) error {
	return row.Scan(&c.ID, &c.SubjectID, &c.Title, &c.Description, &c.Difficulty, &c.Progress, &c.TotalQuestions, &c.CreatedAt)
}

func (r *ChapterRepo) list(ctx context.Context, query string, args ...any) ([]models.ChapterRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []models.ChapterRecord{}
	for rows.Next() {
		var c models.ChapterRecord
		if err := scanChapter(rows, &c); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

func (r *ChapterRepo) List(ctx context.Context) ([]models.ChapterRecord, error) {
	return r.list(ctx, "SELECT "+chapterColumns+" FROM chapters ORDER BY id")
}

func (r *ChapterRepo) ListBySubject(ctx context.Context, subjectID int64) ([]models.ChapterRecord, error) {
	return r.list(ctx, "SELECT "+chapterColumns+" FROM chapters WHERE subject_id = $1 ORDER BY id", subjectID)
}

func (r *ChapterRepo) GetByID(ctx context.Context, id int64) (*models.ChapterRecord, error) {
	c := &models.ChapterRecord{}
	row := r.pool.QueryRow(ctx, "SELECT "+chapterColumns+" FROM chapters WHERE id = $1", id)
	if err := scanChapter(row, c); err != nil {
		return nil, fmt.Errorf("get chapter %d: %w", id, mapError(err))
	}
	return c, nil
}

func (r *ChapterRepo) Create(ctx context.Context, c *models.ChapterRecord) error {
	query := `INSERT INTO chapters (subject_id, title, description, difficulty, progress)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, total_questions, created_at`

	err := r.pool.QueryRow(ctx, query,
		c.SubjectID, c.Title, c.Description, c.Difficulty, c.Progress,
	).Scan(&c.ID, &c.TotalQuestions, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create chapter: %w", mapError(err))
	}
	return nil
}

// Delete removes the chapter; its questions go with it through the foreign key.
func (r *ChapterRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM chapters WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
