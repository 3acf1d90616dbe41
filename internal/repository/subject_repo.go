package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"neetprep-backend/internal/models"
)

// seedLockKey serialises default-subject seeding across processes.
const seedLockKey = 7301

type SubjectRepo struct {
	pool *pgxpool.Pool
}

func NewSubjectRepo(pool *pgxpool.Pool) *SubjectRepo {
	return &SubjectRepo{pool: pool}
}

func (r *SubjectRepo) List(ctx context.Context) ([]models.SubjectRecord, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name, color, created_at FROM subjects ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.SubjectRecord{}
	for rows.Next() {
		var s models.SubjectRecord
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepo) Create(ctx context.Context, s *models.SubjectRecord) error {
	err := r.pool.QueryRow(ctx,
		"INSERT INTO subjects (name, color) VALUES ($1, $2) RETURNING id, created_at",
		s.Name, s.Color,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create subject: %w", mapError(err))
	}
	return nil
}

func (r *SubjectRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM subjects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertDefaultsIfEmpty inserts defaults only when no subject exists yet and
// reports how many rows it created.
func (r *SubjectRepo) InsertDefaultsIfEmpty(ctx context.Context, defaults []models.CreateSubjectRequest) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", seedLockKey); err != nil {
		return 0, fmt.Errorf("lock seed: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM subjects").Scan(&count); err != nil {
		return 0, fmt.Errorf("count subjects: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, d := range defaults {
		if _, err := tx.Exec(ctx, "INSERT INTO subjects (name, color) VALUES ($1, $2)", d.Name, d.Color); err != nil {
			return 0, fmt.Errorf("insert default subject %s: %w", d.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(defaults), nil
}
