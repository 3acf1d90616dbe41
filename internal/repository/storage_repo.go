package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"neetprep-backend/internal/models"
)

type FileRepo struct {
	pool *pgxpool.Pool
}

func NewFileRepo(pool *pgxpool.Pool) *FileRepo {
	return &FileRepo{pool: pool}
}

// List returns the newest files first.
func (r *FileRepo) List(ctx context.Context) ([]models.FileRecord, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name, type, size, path, created_at FROM files ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []models.FileRecord{}
	for rows.Next() {
		var f models.FileRecord
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.Size, &f.Path, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *FileRepo) Create(ctx context.Context, f *models.FileRecord) error {
	err := r.pool.QueryRow(ctx,
		"INSERT INTO files (name, type, size, path) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		f.Name, f.Type, f.Size, f.Path,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create file: %w", mapError(err))
	}
	return nil
}

func (r *FileRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM files WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type FolderRepo struct {
	pool *pgxpool.Pool
}

func NewFolderRepo(pool *pgxpool.Pool) *FolderRepo {
	return &FolderRepo{pool: pool}
}

func (r *FolderRepo) List(ctx context.Context) ([]models.FolderRecord, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name, path, created_at FROM folders ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.FolderRecord{}
	for rows.Next() {
		var f models.FolderRecord
		if err := rows.Scan(&f.ID, &f.Name, &f.Path, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (r *FolderRepo) Create(ctx context.Context, f *models.FolderRecord) error {
	err := r.pool.QueryRow(ctx,
		"INSERT INTO folders (name, path) VALUES ($1, $2) RETURNING id, created_at",
		f.Name, f.Path,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create folder: %w", mapError(err))
	}
	return nil
}

func (r *FolderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM folders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
