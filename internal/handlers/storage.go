package handlers

import (
	"context"
	"errors"
	"net/http"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
	"neetprep-backend/internal/repository"
)

type FileStore interface {
	List(ctx context.Context) ([]models.FileRecord, error)
	Create(ctx context.Context, f *models.FileRecord) error
	Delete(ctx context.Context, id int64) error
}

type FolderStore interface {
	List(ctx context.Context) ([]models.FolderRecord, error)
	Create(ctx context.Context, f *models.FolderRecord) error
	Delete(ctx context.Context, id int64) error
}

// StorageHandler serves file and folder metadata. Paths are stored as given.
type StorageHandler struct {
	files   FileStore
	folders FolderStore
	log     *logger.Logger
}

func NewStorageHandler(files FileStore, folders FolderStore, log *logger.Logger) *StorageHandler {
	return &StorageHandler{files: files, folders: folders, log: log}
}

func (h *StorageHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.files.List(r.Context())
	if err != nil {
		internalError(w, r, h.log, "Failed to fetch files", err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (h *StorageHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	file := &models.FileRecord{Name: req.Name, Type: req.Type, Size: req.Size, Path: req.Path}
	if err := h.files.Create(r.Context(), file); err != nil {
		internalError(w, r, h.log, "Failed to create file", err)
		return
	}
	writeJSON(w, http.StatusCreated, file)
}

func (h *StorageHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.files.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "File not found", r))
			return
		}
		internalError(w, r, h.log, "Failed to delete file", err)
		return
	}
	writeSuccess(w)
}

func (h *StorageHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folders.List(r.Context())
	if err != nil {
		internalError(w, r, h.log, "Failed to fetch folders", err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (h *StorageHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFolderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	folder := &models.FolderRecord{Name: req.Name, Path: req.Path}
	if err := h.folders.Create(r.Context(), folder); err != nil {
		internalError(w, r, h.log, "Failed to create folder", err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (h *StorageHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.folders.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Folder not found", r))
			return
		}
		internalError(w, r, h.log, "Failed to delete folder", err)
		return
	}
	writeSuccess(w)
}
