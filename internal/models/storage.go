package models

import "time"

const (
	FileTypePDF      = "pdf"
	FileTypeImage    = "image"
	FileTypeDocument = "document"
)

type FileRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Size      *string   `json:"size,omitempty"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

type File struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Size      string    `json:"size,omitempty"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateFileRequest struct {
	Name string  `json:"name" validate:"required,max=255"`
	Type string  `json:"type" validate:"required,oneof=pdf image document"`
	Size *string `json:"size,omitempty" validate:"omitempty,max=50"`
	Path string  `json:"path" validate:"required"`
}

type FolderRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

type Folder struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateFolderRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Path string `json:"path" validate:"required"`
}

func FileFromRecord(r FileRecord) File {
	f := File{ID: r.ID, Name: r.Name, Type: r.Type, Path: r.Path, CreatedAt: r.CreatedAt}
	if r.Size != nil {
		f.Size = *r.Size
	}
	return f
}

func (f File) Record() FileRecord {
	r := FileRecord{ID: f.ID, Name: f.Name, Type: f.Type, Path: f.Path, CreatedAt: f.CreatedAt}
	if f.Size != "" {
		size := f.Size
		r.Size = &size
	}
	return r
}

func FolderFromRecord(r FolderRecord) Folder {
	return Folder{ID: r.ID, Name: r.Name, Path: r.Path, CreatedAt: r.CreatedAt}
}

func (f Folder) Record() FolderRecord {
	return FolderRecord{ID: f.ID, Name: f.Name, Path: f.Path, CreatedAt: f.CreatedAt}
}
