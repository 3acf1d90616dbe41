// Package hierarchy derives a navigable directory listing from the flat file
// and folder records. Nothing here touches storage.
package hierarchy

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"neetprep-backend/internal/models"
)

const (
	Root       = "/"
	TypeFolder = "folder"
)

// Item is one entry of a listing. Type is "folder" or the file type.
type Item struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Path     string    `json:"path"`
	Size     string    `json:"size,omitempty"`
	Modified time.Time `json:"modifiedDate"`
}

func (it Item) IsFolder() bool { return it.Type == TypeFolder }

// Crumb is one breadcrumb: a segment name and the current path it opens.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Merge puts folders first, then files, keeping the input order of each.
func Merge(folders []models.Folder, files []models.File) []Item {
	items := make([]Item, 0, len(folders)+len(files))
	for _, f := range folders {
		items = append(items, Item{ID: f.ID, Name: f.Name, Type: TypeFolder, Path: f.Path, Modified: f.CreatedAt})
	}
	for _, f := range files {
		items = append(items, Item{ID: f.ID, Name: f.Name, Type: f.Type, Path: f.Path, Size: f.Size, Modified: f.CreatedAt})
	}
	return items
}

// InListing reports whether path is a direct child of currentPath: it starts
// with currentPath and the rest has no further separator.
func InListing(path, currentPath string) bool {
	if !strings.HasPrefix(path, currentPath) {
		return false
	}
	return !strings.Contains(path[len(currentPath):], "/")
}

// Listing returns the direct children of currentPath whose name contains query,
// ignoring case. An empty query matches everything.
func Listing(items []Item, currentPath, query string) []Item {
	q := strings.ToLower(query)
	out := []Item{}
	for _, it := range items {
		if !strings.HasPrefix(it.Path, Root) || !InListing(it.Path, currentPath) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Enter is the current path inside folder.
func Enter(folder Item) string {
	return folder.Path + "/"
}

// Back drops the last non-empty segment. The root stays the root.
func Back(currentPath string) string {
	segments := Segments(currentPath)
	if len(segments) <= 1 {
		return Root
	}
	return Root + strings.Join(segments[:len(segments)-1], "/") + "/"
}

// Segments splits p on "/" and drops empty parts.
func Segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Clean turns any input into a well-formed current path: "/" or "/a/b/".
func Clean(p string) string {
	segments := Segments(p)
	if len(segments) == 0 {
		return Root
	}
	return Root + strings.Join(segments, "/") + "/"
}

// Breadcrumbs lists every segment of currentPath from the root down.
func Breadcrumbs(currentPath string) []Crumb {
	segments := Segments(currentPath)
	crumbs := make([]Crumb, 0, len(segments))
	path := Root
	for _, s := range segments {
		path += s + "/"
		crumbs = append(crumbs, Crumb{Name: s, Path: path})
	}
	return crumbs
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// FolderPath is where a new folder named name lands under currentPath. The
// name is lower-cased and whitespace runs become "-".
func FolderPath(currentPath, name string) string {
	return currentPath + whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// FilePath is where a new file named name lands under currentPath.
func FilePath(currentPath, name string) string {
	return currentPath + name
}

// FileType maps a MIME type onto the stored file types.
func FileType(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "image"):
		return models.FileTypeImage
	case strings.Contains(mimeType, "pdf"):
		return models.FileTypePDF
	default:
		return models.FileTypeDocument
	}
}

// FormatSize renders a byte count the way listings show it, e.g. "12.5 KB".
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
}

// NewFolderRequest builds the create payload for a folder under currentPath.
func NewFolderRequest(currentPath, name string) models.CreateFolderRequest {
	return models.CreateFolderRequest{Name: name, Path: FolderPath(currentPath, name)}
}

// NewFileRequest builds the create payload for an uploaded file under
// currentPath.
func NewFileRequest(currentPath, name, mimeType string, bytes int64) models.CreateFileRequest {
	size := FormatSize(bytes)
	return models.CreateFileRequest{
		Name: name,
		Type: FileType(mimeType),
		Size: &size,
		Path: FilePath(currentPath, name),
	}
}
