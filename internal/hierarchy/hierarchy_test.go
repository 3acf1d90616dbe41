package hierarchy

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"
	"time"

	"neetprep-backend/internal/models"
)

func paths(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Path)
	}
	sort.Strings(out)
	return out
}

func names(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	sort.Strings(out)
	return out
}

func TestListing_DirectChildrenOnly(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "a", Type: TypeFolder, Path: "/a"},
		{ID: 2, Name: "b", Type: models.FileTypePDF, Path: "/a/b"},
		{ID: 3, Name: "c", Type: models.FileTypePDF, Path: "/c"},
	}

	tests := []struct {
		name        string
		currentPath string
		expected    []string
	}{
		{"root", "/", []string{"/a", "/c"}},
		{"inside a", "/a/", []string{"/a/b"}},
		{"empty folder", "/c/", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := paths(Listing(items, tc.currentPath, ""))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestListing_SearchIsCaseInsensitive(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "Notes", Path: "/Notes"},
		{ID: 2, Name: "notes2", Path: "/notes2"},
		{ID: 3, Name: "Other", Path: "/Other"},
	}

	got := names(Listing(items, "/", "note"))
	want := []string{"Notes", "notes2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if all := Listing(items, "/", ""); len(all) != 3 {
		t.Errorf("Expected empty query to match all, got %d", len(all))
	}
}

func TestListing_ExcludesRelativePaths(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "orphan", Path: "orphan"},
		{ID: 2, Name: "nested", Path: "a/orphan"},
		{ID: 3, Name: "empty", Path: ""},
		{ID: 4, Name: "ok", Path: "/ok"},
	}

	for _, current := range []string{"/", "/a/", ""} {
		for _, it := range Listing(items, current, "") {
			if it.Path == "" || it.Path[0] != '/' {
				t.Errorf("Path %q listed under %q", it.Path, current)
			}
		}
	}
}

func TestListing_DuplicatesKept(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "physics", Type: TypeFolder, Path: "/physics"},
		{ID: 2, Name: "physics", Type: TypeFolder, Path: "/physics"},
	}
	if got := Listing(items, "/", ""); len(got) != 2 {
		t.Errorf("Expected duplicates listed separately, got %d", len(got))
	}
}

func TestMerge_FoldersFirst(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	folders := []models.Folder{{ID: 10, Name: "physics", Path: "/physics", CreatedAt: now}}
	files := []models.File{
		{ID: 1, Name: "a.pdf", Type: models.FileTypePDF, Size: "1.0 KB", Path: "/a.pdf", CreatedAt: now},
		{ID: 2, Name: "b.png", Type: models.FileTypeImage, Path: "/b.png", CreatedAt: now},
	}

	items := Merge(folders, files)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if !items[0].IsFolder() || items[0].ID != 10 {
		t.Errorf("Expected folder first, got %+v", items[0])
	}
	if items[1].Size != "1.0 KB" || items[2].Type != models.FileTypeImage {
		t.Errorf("File fields not carried over: %+v", items[1:])
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"enter", Enter(Item{Path: "/a"}), "/a/"},
		{"back two levels", Back("/a/b/"), "/a/"},
		{"back one level", Back("/a/"), "/"},
		{"back at root", Back("/"), "/"},
		{"back empty", Back(""), "/"},
		{"clean empty", Clean(""), "/"},
		{"clean relative", Clean("a/b"), "/a/b/"},
		{"clean doubled", Clean("//a//b"), "/a/b/"},
		{"clean root", Clean("/"), "/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, tc.got)
			}
		})
	}
}

func TestBreadcrumbs(t *testing.T) {
	got := Breadcrumbs("/physics/optics/")
	want := []Crumb{{Name: "physics", Path: "/physics/"}, {Name: "optics", Path: "/physics/optics/"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if len(Breadcrumbs("/")) != 0 {
		t.Error("Expected no crumbs at root")
	}
}

func TestNewPaths(t *testing.T) {
	if got := FolderPath("/", "Organic  Chemistry Notes"); got != "/organic-chemistry-notes" {
		t.Errorf("Unexpected folder path %q", got)
	}
	if got := FilePath("/physics/", "Laws.pdf"); got != "/physics/Laws.pdf" {
		t.Errorf("Unexpected file path %q", got)
	}

	// A created folder shows up in the listing of the path it was created in.
	folder := Item{Type: TypeFolder, Name: "My Notes", Path: FolderPath("/physics/", "My Notes")}
	if got := Listing([]Item{folder}, "/physics/", ""); len(got) != 1 {
		t.Errorf("Expected new folder listed, got %v", got)
	}
	if Enter(folder) != "/physics/my-notes/" {
		t.Errorf("Unexpected enter path %q", Enter(folder))
	}
}

func TestNewFileRequest(t *testing.T) {
	req := NewFileRequest("/physics/", "diagram.png", "image/png", 12800)
	if req.Type != models.FileTypeImage || req.Path != "/physics/diagram.png" {
		t.Errorf("Unexpected request: %+v", req)
	}
	if req.Size == nil || *req.Size != "12.5 KB" {
		t.Errorf("Unexpected size %v", req.Size)
	}

	for mime, want := range map[string]string{
		"application/pdf": models.FileTypePDF,
		"image/jpeg":      models.FileTypeImage,
		"text/plain":      models.FileTypeDocument,
		"":                models.FileTypeDocument,
	} {
		if got := FileType(mime); got != want {
			t.Errorf("FileType(%q) = %q, want %q", mime, got, want)
		}
	}
}

func TestBrowser(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "physics", Type: TypeFolder, Path: "/physics"},
		{ID: 2, Name: "optics", Type: TypeFolder, Path: "/physics/optics"},
		{ID: 3, Name: "lens.pdf", Type: models.FileTypePDF, Path: "/physics/optics/lens.pdf"},
		{ID: 4, Name: "readme.pdf", Type: models.FileTypePDF, Path: "/readme.pdf"},
	}
	b := NewBrowser(items)

	if b.Path() != "/" || len(b.List()) != 2 {
		t.Fatalf("Unexpected root state: %q %v", b.Path(), b.List())
	}

	if err := b.Enter(items[3]); err == nil {
		t.Error("Expected error entering a file")
	}
	if err := b.Enter(items[0]); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := b.Enter(items[1]); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if b.Path() != "/physics/optics/" {
		t.Errorf("Unexpected path %q", b.Path())
	}
	if got := b.List(); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Unexpected listing %v", got)
	}

	b.Search("xyz")
	if len(b.List()) != 0 {
		t.Error("Expected search to filter everything out")
	}
	b.Search("")

	b.Back()
	b.Back()
	b.Back()
	if b.Path() != "/" {
		t.Errorf("Expected root after backing out, got %q", b.Path())
	}

	b.Goto("physics")
	if b.Path() != "/physics/" || len(b.Breadcrumbs()) != 1 {
		t.Errorf("Unexpected state after Goto: %q", b.Path())
	}
}

func TestItem_JSONShape(t *testing.T) {
	it := Item{ID: 1, Name: "Physics", Type: TypeFolder, Path: "/physics", Modified: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if fields["modifiedDate"] != "2024-03-01T00:00:00Z" {
		t.Errorf("Expected modifiedDate key, got %s", data)
	}
	if _, ok := fields["size"]; ok {
		t.Errorf("Expected size omitted for folders, got %s", data)
	}
}
