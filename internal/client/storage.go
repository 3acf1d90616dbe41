package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"neetprep-backend/internal/hierarchy"
	"neetprep-backend/internal/models"
)

func (c *Client) Files(ctx context.Context) []models.File {
	var records []models.FileRecord
	if err := c.get(ctx, "list files", "/api/files", &records); err != nil {
		return []models.File{}
	}
	out := make([]models.File, 0, len(records))
	for _, r := range records {
		out = append(out, models.FileFromRecord(r))
	}
	return out
}

func (c *Client) CreateFile(ctx context.Context, req models.CreateFileRequest) (models.File, error) {
	var rec models.FileRecord
	if err := c.create(ctx, "file", "/api/files", req, &rec); err != nil {
		return models.File{}, err
	}
	return models.FileFromRecord(rec), nil
}

func (c *Client) DeleteFile(ctx context.Context, id int64) Result {
	return c.delete(ctx, "file", id, fmt.Sprintf("/api/files/%d", id))
}

func (c *Client) Folders(ctx context.Context) []models.Folder {
	var records []models.FolderRecord
	if err := c.get(ctx, "list folders", "/api/folders", &records); err != nil {
		return []models.Folder{}
	}
	out := make([]models.Folder, 0, len(records))
	for _, r := range records {
		out = append(out, models.FolderFromRecord(r))
	}
	return out
}

func (c *Client) CreateFolder(ctx context.Context, req models.CreateFolderRequest) (models.Folder, error) {
	var rec models.FolderRecord
	if err := c.create(ctx, "folder", "/api/folders", req, &rec); err != nil {
		return models.Folder{}, err
	}
	return models.FolderFromRecord(rec), nil
}

func (c *Client) DeleteFolder(ctx context.Context, id int64) Result {
	return c.delete(ctx, "folder", id, fmt.Sprintf("/api/folders/%d", id))
}

// StorageItems fetches folders and files together and merges them for the
// hierarchy view, folders first.
func (c *Client) StorageItems(ctx context.Context) []hierarchy.Item {
	var (
		folders []models.Folder
		files   []models.File
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		folders = c.Folders(gctx)
		return nil
	})
	g.Go(func() error {
		files = c.Files(gctx)
		return nil
	})
	// Reads fail soft, so no goroutine returns an error.
	g.Wait()
	return hierarchy.Merge(folders, files)
}

// ──── Chat ────

func (c *Client) Messages(ctx context.Context) []models.Message {
	var records []models.MessageRecord
	if err := c.get(ctx, "list messages", "/api/messages", &records); err != nil {
		return []models.Message{}
	}
	out := make([]models.Message, 0, len(records))
	for _, r := range records {
		out = append(out, models.MessageFromRecord(r))
	}
	return out
}

// CreateMessage stores text from sender; an empty sender means the user.
func (c *Client) CreateMessage(ctx context.Context, text, sender string) (models.Message, error) {
	var rec models.MessageRecord
	req := models.CreateMessageRequest{Text: text, Sender: sender}
	if err := c.create(ctx, "message", "/api/messages", req, &rec); err != nil {
		return models.Message{}, err
	}
	return models.MessageFromRecord(rec), nil
}

func (c *Client) ClearMessages(ctx context.Context) Result {
	return c.delete(ctx, "messages", 0, "/api/messages")
}
