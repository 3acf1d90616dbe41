// Package client is the typed access layer over the REST API. Reads fail soft
// to empty results, creates return errors and deletes return a Result.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusError is a non-2xx reply with the server's message, if any.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.status, e.message)
}

func serverMessage(status int, body []byte) string {
	var resp models.ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		if resp.Message != "" {
			return resp.Message
		}
		if resp.Error.Message != "" {
			return resp.Error.Message
		}
	}
	return http.StatusText(status)
}

// do sends one request. A transport failure comes back as a plain error and a
// non-2xx reply as *statusError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &statusError{status: resp.StatusCode, message: serverMessage(resp.StatusCode, data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// get performs a read and reports failure as *TransportError after logging it.
func (c *Client) get(ctx context.Context, op, path string, out interface{}) error {
	status, err := c.do(ctx, http.MethodGet, path, nil, out)
	if err == nil {
		return nil
	}
	terr := &TransportError{Op: op, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		terr.Status = status
	}
	c.log.Warn("Read failed, returning empty result", "op", op, "status", terr.Status, "error", err)
	return terr
}

func (c *Client) create(ctx context.Context, entity, path string, body, out interface{}) error {
	status, err := c.do(ctx, http.MethodPost, path, body, out)
	if err == nil {
		return nil
	}
	cerr := &CreationError{Entity: entity, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		cerr.Status = status
		cerr.Message = se.message
	}
	return cerr
}

func (c *Client) update(ctx context.Context, method, entity, path string, body, out interface{}) error {
	status, err := c.do(ctx, method, path, body, out)
	if err == nil {
		return nil
	}
	uerr := &UpdateError{Entity: entity, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		uerr.Status = status
		uerr.Message = se.message
	}
	return uerr
}

func (c *Client) delete(ctx context.Context, entity string, id int64, path string) Result {
	status, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	res := Result{OK: err == nil, Status: status, entity: entity, id: id}
	if err != nil {
		res.Reason = err.Error()
		var se *statusError
		if errors.As(err, &se) {
			res.Reason = se.message
		}
		c.log.Warn("Delete failed", "entity", entity, "id", id, "status", status, "reason", res.Reason)
	}
	return res
}
