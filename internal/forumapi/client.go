// Package forumapi talks to the forum backend over HTTP.
package forumapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/mark3labs/chanforum/internal/wizard"
)

const (
	searchPath = "/api/v1/channels/search"
	boardsPath = "/api/v1/boards"

	// maxErrorBody caps how much of an error response is kept in error messages.
	maxErrorBody = 512
)

// Board is a forum board as listed by the backend.
type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ChannelID   string `json:"channel_id"`
	Subscribers int64  `json:"subscribers"`
	Slug        string `json:"slug,omitempty"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client is a forum backend client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for baseURL. An empty token sends no Authorization header.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// SearchChannels looks up channels matching handle. A client error status or an
// empty result body is reported as wizard.ErrRejected.
func (c *Client) SearchChannels(ctx context.Context, handle string) ([]wizard.Candidate, error) {
	q := url.Values{}
	q.Set("handle", handle)

	var cands []wizard.Candidate
	raw, err := c.do(ctx, http.MethodGet, searchPath+"?"+q.Encode(), nil, &cands)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
			return nil, fmt.Errorf("search channels %q: %w: %w", handle, wizard.ErrRejected, err)
		}
		return nil, fmt.Errorf("search channels %q: %w", handle, err)
	}
	if cands == nil {
		logger.Debug("forumapi: empty search response %q", strings.TrimSpace(string(raw)))
		return nil, fmt.Errorf("search channels %q: empty response: %w", handle, wizard.ErrRejected)
	}
	return cands, nil
}

// CreateForum asks the backend to create a forum for channelID. Conflict, not
// found and bad request statuses are reported as wizard.ErrRejected.
func (c *Client) CreateForum(ctx context.Context, channelID string) (struct{}, error) {
	body := map[string]string{"channel_id": channelID}
	if _, err := c.do(ctx, http.MethodPost, boardsPath, body, nil); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			switch se.Code {
			case http.StatusConflict, http.StatusNotFound, http.StatusBadRequest:
				return struct{}{}, fmt.Errorf("create forum %s: %w: %w", channelID, wizard.ErrRejected, err)
			}
		}
		return struct{}{}, fmt.Errorf("create forum %s: %w", channelID, err)
	}
	return struct{}{}, nil
}

// ListBoards returns every board. Boards without a slug get one derived from their name.
func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	var boards []Board
	if _, err := c.do(ctx, http.MethodGet, boardsPath, nil, &boards); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	for i := range boards {
		if boards[i].Slug == "" {
			boards[i].Slug = slug.Make(boards[i].Name)
		}
	}
	if boards == nil {
		boards = []Board{}
	}
	return boards, nil
}

// do sends the request and decodes a 2xx JSON body into out when out is non-nil.
// It returns the raw body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger.Debug("forumapi: %s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		msg = clip(msg, maxErrorBody)
		return raw, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: msg}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, fmt.Errorf("decode response: %w", err)
		}
	}
	return raw, nil
}

// clip shortens s to at most n bytes without splitting a UTF-8 sequence.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
