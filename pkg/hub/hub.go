// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

// Package hub downloads model files from a Hugging Face compatible hub and
// caches them in an artifact store.
package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/observability/logging"
)

const (
	// DefaultEndpoint is the public Hugging Face hub.
	DefaultEndpoint = "https://huggingface.co"
	// DefaultRevision is the branch files are resolved against.
	DefaultRevision = "main"

	// TokenizerFile is the fast-tokenizer definition shipped with HF models.
	TokenizerFile = "tokenizer.json"
)

var (
	// ErrNotFound is returned when the hub has no such model or file.
	ErrNotFound = errors.New("hub file not found")
	// ErrUnauthorized is returned for gated or private models without a
	// valid token.
	ErrUnauthorized = errors.New("hub access denied")
)

// Options configures a Client.
type Options struct {
	Endpoint   string // defaults to DefaultEndpoint
	Token      string // optional bearer token
	Revision   string // defaults to DefaultRevision
	Store      filestore.FileStore
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// Client fetches model files, serving repeat requests from the artifact
// store when one is configured.
type Client struct {
	endpoint   string
	token      string
	revision   string
	store      filestore.FileStore
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a hub client.
func NewClient(opts Options) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
		token:      opts.Token,
		revision:   opts.Revision,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.revision == "" {
		c.revision = DefaultRevision
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// Fetch returns the bytes of filename for modelID. A modelID naming a local
// directory is read from disk and never cached.
func (c *Client) Fetch(ctx context.Context, modelID, filename string) ([]byte, error) {
	if info, err := os.Stat(modelID); err == nil && info.IsDir() {
		data, err := os.ReadFile(filepath.Join(modelID, filename))
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s in %s: %w", filename, modelID, ErrNotFound)
		}
		return data, err
	}

	fileID := filestore.FileID(modelID, c.revision, filename)
	if data, ok := c.cached(ctx, fileID); ok {
		c.logger.Debug("artifact cache hit", "model", modelID, "file", filename)
		return data, nil
	}

	start := time.Now()
	data, err := c.download(ctx, modelID, filename)
	if err != nil {
		return nil, err
	}
	c.logger.Info("downloaded model file",
		"model", modelID,
		"file", filename,
		"bytes", len(data),
		"duration", time.Since(start),
	)

	if c.store != nil {
		err := c.store.PutFile(ctx, &filestore.File{
			ID:        fileID,
			ModelID:   modelID,
			Revision:  c.revision,
			Filename:  filename,
			MimeType:  mimeType(filename),
			Bytes:     int64(len(data)),
			SHA256:    filestore.Digest(data),
			Content:   data,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			// not fatal: the next load downloads again
			c.logger.Warn("failed to cache model file", "file_id", fileID, "error", err)
		}
	}
	return data, nil
}

// TokenizerJSON fetches the tokenizer definition of modelID.
func (c *Client) TokenizerJSON(ctx context.Context, modelID string) ([]byte, error) {
	return c.Fetch(ctx, modelID, TokenizerFile)
}

// Evict removes every cached file of modelID and reports how many were
// deleted.
func (c *Client) Evict(ctx context.Context, modelID string) (int, error) {
	if c.store == nil {
		return 0, nil
	}
	files, err := c.store.ListFiles(ctx, modelID)
	if err != nil {
		return 0, fmt.Errorf("list cached files: %w", err)
	}
	n := 0
	for _, f := range files {
		if err := c.store.DeleteFile(ctx, f.ID); err != nil && !errors.Is(err, filestore.ErrFileNotFound) {
			return n, fmt.Errorf("delete %s: %w", f.ID, err)
		}
		n++
	}
	return n, nil
}

// cached returns the stored content when it exists and matches its digest.
// Corrupt entries are dropped.
func (c *Client) cached(ctx context.Context, fileID string) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	meta, err := c.store.GetFile(ctx, fileID)
	if err != nil {
		if !errors.Is(err, filestore.ErrFileNotFound) {
			c.logger.Warn("artifact cache lookup failed", "file_id", fileID, "error", err)
		}
		return nil, false
	}
	data, err := c.store.GetFileContent(ctx, fileID)
	if err != nil {
		c.logger.Warn("artifact cache read failed", "file_id", fileID, "error", err)
		return nil, false
	}
	if meta.SHA256 != "" && filestore.Digest(data) != meta.SHA256 {
		c.logger.Warn("artifact digest mismatch, discarding", "file_id", fileID)
		_ = c.store.DeleteFile(ctx, fileID)
		return nil, false
	}
	return data, true
}

func (c *Client) resolveURL(modelID, filename string) string {
	return c.endpoint + "/" + path.Join(modelID, "resolve", url.PathEscape(c.revision), filename)
}

func (c *Client) download(ctx context.Context, modelID, filename string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(modelID, filename), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s/%s: %w", modelID, filename, ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w (status %d)", modelID, ErrUnauthorized, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("hub returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

func mimeType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}
