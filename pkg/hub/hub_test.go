// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package hub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/memory"
)

const tokenizerBody = `{"version":"1.0","model":{"type":"Unigram"}}`

func newHub(t *testing.T, token string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/org/model/resolve/main/tokenizer.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(tokenizerBody))
		case "/org/broken/resolve/main/tokenizer.json":
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetch_DownloadsAndCaches(t *testing.T) {
	srv, hits := newHub(t, "")
	store := memory.New()
	c := NewClient(Options{Endpoint: srv.URL, Store: store})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		data, err := c.TokenizerJSON(ctx, "org/model")
		if err != nil {
			t.Fatalf("TokenizerJSON: %v", err)
		}
		if string(data) != tokenizerBody {
			t.Fatalf("body = %q", data)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("hub hits = %d, want 1", got)
	}

	meta, err := store.GetFile(ctx, filestore.FileID("org/model", "main", TokenizerFile))
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if meta.ModelID != "org/model" || meta.SHA256 != filestore.Digest([]byte(tokenizerBody)) {
		t.Errorf("unexpected cached metadata: %+v", meta)
	}
}

func TestFetch_CorruptCacheRedownloads(t *testing.T) {
	srv, hits := newHub(t, "")
	store := memory.New()
	ctx := context.Background()

	id := filestore.FileID("org/model", "main", TokenizerFile)
	err := store.PutFile(ctx, &filestore.File{
		ID:        id,
		ModelID:   "org/model",
		Filename:  TokenizerFile,
		SHA256:    filestore.Digest([]byte("something else")),
		Content:   []byte("garbage"),
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	c := NewClient(Options{Endpoint: srv.URL, Store: store})
	data, err := c.TokenizerJSON(ctx, "org/model")
	if err != nil {
		t.Fatalf("TokenizerJSON: %v", err)
	}
	if string(data) != tokenizerBody {
		t.Errorf("body = %q, want fresh download", data)
	}
	if hits.Load() != 1 {
		t.Errorf("expected one download, got %d", hits.Load())
	}
}

func TestFetch_Errors(t *testing.T) {
	srv, _ := newHub(t, "secret")
	tests := []struct {
		name    string
		token   string
		model   string
		wantErr error
	}{
		{"missing token", "", "org/model", ErrUnauthorized},
		{"missing model", "secret", "org/nope", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(Options{Endpoint: srv.URL, Token: tt.token})
			_, err := c.TokenizerJSON(context.Background(), tt.model)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("upstream failure", func(t *testing.T) {
		c := NewClient(Options{Endpoint: srv.URL, Token: "secret"})
		if _, err := c.TokenizerJSON(context.Background(), "org/broken"); err == nil {
			t.Fatal("expected error for 502")
		}
	})
}

func TestFetch_LocalDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TokenizerFile), []byte(tokenizerBody), 0o644); err != nil {
		t.Fatal(err)
	}
	store := memory.New()
	c := NewClient(Options{Endpoint: "http://127.0.0.1:1", Store: store})

	data, err := c.TokenizerJSON(context.Background(), dir)
	if err != nil {
		t.Fatalf("TokenizerJSON: %v", err)
	}
	if string(data) != tokenizerBody {
		t.Errorf("body = %q", data)
	}
	files, _ := store.ListFiles(context.Background(), "")
	if len(files) != 0 {
		t.Errorf("local files must not be cached, got %d", len(files))
	}

	if _, err := c.Fetch(context.Background(), dir, "config.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing local file err = %v, want ErrNotFound", err)
	}
}

func TestEvict(t *testing.T) {
	srv, hits := newHub(t, "")
	store := memory.New()
	c := NewClient(Options{Endpoint: srv.URL, Store: store})
	ctx := context.Background()

	if _, err := c.TokenizerJSON(ctx, "org/model"); err != nil {
		t.Fatal(err)
	}
	n, err := c.Evict(ctx, "org/model")
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if n != 1 {
		t.Errorf("evicted %d, want 1", n)
	}
	if _, err := c.TokenizerJSON(ctx, "org/model"); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("expected re-download after evict, hits = %d", hits.Load())
	}
}
