// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

// Package filestoretest provides a shared conformance test suite for
// filestore.FileStore implementations. Each backend should call
// RunConformanceTests from its own _test.go file.
package filestoretest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
)

func newFile(modelID, filename string, content []byte, createdAt time.Time) *filestore.File {
	return &filestore.File{
		ID:        filestore.FileID(modelID, "main", filename),
		ModelID:   modelID,
		Revision:  "main",
		Filename:  filename,
		MimeType:  "application/json",
		Bytes:     int64(len(content)),
		SHA256:    filestore.Digest(content),
		Content:   content,
		CreatedAt: createdAt,
	}
}

// RunConformanceTests exercises a FileStore implementation against the shared
// contract. The newStore function is called once per sub-test to provide an
// isolated store instance.
func RunConformanceTests(t *testing.T, newStore func(t *testing.T) filestore.FileStore) {
	t.Helper()

	t.Run("PutAndGet", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		f := newFile("google/flan-t5-base", "tokenizer.json", []byte(`{"model":{}}`), time.Now().Truncate(time.Millisecond))
		if err := store.PutFile(ctx, f); err != nil {
			t.Fatalf("PutFile: %v", err)
		}

		got, err := store.GetFile(ctx, f.ID)
		if err != nil {
			t.Fatalf("GetFile: %v", err)
		}
		if got.ID != f.ID || got.ModelID != f.ModelID || got.Filename != f.Filename ||
			got.Revision != f.Revision || got.Bytes != f.Bytes || got.SHA256 != f.SHA256 {
			t.Errorf("GetFile returned unexpected metadata: %+v", got)
		}
		if !got.CreatedAt.Equal(f.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, f.CreatedAt)
		}
		if got.Content != nil {
			t.Errorf("expected Content to be nil from GetFile, got %d bytes", len(got.Content))
		}
	})

	t.Run("GetContent", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		content := []byte(`{"added_tokens":[{"id":1,"content":"</s>"}]}`)
		f := newFile("org/model", "tokenizer.json", content, time.Now())
		if err := store.PutFile(ctx, f); err != nil {
			t.Fatalf("PutFile: %v", err)
		}

		got, err := store.GetFileContent(ctx, f.ID)
		if err != nil {
			t.Fatalf("GetFileContent: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content mismatch: got %q, want %q", got, content)
		}
	})

	t.Run("PutReplaces", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		first := newFile("org/model", "tokenizer.json", []byte("old"), time.Now())
		if err := store.PutFile(ctx, first); err != nil {
			t.Fatalf("first PutFile: %v", err)
		}
		second := newFile("org/model", "tokenizer.json", []byte("newer"), time.Now())
		if err := store.PutFile(ctx, second); err != nil {
			t.Fatalf("second PutFile: %v", err)
		}

		got, err := store.GetFileContent(ctx, second.ID)
		if err != nil {
			t.Fatalf("GetFileContent: %v", err)
		}
		if string(got) != "newer" {
			t.Errorf("content = %q, want replacement %q", got, "newer")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		f := newFile("org/model", "config.json", []byte("{}"), time.Now())
		if err := store.PutFile(ctx, f); err != nil {
			t.Fatalf("PutFile: %v", err)
		}
		if err := store.DeleteFile(ctx, f.ID); err != nil {
			t.Fatalf("DeleteFile: %v", err)
		}

		_, err := store.GetFile(ctx, f.ID)
		if !errors.Is(err, filestore.ErrFileNotFound) {
			t.Errorf("expected ErrFileNotFound after delete, got: %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		_, err := store.GetFile(ctx, "models--missing--main--x")
		if !errors.Is(err, filestore.ErrFileNotFound) {
			t.Errorf("GetFile expected ErrFileNotFound, got: %v", err)
		}

		_, err = store.GetFileContent(ctx, "models--missing--main--x")
		if !errors.Is(err, filestore.ErrFileNotFound) {
			t.Errorf("GetFileContent expected ErrFileNotFound, got: %v", err)
		}

		err = store.DeleteFile(ctx, "models--missing--main--x")
		if !errors.Is(err, filestore.ErrFileNotFound) {
			t.Errorf("DeleteFile expected ErrFileNotFound, got: %v", err)
		}
	})

	t.Run("ListByModel", func(t *testing.T) {
		store := newStore(t)
		defer store.Close(context.Background())
		ctx := context.Background()

		baseTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		files := []*filestore.File{
			newFile("org/a", "tokenizer.json", []byte("1"), baseTime.Add(2*time.Second)),
			newFile("org/b", "tokenizer.json", []byte("2"), baseTime.Add(1*time.Second)),
			newFile("org/a", "config.json", []byte("3"), baseTime),
		}
		for i, f := range files {
			if err := store.PutFile(ctx, f); err != nil {
				t.Fatalf("PutFile[%d]: %v", i, err)
			}
		}

		all, err := store.ListFiles(ctx, "")
		if err != nil {
			t.Fatalf("ListFiles: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 files, got %d", len(all))
		}
		for i := 1; i < len(all); i++ {
			if all[i].CreatedAt.Before(all[i-1].CreatedAt) {
				t.Errorf("files not in ascending order at index %d", i)
			}
		}

		onlyA, err := store.ListFiles(ctx, "org/a")
		if err != nil {
			t.Fatalf("ListFiles: %v", err)
		}
		if len(onlyA) != 2 {
			t.Fatalf("expected 2 files for org/a, got %d", len(onlyA))
		}
		if onlyA[0].Filename != "config.json" || onlyA[1].Filename != "tokenizer.json" {
			t.Errorf("unexpected order: %s, %s", onlyA[0].Filename, onlyA[1].Filename)
		}
		for _, f := range onlyA {
			if f.Content != nil {
				t.Error("ListFiles must not return content")
			}
		}
	})
}
