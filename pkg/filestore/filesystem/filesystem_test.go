// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/filestoretest"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/filesystem"
)

func TestFilesystemConformance(t *testing.T) {
	filestoretest.RunConformanceTests(t, func(t *testing.T) filestore.FileStore {
		store, err := filesystem.New(t.TempDir())
		if err != nil {
			t.Fatalf("filesystem.New: %v", err)
		}
		return store
	})
}

func TestFilesystem_RequiresBaseDir(t *testing.T) {
	if _, err := filesystem.New(""); err == nil {
		t.Fatal("expected error for empty base dir")
	}
}

func TestFilesystem_SkipsForeignDirectories(t *testing.T) {
	dir := t.TempDir()
	store, err := filesystem.New(dir)
	if err != nil {
		t.Fatalf("filesystem.New: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "not-an-artifact"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := store.ListFiles(context.Background(), "")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected foreign directory to be skipped, got %d files", len(files))
	}
}
