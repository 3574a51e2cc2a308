// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/api"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/hub"
)

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, hub.TokenizerFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	client := hub.NewClient(hub.Options{})

	t.Run("no generator", func(t *testing.T) {
		load := NewLoader(LoaderConfig{ModelID: dir, Hub: client})
		if _, err := load(context.Background()); err == nil {
			t.Fatal("expected error without generator")
		}
	})

	t.Run("missing tokenizer", func(t *testing.T) {
		load := NewLoader(LoaderConfig{ModelID: t.TempDir(), Hub: client, Generator: &api.MockGenerationClient{}})
		_, err := load(context.Background())
		if !errors.Is(err, hub.ErrNotFound) {
			t.Fatalf("err = %v, want hub.ErrNotFound", err)
		}
	})

	t.Run("malformed tokenizer", func(t *testing.T) {
		load := NewLoader(LoaderConfig{ModelID: dir, Hub: client, Generator: &api.MockGenerationClient{}})
		_, err := load(context.Background())
		if err == nil || !strings.Contains(err.Error(), "tokenizer") {
			t.Fatalf("err = %v, want tokenizer parse error", err)
		}
	})
}
