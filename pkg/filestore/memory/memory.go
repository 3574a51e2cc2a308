// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
)

func init() {
	filestore.Providers.Register("memory", func(_ context.Context, _ map[string]string) (filestore.FileStore, error) {
		return New(), nil
	})
}

// compile-time check
var _ filestore.FileStore = (*Store)(nil)

// Store is an in-memory artifact store. Its contents vanish with the process.
type Store struct {
	mu    sync.RWMutex
	files map[string]*filestore.File
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		files: make(map[string]*filestore.File),
	}
}

// PutFile stores a copy of file, replacing any existing entry.
func (s *Store) PutFile(_ context.Context, file *filestore.File) error {
	cp := *file
	cp.Content = append([]byte(nil), file.Content...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[file.ID] = &cp
	return nil
}

// GetFile returns file metadata (Content is nil).
func (s *Store) GetFile(_ context.Context, fileID string) (*filestore.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, exists := s.files[fileID]
	if !exists {
		return nil, fmt.Errorf("file %s: %w", fileID, filestore.ErrFileNotFound)
	}

	cp := *file
	cp.Content = nil
	return &cp, nil
}

// GetFileContent returns the raw file bytes.
func (s *Store) GetFileContent(_ context.Context, fileID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, exists := s.files[fileID]
	if !exists {
		return nil, fmt.Errorf("file %s: %w", fileID, filestore.ErrFileNotFound)
	}
	return append([]byte(nil), file.Content...), nil
}

// DeleteFile removes a file.
func (s *Store) DeleteFile(_ context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[fileID]; !exists {
		return fmt.Errorf("file %s: %w", fileID, filestore.ErrFileNotFound)
	}
	delete(s.files, fileID)
	return nil
}

// ListFiles returns metadata for the files of modelID (all when empty).
func (s *Store) ListFiles(_ context.Context, modelID string) ([]*filestore.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*filestore.File, 0, len(s.files))
	for _, file := range s.files {
		if modelID != "" && file.ModelID != modelID {
			continue
		}
		cp := *file
		cp.Content = nil
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close(_ context.Context) error {
	return nil
}
