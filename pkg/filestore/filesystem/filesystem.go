// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
)

func init() {
	filestore.Providers.Register("filesystem", func(_ context.Context, params map[string]string) (filestore.FileStore, error) {
		return New(params["base_dir"])
	})
}

// compile-time check
var _ filestore.FileStore = (*Store)(nil)

// fileMetadata is the on-disk representation stored in metadata.json.
type fileMetadata struct {
	ID        string    `json:"id"`
	ModelID   string    `json:"model_id"`
	Revision  string    `json:"revision"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mime_type"`
	Bytes     int64     `json:"bytes"`
	SHA256    string    `json:"sha256"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *fileMetadata) file() *filestore.File {
	return &filestore.File{
		ID:        m.ID,
		ModelID:   m.ModelID,
		Revision:  m.Revision,
		Filename:  m.Filename,
		MimeType:  m.MimeType,
		Bytes:     m.Bytes,
		SHA256:    m.SHA256,
		CreatedAt: m.CreatedAt,
	}
}

// Store implements filestore.FileStore backed by a local directory.
//
// Layout:
//
//	<baseDir>/<file_id>/content        raw artifact bytes
//	<baseDir>/<file_id>/metadata.json  JSON metadata sidecar
type Store struct {
	baseDir string
}

// New creates a filesystem-backed Store, creating baseDir if it does not exist.
func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("filesystem store: base dir is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base dir %s: %w", baseDir, err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.baseDir
}

// PutFile writes the content and metadata to disk, each via temp file + rename.
func (s *Store) PutFile(_ context.Context, file *filestore.File) error {
	dir := filepath.Join(s.baseDir, file.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create file dir: %w", err)
	}

	if err := writeAtomic(filepath.Join(dir, "content"), file.Content); err != nil {
		return fmt.Errorf("write content: %w", err)
	}

	meta := fileMetadata{
		ID:        file.ID,
		ModelID:   file.ModelID,
		Revision:  file.Revision,
		Filename:  file.Filename,
		MimeType:  file.MimeType,
		Bytes:     file.Bytes,
		SHA256:    file.SHA256,
		CreatedAt: file.CreatedAt,
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, "metadata.json"), metaBytes); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// GetFile returns file metadata (Content is nil).
func (s *Store) GetFile(_ context.Context, fileID string) (*filestore.File, error) {
	meta, err := s.readMetadata(fileID)
	if err != nil {
		return nil, err
	}
	return meta.file(), nil
}

// GetFileContent returns the raw file bytes.
func (s *Store) GetFileContent(_ context.Context, fileID string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, fileID, "content"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s: %w", fileID, filestore.ErrFileNotFound)
		}
		return nil, fmt.Errorf("read content: %w", err)
	}
	return data, nil
}

// DeleteFile removes the file directory and all its contents.
func (s *Store) DeleteFile(_ context.Context, fileID string) error {
	dir := filepath.Join(s.baseDir, fileID)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %s: %w", fileID, filestore.ErrFileNotFound)
		}
		return fmt.Errorf("stat file dir: %w", err)
	}
	return os.RemoveAll(dir)
}

// ListFiles returns metadata for the files of modelID (all when empty).
func (s *Store) ListFiles(_ context.Context, modelID string) ([]*filestore.File, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read base dir: %w", err)
	}

	var files []*filestore.File
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.readMetadata(entry.Name())
		if err != nil {
			continue // half-written or foreign directory
		}
		if modelID != "" && meta.ModelID != modelID {
			continue
		}
		files = append(files, meta.file())
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.Before(files[j].CreatedAt)
	})
	return files, nil
}

// Close is a no-op for the filesystem store.
func (s *Store) Close(_ context.Context) error {
	return nil
}

func (s *Store) readMetadata(fileID string) (*fileMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, fileID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s: %w", fileID, filestore.ErrFileNotFound)
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var meta fileMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal metadata for %s: %w", fileID, err)
	}
	return &meta, nil
}
