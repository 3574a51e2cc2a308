// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

// Package filestore caches model artifacts (tokenizer definitions and other
// hub files) so that restarts do not re-download them. It never holds request
// text or summaries.
package filestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/provider"
)

// ErrFileNotFound is returned when a file does not exist.
var ErrFileNotFound = errors.New("file not found")

// Providers is the registry of artifact store backend implementations.
// Import implementation packages with blank imports to register them:
//
//	import _ "github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/memory"
//	import _ "github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/filesystem"
//	import _ "github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/s3"
var Providers = provider.NewRegistry[FileStore]("artifact_store")

// File is one cached model artifact.
type File struct {
	ID        string // see FileID
	ModelID   string
	Revision  string
	Filename  string
	MimeType  string
	Bytes     int64
	SHA256    string // hex digest of Content
	Content   []byte // populated for PutFile input; nil for GetFile output
	CreatedAt time.Time
}

// FileStore defines the interface for pluggable artifact storage backends.
type FileStore interface {
	// PutFile stores file, replacing any previous file with the same ID.
	PutFile(ctx context.Context, file *File) error
	GetFile(ctx context.Context, fileID string) (*File, error)
	GetFileContent(ctx context.Context, fileID string) ([]byte, error)
	DeleteFile(ctx context.Context, fileID string) error
	// ListFiles returns metadata ordered by CreatedAt. An empty modelID
	// lists every model.
	ListFiles(ctx context.Context, modelID string) ([]*File, error)
	Close(ctx context.Context) error
}

// FileID derives a flat, path-safe key from a model id, revision and
// filename, in the spirit of the hub cache layout ("models--org--name").
func FileID(modelID, revision, filename string) string {
	if revision == "" {
		revision = "main"
	}
	r := strings.NewReplacer("/", "--", "\\", "--", ":", "_", " ", "_", "..", "_")
	return "models--" + r.Replace(modelID) + "--" + r.Replace(revision) + "--" + r.Replace(filename)
}

// Digest returns the hex SHA-256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
