// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
)

func init() {
	filestore.Providers.Register("s3", func(ctx context.Context, params map[string]string) (filestore.FileStore, error) {
		return New(ctx, Options{
			Bucket:   params["bucket"],
			Region:   params["region"],
			Prefix:   params["prefix"],
			Endpoint: params["endpoint"],
		})
	})
}

// compile-time check
var _ filestore.FileStore = (*Store)(nil)

// Options configures the S3 backend.
type Options struct {
	Bucket   string // required
	Region   string // e.g. "us-east-1"
	Prefix   string // key prefix, e.g. "artifacts/"
	Endpoint string // custom endpoint for MinIO compatibility
}

// fileMetadata is the JSON sidecar stored alongside each artifact in S3.
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

// Store implements filestore.FileStore backed by S3 (or MinIO), so that a
// fleet of replicas can share one artifact cache.
//
// Object layout:
//
//	<prefix><file_id>/content
//	<prefix><file_id>/metadata.json
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an S3-backed Store.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 artifact store: bucket is required")
	}

	optFns := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Opts := []func(*s3.Options){}
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	return &Store{
		client: s3.NewFromConfig(cfg, s3Opts...),
		bucket: opts.Bucket,
		prefix: opts.Prefix,
	}, nil
}

func (s *Store) contentKey(fileID string) string {
	return s.prefix + fileID + "/content"
}

func (s *Store) metadataKey(fileID string) string {
	return s.prefix + fileID + "/metadata.json"
}

// PutFile uploads content first and metadata second, so a reader never sees
// metadata without content.
func (s *Store) PutFile(ctx context.Context, file *filestore.File) error {
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

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.contentKey(file.ID)),
		Body:        bytes.NewReader(file.Content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put content: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.metadataKey(file.ID)),
		Body:        bytes.NewReader(metaBytes),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put metadata: %w", err)
	}
	return nil
}

// GetFile returns file metadata (Content is nil).
func (s *Store) GetFile(ctx context.Context, fileID string) (*filestore.File, error) {
	meta, err := s.readMetadata(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return meta.file(), nil
}

// GetFileContent returns the raw file bytes from S3.
func (s *Store) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.contentKey(fileID)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("file %s: %w", fileID, filestore.ErrFileNotFound)
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read content body: %w", err)
	}
	return data, nil
}

// DeleteFile removes both the content and metadata objects.
func (s *Store) DeleteFile(ctx context.Context, fileID string) error {
	if _, err := s.readMetadata(ctx, fileID); err != nil {
		return err
	}

	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &s3types.Delete{
			Objects: []s3types.ObjectIdentifier{
				{Key: aws.String(s.contentKey(fileID))},
				{Key: aws.String(s.metadataKey(fileID))},
			},
			Quiet: aws.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("delete objects: %w", err)
	}
	return nil
}

// ListFiles returns metadata for the files of modelID (all when empty).
func (s *Store) ListFiles(ctx context.Context, modelID string) ([]*filestore.File, error) {
	var ids []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(s.prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, cp := range page.CommonPrefixes {
			dir := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), s.prefix), "/")
			if dir != "" {
				ids = append(ids, dir)
			}
		}
	}

	// Fetch metadata concurrently with a semaphore
	const maxConcurrency = 10
	sem := make(chan struct{}, maxConcurrency)
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		files []*filestore.File
	)
	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(fileID string) {
			defer wg.Done()
			defer func() { <-sem }()

			meta, err := s.readMetadata(ctx, fileID)
			if err != nil {
				return // content uploaded but metadata not yet written
			}
			if modelID != "" && meta.ModelID != modelID {
				return
			}
			mu.Lock()
			files = append(files, meta.file())
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.Before(files[j].CreatedAt)
	})
	return files, nil
}

// Close is a no-op for the S3 store.
func (s *Store) Close(_ context.Context) error {
	return nil
}

func (s *Store) readMetadata(ctx context.Context, fileID string) (*fileMetadata, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.metadataKey(fileID)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("file %s: %w", fileID, filestore.ErrFileNotFound)
		}
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	defer out.Body.Close()

	var meta fileMetadata
	if err := json.NewDecoder(out.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %w", fileID, err)
	}
	return &meta, nil
}

// isNotFound checks whether the error indicates a missing S3 object.
func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	// Some S3-compatible services return a generic "NotFound" status.
	return strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "NotFound")
}
