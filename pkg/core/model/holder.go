// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

// Package model provisions the tokenizer, generation backend and compute
// device the summarizer runs on, loading them once per process.
package model

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/api"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/observability/logging"
)

// Model is a loaded, ready to use model. It is shared read-only by every
// request.
type Model struct {
	ID        string
	Tokenizer Tokenizer
	Generator api.GenerationClient
	Device    string
}

// LoadError reports a failure to acquire the model or its tokenizer.
type LoadError struct {
	ModelID string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.ModelID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFunc builds a Model from scratch.
type LoadFunc func(ctx context.Context) (*Model, error)

// Holder lazily loads a Model on first use and caches it for the life of
// the process. Concurrent first callers share a single load. A failed load
// is not cached, so the next call tries again.
type Holder struct {
	modelID string
	load    LoadFunc
	logger  *logging.Logger

	model atomic.Pointer[Model]
	group singleflight.Group
}

// NewHolder returns a Holder that calls load at most once successfully.
func NewHolder(modelID string, load LoadFunc, logger *logging.Logger) *Holder {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Holder{modelID: modelID, load: load, logger: logger}
}

// Get returns the loaded model, loading it if needed.
func (h *Holder) Get(ctx context.Context) (*Model, error) {
	if m := h.model.Load(); m != nil {
		return m, nil
	}

	v, err, _ := h.group.Do(h.modelID, func() (any, error) {
		if m := h.model.Load(); m != nil {
			return m, nil
		}

		h.logger.Info("loading model", "model", h.modelID)
		start := time.Now()

		// A caller giving up must not abort the load the others wait on.
		m, err := h.load(context.WithoutCancel(ctx))
		if err != nil {
			h.logger.Error("model load failed", "model", h.modelID, "error", err)
			return nil, &LoadError{ModelID: h.modelID, Err: err}
		}

		h.model.Store(m)
		h.logger.Info("model ready",
			"model", h.modelID,
			"device", m.Device,
			"duration", time.Since(start),
		)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Model), nil
}

// Loaded reports whether the model is ready without triggering a load.
func (h *Holder) Loaded() bool {
	return h.model.Load() != nil
}
