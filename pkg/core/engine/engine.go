// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine implements adaptive summarization: text that fits the
// model's input window is summarized in one pass, longer text is chunked,
// each chunk summarized, and the joined chunk summaries summarized again.
package engine

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/api"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/chunker"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/model"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/observability/logging"
)

// MaxInputTokens is the encoder capacity of the model.
const MaxInputTokens = 1024

const (
	noRepeatNgramSize = 2
	chunkSeparator    = "\n\n"
	promptInstruction = "Write a concise, coherent, and complete summary of the given text." +
		"Be factuallly accurate.\n\n" +
		"Text:\n"
)

// ModelProvider yields the shared model, loading it on first use.
// Implemented by model.Holder.
type ModelProvider interface {
	Get(ctx context.Context) (*model.Model, error)
}

// Engine is the summarization strategy engine. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	models     ModelProvider
	logger     *logging.Logger
	chunkChars int
}

// Option configures an Engine.
type Option func(*Engine)

// WithChunkChars overrides the chunk character budget of the hierarchical
// path.
func WithChunkChars(n int) Option {
	return func(e *Engine) { e.chunkChars = n }
}

// New creates a new Engine.
func New(models ModelProvider, logger *logging.Logger, opts ...Option) (*Engine, error) {
	if models == nil {
		return nil, fmt.Errorf("model provider is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	e := &Engine{
		models:     models,
		logger:     logger,
		chunkChars: chunker.DefaultMaxChars,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Summarize produces a summary of text at the given level. Unknown levels
// use the medium profile.
//
// Generation is not canceled when ctx is: a started summary runs to
// completion.
func (e *Engine) Summarize(ctx context.Context, text, level string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	m, err := e.models.Get(ctx)
	if err != nil {
		return "", err
	}
	ctx = context.WithoutCancel(ctx)

	ids, err := m.Tokenizer.Encode(text, false)
	if err != nil {
		return "", &InferenceError{Stage: StageTokenize, Err: err}
	}
	inputLen := len(ids)

	e.logger.Debug("summarization request", "input_tokens", inputLen, "level", level)

	if inputLen <= MaxInputTokens {
		e.logger.Debug("using single-pass summarization")
		return e.summarizeSingle(ctx, m, text, ProfileFor(level))
	}

	e.logger.Debug("using hierarchical summarization")
	return e.summarizeHierarchical(ctx, m, text, ProfileFor(level))
}

func (e *Engine) summarizeSingle(ctx context.Context, m *model.Model, text string, profile LengthProfile) (string, error) {
	e.logger.Debug("running single-pass summarization", "level", profile.Name)

	ids, err := m.Tokenizer.Encode(promptInstruction+text, true)
	if err != nil {
		return "", &InferenceError{Stage: StageTokenize, Err: err}
	}
	ids = truncate(ids, MaxInputTokens)

	resp, err := m.Generator.Generate(ctx, &api.GenerationRequest{
		Model:             m.ID,
		PromptTokens:      ids,
		MinNewTokens:      profile.MinNewTokens,
		MaxNewTokens:      profile.MaxNewTokens,
		NumBeams:          profile.NumBeams,
		LengthPenalty:     profile.LengthPenalty,
		NoRepeatNgramSize: noRepeatNgramSize,
		DoSample:          false,
		EarlyStopping:     true,
		RenormalizeLogits: true,
		Device:            m.Device,
	})
	if err != nil {
		return "", &InferenceError{Stage: StageGenerate, Err: err}
	}

	summary := strings.TrimSpace(resp.Text)
	e.logger.Debug("single-pass summary complete",
		"chars", utf8.RuneCountInString(summary),
		"words", len(strings.Fields(summary)),
	)
	return summary, nil
}

// summarizeHierarchical summarizes every chunk at the medium profile, one
// after another, then summarizes the joined results at the requested
// profile. The joined text is not re-checked against MaxInputTokens; an
// oversized join is truncated by the final pass.
func (e *Engine) summarizeHierarchical(ctx context.Context, m *model.Model, text string, profile LengthProfile) (string, error) {
	chunks := chunker.Split(text, e.chunkChars)
	e.logger.Debug("created chunks", "count", len(chunks), "max_chars", e.chunkChars)

	medium := ProfileFor(LevelMedium)
	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		e.logger.Debug("summarizing chunk",
			"chunk", i+1,
			"of", len(chunks),
			"chars", utf8.RuneCountInString(chunk),
			"words", len(strings.Fields(chunk)),
		)
		part, err := e.summarizeSingle(ctx, m, chunk, medium)
		if err != nil {
			return "", err
		}
		partials = append(partials, part)
	}

	combined := strings.Join(partials, chunkSeparator)
	e.logger.Debug("running final pass over combined summaries",
		"chars", utf8.RuneCountInString(combined),
		"words", len(strings.Fields(combined)),
	)

	final, err := e.summarizeSingle(ctx, m, combined, profile)
	if err != nil {
		return "", err
	}
	e.logger.Debug("hierarchical summary complete",
		"chars", utf8.RuneCountInString(final),
		"words", len(strings.Fields(final)),
	)
	return final, nil
}

// truncate caps ids at limit while keeping the final token, which for an
// encoding with special tokens is the end-of-sequence marker.
func truncate(ids []int, limit int) []int {
	if len(ids) <= limit || limit <= 0 {
		return ids
	}
	out := make([]int, 0, limit)
	out = append(out, ids[:limit-1]...)
	return append(out, ids[len(ids)-1])
}
