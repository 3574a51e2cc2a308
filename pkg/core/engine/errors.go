// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for empty or whitespace-only text, before
	// any model work.
	ErrEmptyInput = errors.New("empty input text")

	// ErrInference matches every *InferenceError.
	ErrInference = errors.New("inference failed")
)

// Inference stages reported in InferenceError.
const (
	StageTokenize = "tokenize"
	StageGenerate = "generate"
)

// InferenceError wraps a tokenization or generation failure.
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInference) hold for any InferenceError.
func (e *InferenceError) Is(target error) bool { return target == ErrInference }
