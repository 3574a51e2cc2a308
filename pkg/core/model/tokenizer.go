// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"os"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer converts between text and model input ids.
type Tokenizer interface {
	// Encode returns the ids of text. With addSpecial the model's special
	// tokens (the trailing </s> for T5) are appended.
	Encode(text string, addSpecial bool) ([]int, error)
}

// HFTokenizer is a Tokenizer backed by a Hugging Face tokenizer.json.
type HFTokenizer struct {
	tk *tokenizer.Tokenizer
}

var _ Tokenizer = (*HFTokenizer)(nil)

// NewHFTokenizer parses a serialized tokenizer.json definition.
func NewHFTokenizer(definition []byte) (*HFTokenizer, error) {
	// pretrained only reads from a path.
	f, err := os.CreateTemp("", "tokenizer-*.json")
	if err != nil {
		return nil, fmt.Errorf("create temp tokenizer file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(definition); err != nil {
		f.Close()
		return nil, fmt.Errorf("write temp tokenizer file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp tokenizer file: %w", err)
	}

	tk, err := pretrained.FromFile(f.Name())
	if err != nil {
		return nil, fmt.Errorf("parse tokenizer.json: %w", err)
	}
	return &HFTokenizer{tk: tk}, nil
}

// Encode implements Tokenizer.
func (t *HFTokenizer) Encode(text string, addSpecial bool) ([]int, error) {
	enc, err := t.tk.EncodeSingle(text, addSpecial)
	if err != nil {
		return nil, err
	}
	return enc.Ids, nil
}
