// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "context"

// GenerationClient runs seq2seq generation against a hosted model.
type GenerationClient interface {
	// Generate decodes one output sequence for the given prompt. The call
	// blocks until the backend finishes; there is no streaming.
	Generate(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error)
}

// GenerationRequest carries the encoded prompt and the decoding constraints.
type GenerationRequest struct {
	Model string `json:"model"`

	// PromptTokens is the already-truncated encoder input. When empty,
	// Prompt is sent as text instead.
	PromptTokens []int  `json:"prompt_tokens,omitempty"`
	Prompt       string `json:"prompt,omitempty"`

	MinNewTokens      int     `json:"min_new_tokens"`
	MaxNewTokens      int     `json:"max_new_tokens"`
	NumBeams          int     `json:"num_beams"`
	LengthPenalty     float64 `json:"length_penalty"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size"`
	DoSample          bool    `json:"do_sample"`
	EarlyStopping     bool    `json:"early_stopping"`
	RenormalizeLogits bool    `json:"renormalize_logits"`

	// Device is the compute device the backend should run on, e.g. "cuda:0".
	Device string `json:"device,omitempty"`
}

// GenerationResponse is the decoded output of one generation call.
type GenerationResponse struct {
	Text             string `json:"text"`
	FinishReason     string `json:"finish_reason"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}
