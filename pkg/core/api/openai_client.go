// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DeviceHeader tells the generation backend which device to schedule on.
const DeviceHeader = "X-Inference-Device"

// OpenAIGenerationClient implements GenerationClient against an
// OpenAI-compatible completions endpoint (vLLM, TGI, llama.cpp server).
// Beam search and length controls are not part of the OpenAI schema, so they
// are sent as extra JSON fields that those servers understand.
type OpenAIGenerationClient struct {
	client openai.Client
}

// NewOpenAIGenerationClient creates a client for the given base URL. A zero
// timeout leaves requests unbounded. Retries are disabled.
func NewOpenAIGenerationClient(baseURL, apiKey string, timeout time.Duration) *OpenAIGenerationClient {
	opts := []option.RequestOption{
		option.WithMaxRetries(0),
	}

	// Set custom base URL if provided
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	// Local inference servers usually run without authentication
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		opts = append(opts, option.WithAPIKey("dummy"))
	}

	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	return &OpenAIGenerationClient{
		client: openai.NewClient(opts...),
	}
}

// buildParams converts a GenerationRequest into SDK params plus the extra
// decoding fields.
func buildParams(req *GenerationRequest) (openai.CompletionNewParams, []option.RequestOption) {
	params := openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(req.Model),
		MaxTokens:   openai.Int(int64(req.MaxNewTokens)),
		N:           openai.Int(1),
		Temperature: openai.Float(0),
	}

	if len(req.PromptTokens) > 0 {
		ids := make([]int64, len(req.PromptTokens))
		for i, id := range req.PromptTokens {
			ids[i] = int64(id)
		}
		params.Prompt = openai.CompletionNewParamsPromptUnion{OfArrayOfTokens: ids}
	} else {
		params.Prompt = openai.CompletionNewParamsPromptUnion{OfString: openai.String(req.Prompt)}
	}

	if req.NumBeams > 1 {
		params.BestOf = openai.Int(int64(req.NumBeams))
	}

	opts := []option.RequestOption{
		option.WithJSONSet("use_beam_search", req.NumBeams > 1),
		option.WithJSONSet("num_beams", req.NumBeams),
		option.WithJSONSet("min_tokens", req.MinNewTokens),
		option.WithJSONSet("length_penalty", req.LengthPenalty),
		option.WithJSONSet("early_stopping", req.EarlyStopping),
		option.WithJSONSet("no_repeat_ngram_size", req.NoRepeatNgramSize),
		option.WithJSONSet("do_sample", req.DoSample),
		option.WithJSONSet("renormalize_logits", req.RenormalizeLogits),
		option.WithJSONSet("skip_special_tokens", true),
	}
	if req.Device != "" {
		opts = append(opts, option.WithHeader(DeviceHeader, req.Device))
	}

	return params, opts
}

// Generate implements GenerationClient.Generate
func (c *OpenAIGenerationClient) Generate(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error) {
	if req.MaxNewTokens <= 0 {
		return nil, fmt.Errorf("max_new_tokens must be positive, got %d", req.MaxNewTokens)
	}

	params, opts := buildParams(req)

	completion, err := c.client.Completions.New(ctx, params, opts...)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("completion returned no choices")
	}

	choice := completion.Choices[0]
	return &GenerationResponse{
		Text:             choice.Text,
		FinishReason:     string(choice.FinishReason),
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
	}, nil
}
