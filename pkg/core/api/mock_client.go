// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockGenerationClient is a mock implementation for testing.
// It records every request and answers deterministically.
type MockGenerationClient struct {
	mu       sync.Mutex
	requests []GenerationRequest

	// Respond, when set, produces the output text for a request.
	Respond func(req *GenerationRequest) (string, error)
}

// NewMockGenerationClient creates a new mock client
func NewMockGenerationClient() *MockGenerationClient {
	return &MockGenerationClient{}
}

// Generate implements GenerationClient.Generate
func (m *MockGenerationClient) Generate(_ context.Context, req *GenerationRequest) (*GenerationResponse, error) {
	m.mu.Lock()
	recorded := *req
	recorded.PromptTokens = append([]int(nil), req.PromptTokens...)
	m.requests = append(m.requests, recorded)
	call := len(m.requests)
	m.mu.Unlock()

	text := fmt.Sprintf(" summary %d (beams=%d, max=%d) ", call, req.NumBeams, req.MaxNewTokens)
	if m.Respond != nil {
		out, err := m.Respond(req)
		if err != nil {
			return nil, err
		}
		text = out
	}

	return &GenerationResponse{
		Text:             text,
		FinishReason:     "stop",
		PromptTokens:     len(req.PromptTokens),
		CompletionTokens: len(strings.Fields(text)),
	}, nil
}

// Requests returns a copy of every request received so far.
func (m *MockGenerationClient) Requests() []GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerationRequest(nil), m.requests...)
}
