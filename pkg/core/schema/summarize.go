// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the JSON wire types of the HTTP API.
package schema

// ServiceName is reported by the health endpoint.
const ServiceName = "SummarizeME"

// NoTextMessage is the error reported for empty input.
const NoTextMessage = "No text available for summarization"

// SummaryRequest is the body of POST /summarize.
type SummaryRequest struct {
	Text  *string `json:"text"`
	Level string  `json:"level,omitempty"` // short | medium | long, default medium
}

// SummaryResponse is returned by every summarize endpoint. Summary and
// Error are serialized as null when unset.
type SummaryResponse struct {
	OK      bool    `json:"ok"`
	Summary *string `json:"summary"`
	Error   *string `json:"error"`
}

// Success builds an ok response carrying summary.
func Success(summary string) SummaryResponse {
	return SummaryResponse{OK: true, Summary: &summary}
}

// Failure builds a failed response carrying message.
func Failure(message string) SummaryResponse {
	return SummaryResponse{OK: false, Error: &message}
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Status  string `json:"status"`
}
