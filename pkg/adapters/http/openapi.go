// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/shahakanksha-tamu/SummarizeME/docs"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/schema"
)

var (
	cachedJSON []byte
	jsonOnce   sync.Once
)

// handleOpenAPI serves the embedded OpenAPI document as JSON.
func (h *Handler) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOnce.Do(func() {
		var spec map[string]any
		if err := yaml.Unmarshal(docs.OpenAPISpec, &spec); err != nil {
			h.logger.Error("Failed to parse embedded OpenAPI spec", "error", err)
			return
		}
		data, err := json.Marshal(spec)
		if err != nil {
			h.logger.Error("Failed to marshal OpenAPI spec to JSON", "error", err)
			return
		}
		cachedJSON = data
	})

	if cachedJSON == nil {
		writeJSON(w, http.StatusInternalServerError, schema.Failure("failed to load OpenAPI spec"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(cachedJSON)
}
