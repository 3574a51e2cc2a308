// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/core/api"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/hub"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/observability/logging"
)

// LoaderConfig describes where the model comes from.
type LoaderConfig struct {
	ModelID        string
	DeviceOverride string
	Hub            *hub.Client
	Generator      api.GenerationClient
	Logger         *logging.Logger
}

// NewLoader returns a LoadFunc that fetches the tokenizer definition through
// the hub client and pairs it with the generation backend.
func NewLoader(cfg LoaderConfig) LoadFunc {
	return func(ctx context.Context) (*Model, error) {
		if cfg.Generator == nil {
			return nil, fmt.Errorf("no generation backend configured")
		}

		definition, err := cfg.Hub.TokenizerJSON(ctx, cfg.ModelID)
		if err != nil {
			return nil, fmt.Errorf("fetch tokenizer: %w", err)
		}
		tk, err := NewHFTokenizer(definition)
		if err != nil {
			return nil, err
		}

		device := ResolveDevice(cfg.DeviceOverride)
		if cfg.Logger != nil {
			cfg.Logger.Debug("resolved device", "device", device, "override", cfg.DeviceOverride)
		}

		return &Model{
			ID:        cfg.ModelID,
			Tokenizer: tk,
			Generator: cfg.Generator,
			Device:    device,
		}, nil
	}
}
