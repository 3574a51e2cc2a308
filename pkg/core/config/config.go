// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultModelID is the seq2seq checkpoint served when MODEL_ID is unset.
const DefaultModelID = "akankshashah/flan-t5-base-samsum-merged"

// Config represents the main configuration. It is built once at startup and
// treated as read-only afterwards.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Model         ModelConfig         `yaml:"model"`
	Generation    GenerationConfig    `yaml:"generation"`
	ArtifactStore ArtifactStoreConfig `yaml:"artifact_store"`
	CORS          CORSConfig          `yaml:"cors"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host         string        `yaml:"host"          env:"HOST"`
	Port         int           `yaml:"port"          env:"PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"` // 0 lets generation run to completion
}

// ModelConfig identifies the pretrained model and how to fetch it.
type ModelConfig struct {
	ID          string `yaml:"id"           env:"MODEL_ID"`
	Token       string `yaml:"token"        env:"HF_TOKEN"` // optional hub access credential
	Device      string `yaml:"device"       env:"DEVICE"`   // "", "cpu", "cuda", "cuda:1", ...
	HubEndpoint string `yaml:"hub_endpoint" env:"HF_ENDPOINT"`
	Preload     bool   `yaml:"preload"      env:"MODEL_PRELOAD"`
}

// GenerationConfig points at the OpenAI-compatible server that hosts the
// model weights and runs beam search.
type GenerationConfig struct {
	Endpoint string        `yaml:"endpoint" env:"GENERATION_ENDPOINT"` // e.g. "http://localhost:8001/v1"
	APIKey   string        `yaml:"api_key"  env:"GENERATION_API_KEY"`
	Timeout  time.Duration `yaml:"timeout"  env:"GENERATION_TIMEOUT"` // 0 means no client-side timeout
}

// ArtifactStoreConfig selects where downloaded model artifacts are cached.
type ArtifactStoreConfig struct {
	Type       string `yaml:"type"        env:"ARTIFACT_STORE"` // "filesystem" (default), "memory" or "s3"
	BaseDir    string `yaml:"base_dir"    env:"ARTIFACT_DIR"`
	S3Bucket   string `yaml:"s3_bucket"   env:"ARTIFACT_S3_BUCKET"`
	S3Region   string `yaml:"s3_region"   env:"ARTIFACT_S3_REGION"`
	S3Prefix   string `yaml:"s3_prefix"   env:"ARTIFACT_S3_PREFIX"`
	S3Endpoint string `yaml:"s3_endpoint" env:"ARTIFACT_S3_ENDPOINT"`
}

// Params returns the backend parameters understood by the filestore registry.
func (c ArtifactStoreConfig) Params() map[string]string {
	return map[string]string{
		"base_dir": c.BaseDir,
		"bucket":   c.S3Bucket,
		"region":   c.S3Region,
		"prefix":   c.S3Prefix,
		"endpoint": c.S3Endpoint,
	}
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" env:"CORS_ALLOW_ORIGINS" envSeparator:","`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Load loads configuration from a YAML file, then applies environment
// overrides on top. The result is not validated; call Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	applyDefaults(cfg)
	return nil
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			ReadTimeout: 60 * time.Second,
		},
		Model: ModelConfig{
			ID:          DefaultModelID,
			HubEndpoint: "https://huggingface.co",
		},
		ArtifactStore: ArtifactStoreConfig{
			Type:    "filesystem",
			BaseDir: ".cache/summarizeme",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
	return cfg
}

// Validate reports configuration that cannot produce a working server.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Model.ID) == "" {
		errs = append(errs, errors.New("model id is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	switch c.ArtifactStore.Type {
	case "memory", "filesystem":
	case "s3":
		if c.ArtifactStore.S3Bucket == "" {
			errs = append(errs, errors.New("artifact_store.s3_bucket is required for the s3 store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown artifact store type %q", c.ArtifactStore.Type))
	}
	return errors.Join(errs...)
}

func applyDefaults(cfg *Config) {
	if cfg.ArtifactStore.Type == "" {
		cfg.ArtifactStore.Type = "filesystem"
	}
	if cfg.ArtifactStore.Type == "filesystem" && cfg.ArtifactStore.BaseDir == "" {
		cfg.ArtifactStore.BaseDir = ".cache/summarizeme"
	}
	if cfg.Model.HubEndpoint == "" {
		cfg.Model.HubEndpoint = "https://huggingface.co"
	}
	if len(cfg.CORS.AllowOrigins) == 0 {
		cfg.CORS.AllowOrigins = []string{"*"}
	}
	cfg.Model.HubEndpoint = strings.TrimRight(cfg.Model.HubEndpoint, "/")
}
