// Copyright 2026 Sokbolag AB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// RefinerHost is the base URL for the chat/refinement service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	RefinerHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// RefinerModel is the model identifier to use for candidate refinement.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	RefinerModel string

	// MinRelevance is the minimum relevance score (0.0-1.0) for refined codes.
	// Codes with relevance below this threshold are filtered out.
	// Default: 0.4
	MinRelevance float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithRefinerHost sets the refiner service host URL.
func WithRefinerHost(host string) ConfigOption {
	return func(c *Config) {
		c.RefinerHost = host
	}
}

// WithHost sets both embedding and refiner hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.RefinerHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithRefinerModel sets the refiner model identifier.
func WithRefinerModel(model string) ConfigOption {
	return func(c *Config) {
		c.RefinerModel = model
	}
}

// WithMinRelevance sets the minimum relevance threshold for refined codes.
func WithMinRelevance(min float64) ConfigOption {
	return func(c *Config) {
		c.MinRelevance = min
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and refiner use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		RefinerHost:    defaultHost,
		EmbeddingModel: "embeddinggemma",
		RefinerModel:   "qwen2.5:3b",
		MinRelevance:   0.4,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.RefinerHost != "" && !strings.HasSuffix(c.RefinerHost, "/v1") {
		c.RefinerHost = strings.TrimSuffix(c.RefinerHost, "/")
		c.RefinerHost = c.RefinerHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.RefinerHost == "" {
		return errors.New("ai config: RefinerHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.RefinerModel == "" {
		return errors.New("ai config: RefinerModel is required")
	}
	if c.MinRelevance < 0 || c.MinRelevance > 1 {
		return errors.New("ai config: MinRelevance must be between 0 and 1")
	}
	return nil
}
