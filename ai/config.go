// Copyright 2025 The jiopay-rag-chatbot Authors
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
	// EmbeddingHost is the base URL of the local OpenAI-compatible embedding
	// server, the first tier of the embedding fallback chain.
	// Example: "http://localhost:11434/v1"
	EmbeddingHost string

	// EmbeddingModel is the model identifier for local embeddings.
	// Example: "all-minilm", "embeddinggemma"
	EmbeddingModel string

	// EmbeddingDim is the expected embedding dimensionality. Every tier of the
	// fallback chain must produce vectors of this length.
	// Default: 384 (all-MiniLM-L6-v2)
	EmbeddingDim int

	// InferenceEndpoint is the hosted embedding inference URL, the second tier
	// of the fallback chain.
	InferenceEndpoint string

	// InferenceToken authorizes calls to the hosted inference endpoint.
	// May be empty for endpoints that don't require authentication.
	InferenceToken string

	// FallbackServiceURL is the last-resort local embedding microservice, the
	// third tier of the fallback chain.
	FallbackServiceURL string

	// GeneratorHost is the base URL of the OpenAI-compatible chat server used
	// for answer generation.
	GeneratorHost string

	// GeneratorModel is the model identifier for answer generation.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	GeneratorModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the local embedding server host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the local embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithEmbeddingDim sets the expected embedding dimensionality.
func WithEmbeddingDim(dim int) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDim = dim
	}
}

// WithInferenceEndpoint sets the hosted inference endpoint URL.
func WithInferenceEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.InferenceEndpoint = endpoint
	}
}

// WithInferenceToken sets the hosted inference API token.
func WithInferenceToken(token string) ConfigOption {
	return func(c *Config) {
		c.InferenceToken = token
	}
}

// WithFallbackServiceURL sets the local fallback embedding service URL.
func WithFallbackServiceURL(url string) ConfigOption {
	return func(c *Config) {
		c.FallbackServiceURL = url
	}
}

// WithGeneratorHost sets the generation server host URL.
func WithGeneratorHost(host string) ConfigOption {
	return func(c *Config) {
		c.GeneratorHost = host
	}
}

// WithHost sets both embedding and generator hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.GeneratorHost = host
	}
}

// WithGeneratorModel sets the generation model identifier.
func WithGeneratorModel(model string) ConfigOption {
	return func(c *Config) {
		c.GeneratorModel = model
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services and the public MiniLM inference endpoint.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:      defaultHost,
		EmbeddingModel:     "all-minilm",
		EmbeddingDim:       384,
		InferenceEndpoint:  "https://api-inference.huggingface.co/models/sentence-transformers/all-MiniLM-L6-v2",
		FallbackServiceURL: "http://localhost:5000/embed",
		GeneratorHost:      defaultHost,
		GeneratorModel:     "qwen2.5:3b",
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("all-minilm"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to OpenAI-compatible hosts if missing,
// which is required by most such APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.GeneratorHost != "" && !strings.HasSuffix(c.GeneratorHost, "/v1") {
		c.GeneratorHost = strings.TrimSuffix(c.GeneratorHost, "/")
		c.GeneratorHost = c.GeneratorHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.EmbeddingDim <= 0 {
		return errors.New("ai config: EmbeddingDim must be positive")
	}
	if c.InferenceEndpoint == "" {
		return errors.New("ai config: InferenceEndpoint is required")
	}
	if c.FallbackServiceURL == "" {
		return errors.New("ai config: FallbackServiceURL is required")
	}
	if c.GeneratorHost == "" {
		return errors.New("ai config: GeneratorHost is required")
	}
	if c.GeneratorModel == "" {
		return errors.New("ai config: GeneratorModel is required")
	}
	return nil
}
