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


package openai

import (
	"log/slog"

	"github.com/HarVkr/jiopay-rag-chatbot/ai"
	"github.com/HarVkr/jiopay-rag-chatbot/ai/chain"
	"github.com/HarVkr/jiopay-rag-chatbot/ai/huggingface"
)

// Provider implements ai.Provider with the full embedding fallback chain and
// an OpenAI-compatible answer generator.
//
// The embedder tiers, in order:
//  1. the local model server (this package)
//  2. the hosted inference endpoint (ai/huggingface)
//  3. the local embedding microservice (ai/huggingface)
type Provider struct {
	config    *ai.Config
	embedder  ai.Embedder
	generator *Generator
	logger    *slog.Logger
}

// NewProvider creates a new AI provider wired with the embedding fallback
// chain and the answer generator. The config is validated and normalized
// before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	local, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	hosted, err := huggingface.NewInferenceClient(config)
	if err != nil {
		return nil, err
	}

	service, err := huggingface.NewLocalServiceClient(config)
	if err != nil {
		return nil, err
	}

	embedder, err := chain.NewEmbedder(config.EmbeddingDim, local, hosted, service)
	if err != nil {
		return nil, err
	}

	generator, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		generator: generator,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the embedding fallback chain.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the answer generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
