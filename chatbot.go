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


// Package jiopayrag wires the storage backend, the AI provider, the search
// router, and the prompt assembly into the JioPay Business support chatbot.
package jiopayrag

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/HarVkr/jiopay-rag-chatbot/ai"
	"github.com/HarVkr/jiopay-rag-chatbot/ai/openai"
	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/ingestion"
	"github.com/HarVkr/jiopay-rag-chatbot/prompt"
	"github.com/HarVkr/jiopay-rag-chatbot/reembed"
	"github.com/HarVkr/jiopay-rag-chatbot/search"
	"github.com/HarVkr/jiopay-rag-chatbot/storage"
	"github.com/HarVkr/jiopay-rag-chatbot/storage/badger"
)

// NoInfoAnswer is returned when retrieval finds nothing relevant. It is a
// content message, not an error.
const NoInfoAnswer = "I couldn't find specific information about that in the JioPay Business documentation. Please try rephrasing your question or check our support resources."

// Chatbot is the top-level handle over the knowledge base and its services.
type Chatbot struct {
	backend   *badger.Backend
	chunkRepo storage.ChunkRepository
	provider  ai.Provider
	router    *search.Router
	logger    *slog.Logger
}

// ChatbotOption configures a Chatbot.
type ChatbotOption func(*chatbotOptions)

type chatbotOptions struct {
	aiConfig   *ai.Config
	provider   ai.Provider
	inMemory   bool
	maxResults int
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) ChatbotOption {
	return func(o *chatbotOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider, bypassing the config-driven
// construction. Used by tests.
func WithProvider(provider ai.Provider) ChatbotOption {
	return func(o *chatbotOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps the knowledge base in memory instead of on disk.
func WithInMemoryStorage() ChatbotOption {
	return func(o *chatbotOptions) {
		o.inMemory = true
	}
}

// WithMaxResults caps the number of chunks retrieval returns per question.
func WithMaxResults(n int) ChatbotOption {
	return func(o *chatbotOptions) {
		o.maxResults = n
	}
}

// NewChatbot opens the knowledge base at filePath and wires the retrieval
// and generation services around it.
func NewChatbot(filePath string, opts ...ChatbotOption) (*Chatbot, error) {
	options := &chatbotOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	routerOpts := []search.Option{}
	if options.maxResults > 0 {
		routerOpts = append(routerOpts, search.WithMaxResults(options.maxResults))
	}
	router, err := search.NewRouter(chunkRepo, routerOpts...)
	if err != nil {
		provider.Close()
		chunkRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Chatbot{
		backend:   backend,
		chunkRepo: chunkRepo,
		provider:  provider,
		router:    router,
		logger:    slog.Default().With("component", "chatbot"),
	}, nil
}

// Ask answers one question against the knowledge base.
//
// The message is trimmed and rejected if blank. Embedding failure is the
// only retrieval-side error that propagates; routing itself always yields a
// result. An empty retrieval produces the no-information answer with zero
// sources rather than an error.
func (c *Chatbot) Ask(ctx context.Context, message string) (*core.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, core.ErrEmptyMessage
	}

	vector, err := c.provider.Embedder().EmbedText(ctx, message)
	if err != nil {
		c.logger.Error("query embedding failed", "err", err)
		return nil, err
	}

	result := c.router.Route(ctx, message, vector)
	c.logger.Info("query routed",
		"searchType", result.SearchType,
		"topic", result.Topic,
		"count", result.Count)

	contextBlock := prompt.BuildContext(result.Results)
	if contextBlock == "" || result.Count == 0 {
		return &core.ChatResponse{
			Answer:     NoInfoAnswer,
			Sources:    []core.Source{},
			SearchType: result.SearchType,
		}, nil
	}

	answer, err := c.provider.Generator().GenerateAnswer(ctx,
		prompt.BuildAnswerPrompt(message, contextBlock))
	if err != nil {
		c.logger.Error("answer generation failed", "err", err)
		return nil, err
	}

	sources := make([]core.Source, len(result.Results))
	for i, chunk := range result.Results {
		sources[i] = core.Source{
			Id:         i + 1,
			Content:    chunk.Content,
			SourceType: chunk.SourceType,
			Topic:      chunk.Topic,
			Similarity: chunk.Similarity,
		}
	}

	return &core.ChatResponse{
		Answer:       answer,
		Sources:      sources,
		SearchType:   result.SearchType,
		SearchTopic:  result.Topic,
		TotalSources: result.Count,
	}, nil
}

// ChunkRepository exposes the underlying chunk store.
func (c *Chatbot) ChunkRepository() storage.ChunkRepository {
	return c.chunkRepo
}

// NewIngestionPipeline creates an ingestion pipeline bound to this chatbot's
// store and embedder.
func (c *Chatbot) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.chunkRepo, c.provider.Embedder(), opts...)
}

// NewReembedder creates a re-embedder over this chatbot's store and embedder,
// writing progress output to progress.
func (c *Chatbot) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(c.chunkRepo, c.provider.Embedder(), config, progress)
}

// Close releases the AI provider, the repositories, and the backend.
func (c *Chatbot) Close() error {
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	if err := c.chunkRepo.Close(); err != nil {
		c.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
