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


package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/HarVkr/jiopay-rag-chatbot/ai"
	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/storage"
	"github.com/panjf2000/ants/v2"
)

// Embedding retry defaults.
const (
	defaultBatchSize   = 16
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// Pipeline embeds and stores corpus chunks using a worker pool.
type Pipeline struct {
	chunks      storage.ChunkRepository
	embedder    ai.Embedder
	pool        *ants.Pool
	batchSize   int
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per worker task.
// Default is 16.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.batchSize = size
		}
		return nil
	}
}

// WithRetry sets the embedding retry policy.
// Defaults are 3 attempts with a 500ms base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(chunks storage.ChunkRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunks:      chunks,
		embedder:    embedder,
		pool:        pool,
		batchSize:   defaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestFile loads a scraped corpus file and ingests its chunks.
// Returns the number of chunks stored.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (int, error) {
	chunks, err := LoadCorpusFile(path)
	if err != nil {
		return 0, err
	}

	p.logger.Info("loaded corpus file", "path", path, "chunks", len(chunks))
	return p.IngestChunks(ctx, chunks)
}

// IngestChunks embeds and stores chunks in concurrent batches. Batches fail
// independently: a batch whose embedding retries are exhausted is skipped
// and reported in the joined error, while the rest of the corpus still
// lands. Returns the number of chunks stored.
func (p *Pipeline) IngestChunks(ctx context.Context, chunks []*core.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		stored int
		errs   []error
	)

	for start := 0; start < len(chunks); start += p.batchSize {
		end := min(start+p.batchSize, len(chunks))
		batch := chunks[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			n, err := p.ingestBatch(ctx, batch)
			mu.Lock()
			defer mu.Unlock()
			stored += n
			if err != nil {
				errs = append(errs, err)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()

	if len(errs) > 0 {
		p.logger.Warn("ingestion finished with failed batches",
			"stored", stored, "failedBatches", len(errs))
	} else {
		p.logger.Info("ingestion complete", "stored", stored)
	}
	return stored, errors.Join(errs...)
}

// ingestBatch embeds one batch with retry and writes it to the store.
func (p *Pipeline) ingestBatch(ctx context.Context, batch []*core.Chunk) (int, error) {
	texts := make([]string, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.Content
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = p.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, p.maxAttempts, p.baseDelay)
	if err != nil {
		p.logger.Error("batch embedding failed after retries", "size", len(batch), "err", err)
		return 0, err
	}

	if len(vectors) != len(batch) {
		p.logger.Error("embedding count mismatch", "expected", len(batch), "received", len(vectors))
		return 0, ErrEmbeddingCountMismatch
	}

	for i, chunk := range batch {
		chunk.Vector = vectors[i]
	}

	added, err := p.chunks.AddChunks(ctx, batch...)
	if err != nil {
		p.logger.Error("storing batch failed", "size", len(batch), "err", err)
		return 0, err
	}
	return len(added), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
