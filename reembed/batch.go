package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/HarVkr/jiopay-rag-chatbot/ai"
	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/ingestion"
	"github.com/HarVkr/jiopay-rag-chatbot/storage"
)

// BatchProcessor re-embeds one batch of chunks and writes the vectors back.
type BatchProcessor struct {
	chunks         storage.ChunkRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a processor retrying failed embedding calls up to
// maxRetries times with exponential backoff starting at retryBaseDelay.
func NewBatchProcessor(chunks storage.ChunkRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		chunks:         chunks,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds the batch contents and stores the updated chunks. Vectors
// are normalized so dot-product search remains a cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	var vectors [][]float32
	err := ingestion.RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: expected %d, got %d",
			ingestion.ErrEmbeddingCountMismatch, len(chunks), len(vectors))
	}

	for i := range chunks {
		chunks[i].Vector = core.NormalizeVector(vectors[i])
	}

	if _, err := bp.chunks.AddChunks(ctx, chunks...); err != nil {
		return fmt.Errorf("failed to update chunks: %w", err)
	}
	return nil
}
