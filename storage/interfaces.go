package storage

import (
	"context"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
)

// Flag selects a boolean chunk attribute for raw filtered lookups.
type Flag int

const (
	// FlagPDF selects chunks extracted from policy PDF documents.
	FlagPDF Flag = iota + 1
	// FlagFAQ selects chunks scraped from the FAQ corpus.
	FlagFAQ
)

// Repository provides common storage operations shared across backends.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides retrieval and maintenance operations for corpus chunks.
// Retrieval operations return chunks in relevance-descending order with the
// Similarity field populated (FilterByFlag leaves it zero).
type ChunkRepository interface {
	Repository

	// AddChunks adds one or more chunks to storage.
	// Chunks with ID=0 get a content-derived ID, so re-adding identical content
	// overwrites rather than duplicates. Sets InsertedAt if not already set.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// DeleteChunks removes chunks by their IDs.
	// Returns ErrNotFound if any chunk doesn't exist.
	DeleteChunks(ctx context.Context, ids ...core.ID) error

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// ListChunkIDs returns the IDs of all stored chunks.
	ListChunkIDs(ctx context.Context) ([]core.ID, error)

	// SimilaritySearch finds chunks similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results.
	SimilaritySearch(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.Chunk, error)

	// TopicSearch finds chunks similar to the vector within a single topic.
	TopicSearch(ctx context.Context, vector []float32, topic string, limit int) ([]*core.Chunk, error)

	// FAQSearch finds FAQ-flagged chunks similar to the vector.
	FAQSearch(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.Chunk, error)

	// HybridSearch blends vector similarity with keyword overlap against the
	// raw query text. Weights should sum to 1; the combined score is stored in
	// each chunk's Similarity field.
	HybridSearch(ctx context.Context, vector []float32, queryText string, semanticWeight, keywordWeight float32, limit int) ([]*core.Chunk, error)

	// FilterByFlag returns up to limit chunks carrying the given flag, with no
	// similarity ranking. Used as a degraded fallback lookup.
	FilterByFlag(ctx context.Context, flag Flag, limit int) ([]*core.Chunk, error)
}
