package ingestion

import "errors"

var (
	// ErrChunkRepositoryRequired indicates a Pipeline was constructed without
	// a chunk repository.
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrEmbedderRequired indicates a Pipeline was constructed without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidMaxAttempts indicates RetryWithBackoff was called with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrCorpusParse indicates a corpus file could not be decoded.
	ErrCorpusParse = errors.New("corpus file parse failed")

	// ErrEmbeddingCountMismatch indicates the embedder returned a different
	// number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match batch size")
)
