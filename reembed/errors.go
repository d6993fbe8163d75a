package reembed

import "errors"

var (
	// ErrChunkRepositoryRequired indicates a Reembedder was constructed
	// without a chunk repository.
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrEmbedderRequired indicates a Reembedder was constructed without an
	// embedder.
	ErrEmbedderRequired = errors.New("embedder is required")
)
