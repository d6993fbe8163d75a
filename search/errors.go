package search

import "errors"

// ErrChunkRepositoryRequired indicates a Router was constructed without
// a chunk repository.
var ErrChunkRepositoryRequired = errors.New("chunk repository is required")
