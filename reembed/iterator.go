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


package reembed

import (
	"context"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/storage"
)

// DefaultBatchSize is the fallback number of chunks loaded per batch.
const DefaultBatchSize = 100

// ChunkIterator walks every stored chunk in ID batches, loading chunk bodies
// only for the batch in flight.
type ChunkIterator struct {
	chunks    storage.ChunkRepository
	batchSize int
}

// NewChunkIterator creates an iterator loading batchSize chunks at a time.
// A non-positive batchSize falls back to DefaultBatchSize.
func NewChunkIterator(chunks storage.ChunkRepository, batchSize int) *ChunkIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ChunkIterator{
		chunks:    chunks,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of chunks. Iteration stops on the first
// error from fn; context cancellation is checked between batches.
func (it *ChunkIterator) ForEach(ctx context.Context, fn func([]*core.Chunk) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	ids, err := it.chunks.ListChunkIDs(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(ids); start += it.batchSize {
		end := min(start+it.batchSize, len(ids))

		batch, err := it.chunks.GetChunks(ctx, ids[start:end]...)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			continue
		}

		if err := fn(batch); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
