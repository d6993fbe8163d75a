package badger

import (
	"context"
	"slices"
	"time"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/storage"
	"github.com/dgraph-io/badger/v4"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// Similarity floor applied to topic-scoped search; the topic filter already
// narrows the candidate set, so the floor matches the basic-search threshold.
const topicMinSimilarity = 0.3

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &ChunkRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *ChunkRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddChunks adds one or more chunks to storage.
// Chunks with ID=0 get an ID derived from their content, making re-ingestion
// of the same corpus idempotent.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if err := core.ValidateChunk(chunk); err != nil {
				return err
			}

			if chunk.Id == 0 {
				chunk.Id = core.IDFromContent(chunk.Content)
			}
			if chunk.InsertedAt.IsZero() {
				chunk.InsertedAt = time.Now().UTC()
			}
			chunk.UpdatedAt = time.Now().UTC()

			value, err := storage.MarshalChunk(chunk)
			if err != nil {
				return err
			}
			if err := tx.Set(makeChunkKey(chunk.Id), value); err != nil {
				return err
			}

			if err := r.updateIndices(tx, chunk); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// updateIndices writes the topic and flag index entries for a chunk.
func (r *ChunkRepository) updateIndices(tx *badger.Txn, chunk *core.Chunk) error {
	idValue := storage.MarshalID(chunk.Id)

	if chunk.Topic != "" {
		if err := tx.Set(makeChunkTopicKey(chunk.Topic, chunk.Id), idValue); err != nil {
			return err
		}
	}
	if chunk.IsPDF {
		if err := tx.Set(makeChunkFlagKey(flagMarkerPDF, chunk.Id), idValue); err != nil {
			return err
		}
	}
	if chunk.IsFAQ {
		if err := tx.Set(makeChunkFlagKey(flagMarkerFAQ, chunk.Id), idValue); err != nil {
			return err
		}
	}
	return nil
}

// deleteIndices removes the topic and flag index entries for a chunk.
func (r *ChunkRepository) deleteIndices(tx *badger.Txn, chunk *core.Chunk) error {
	if chunk.Topic != "" {
		if err := tx.Delete(makeChunkTopicKey(chunk.Topic, chunk.Id)); err != nil {
			return err
		}
	}
	if chunk.IsPDF {
		if err := tx.Delete(makeChunkFlagKey(flagMarkerPDF, chunk.Id)); err != nil {
			return err
		}
	}
	if chunk.IsFAQ {
		if err := tx.Delete(makeChunkFlagKey(flagMarkerFAQ, chunk.Id)); err != nil {
			return err
		}
	}
	return nil
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	var chunk *core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		chunk, err = r.readChunk(tx, makeChunkKey(id))
		if err != nil {
			return err
		}
		if chunk == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// GetChunks retrieves multiple chunks by their IDs.
// Missing chunks are skipped without error.
func (r *ChunkRepository) GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error) {
	chunks := make([]*core.Chunk, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			chunk, err := r.readChunk(tx, makeChunkKey(id))
			if err != nil {
				return err
			}
			if chunk != nil {
				chunks = append(chunks, chunk)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// DeleteChunks removes chunks and their index entries by ID.
func (r *ChunkRepository) DeleteChunks(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChunkKey(id)
			chunk, err := r.readChunk(tx, key)
			if err != nil {
				return err
			}
			if chunk == nil {
				return storage.ErrNotFound
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := r.deleteIndices(tx, chunk); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountChunks returns the number of stored chunks.
func (r *ChunkRepository) CountChunks(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListChunkIDs returns the IDs of all stored chunks by walking the key space
// without loading chunk values.
func (r *ChunkRepository) ListChunkIDs(ctx context.Context) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			id, err := parseChunkKey(iter.Item().Key())
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SimilaritySearch finds chunks similar to the given vector.
func (r *ChunkRepository) SimilaritySearch(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.Chunk, error) {
	return r.scanSimilar(vector, minSimilarity, limit, nil)
}

// TopicSearch finds chunks similar to the vector within a single topic.
func (r *ChunkRepository) TopicSearch(ctx context.Context, vector []float32, topic string, limit int) ([]*core.Chunk, error) {
	if topic == "" {
		return nil, storage.ErrInvalidQuery
	}

	ids, err := r.indexedIDs(makePartialChunkTopicKey(topic), 0)
	if err != nil {
		return nil, err
	}

	chunks, err := r.GetChunks(ctx, ids...)
	if err != nil {
		return nil, err
	}
	return rankBySimilarity(chunks, vector, topicMinSimilarity, limit), nil
}

// FAQSearch finds FAQ-flagged chunks similar to the vector.
func (r *ChunkRepository) FAQSearch(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.Chunk, error) {
	ids, err := r.indexedIDs(makePartialChunkFlagKey(flagMarkerFAQ), 0)
	if err != nil {
		return nil, err
	}

	chunks, err := r.GetChunks(ctx, ids...)
	if err != nil {
		return nil, err
	}
	return rankBySimilarity(chunks, vector, minSimilarity, limit), nil
}

// HybridSearch blends vector similarity with keyword overlap.
// The combined score is stored in each result's Similarity field.
func (r *ChunkRepository) HybridSearch(ctx context.Context, vector []float32, queryText string, semanticWeight, keywordWeight float32, limit int) ([]*core.Chunk, error) {
	if semanticWeight < 0 || keywordWeight < 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Chunk
	err := r.scanChunks(func(chunk *core.Chunk) error {
		if len(chunk.Vector) == 0 {
			return nil
		}
		combined := semanticWeight*core.DotProduct(vector, chunk.Vector) +
			keywordWeight*keywordScore(chunk.Content, queryText)
		if combined >= hybridMinScore {
			chunk.Similarity = combined
			results = append(results, chunk)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortBySimilarity(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// hybridMinScore filters hybrid results with neither meaningful vector
// similarity nor keyword overlap.
const hybridMinScore = 0.2

// FilterByFlag returns up to limit chunks carrying the given flag, unranked.
func (r *ChunkRepository) FilterByFlag(ctx context.Context, flag storage.Flag, limit int) ([]*core.Chunk, error) {
	var marker string
	switch flag {
	case storage.FlagPDF:
		marker = flagMarkerPDF
	case storage.FlagFAQ:
		marker = flagMarkerFAQ
	default:
		return nil, storage.ErrInvalidFlag
	}

	ids, err := r.indexedIDs(makePartialChunkFlagKey(marker), limit)
	if err != nil {
		return nil, err
	}
	return r.GetChunks(ctx, ids...)
}

// scanSimilar walks all chunks, scoring by dot product against the query
// vector (cosine similarity for unit vectors). A nil filter accepts all.
func (r *ChunkRepository) scanSimilar(vector []float32, minSimilarity float32, limit int, filter func(*core.Chunk) bool) ([]*core.Chunk, error) {
	var results []*core.Chunk
	err := r.scanChunks(func(chunk *core.Chunk) error {
		// Skip chunks without embeddings
		if len(chunk.Vector) == 0 {
			return nil
		}
		if filter != nil && !filter(chunk) {
			return nil
		}
		similarity := core.DotProduct(vector, chunk.Vector)
		if similarity >= minSimilarity {
			chunk.Similarity = similarity
			results = append(results, chunk)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortBySimilarity(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// scanChunks iterates every stored chunk inside a read transaction.
func (r *ChunkRepository) scanChunks(fn func(*core.Chunk) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil {
				continue
			}
			if err := fn(chunk); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// indexedIDs collects chunk IDs from an index prefix. limit=0 means no limit.
func (r *ChunkRepository) indexedIDs(prefix []byte, limit int) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(ids) >= limit {
				break
			}
			err := iter.Item().Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				ids = append(ids, id)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// rankBySimilarity scores chunks against the query vector, drops those below
// the threshold or without embeddings, and returns the top results.
func rankBySimilarity(chunks []*core.Chunk, vector []float32, minSimilarity float32, limit int) []*core.Chunk {
	results := make([]*core.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Vector) == 0 {
			continue
		}
		similarity := core.DotProduct(vector, chunk.Vector)
		if similarity >= minSimilarity {
			chunk.Similarity = similarity
			results = append(results, chunk)
		}
	}

	sortBySimilarity(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func sortBySimilarity(chunks []*core.Chunk) {
	slices.SortFunc(chunks, func(a, b *core.Chunk) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})
}

// readChunk reads and unmarshals a chunk, returning nil when the key is absent.
func (r *ChunkRepository) readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var err error
		chunk, err = storage.UnmarshalChunk(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return chunk, nil
}
