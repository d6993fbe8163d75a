package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/HarVkr/jiopay-rag-chatbot/ai/mock"
	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/storage"
	"github.com/HarVkr/jiopay-rag-chatbot/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.ChunkRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func corpusChunks(n int) []*core.Chunk {
	chunks := make([]*core.Chunk, n)
	for i := range chunks {
		chunks[i] = &core.Chunk{
			Content:    "FAQ entry number " + string(rune('a'+i)),
			SourceType: "faq",
			Topic:      "general",
			IsFAQ:      true,
		}
	}
	return chunks
}

func TestNewPipeline_Validation(t *testing.T) {
	repo := newTestRepo(t)

	_, err := NewPipeline(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewPipeline(repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestIngestChunks(t *testing.T) {
	repo := newTestRepo(t)
	pipeline, err := NewPipeline(repo, mock.NewMockEmbedder(), WithBatchSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	stored, err := pipeline.IngestChunks(ctx, corpusChunks(5))
	require.NoError(t, err)
	assert.Equal(t, 5, stored)

	count, err := repo.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestIngestChunks_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	pipeline, err := NewPipeline(repo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	_, err = pipeline.IngestChunks(ctx, corpusChunks(3))
	require.NoError(t, err)
	_, err = pipeline.IngestChunks(ctx, corpusChunks(3))
	require.NoError(t, err)

	count, err := repo.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIngestChunks_RetriesEmbedding(t *testing.T) {
	repo := newTestRepo(t)

	var calls atomic.Int32
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("transient failure")
		}
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = mock.DeterministicVector(text, 384)
		}
		return vectors, nil
	}

	pipeline, err := NewPipeline(repo, embedder, WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	defer pipeline.Release()

	stored, err := pipeline.IngestChunks(context.Background(), corpusChunks(2))
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestIngestChunks_FailedBatchDoesNotBlockOthers(t *testing.T) {
	repo := newTestRepo(t)

	boom := errors.New("permanent failure")
	var batches atomic.Int32
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if batches.Add(1) == 1 {
			return nil, boom
		}
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = mock.DeterministicVector(text, 384)
		}
		return vectors, nil
	}

	pipeline, err := NewPipeline(repo, embedder,
		WithBatchSize(2), WithPoolSize(1), WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	defer pipeline.Release()

	stored, err := pipeline.IngestChunks(context.Background(), corpusChunks(4))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, stored)
}

func TestIngestFile(t *testing.T) {
	repo := newTestRepo(t)
	pipeline, err := NewPipeline(repo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	path := filepath.Join(t.TempDir(), "corpus.json")
	payload := `[
		{"content": "How do I log in?", "source_type": "faq", "topic": "app_dashboard", "is_faq": true},
		{"content": "   ", "source_type": "faq"},
		{"content": "Grievance policy.", "source_type": "pdf", "topic": "pdf_policy", "is_pdf": true}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	stored, err := pipeline.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
}

func TestLoadCorpusFile_Errors(t *testing.T) {
	_, err := LoadCorpusFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadCorpusFile(path)
	assert.ErrorIs(t, err, ErrCorpusParse)
}

func TestLoadCorpusFile_DefaultsSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	payload := `[{"content": "Entry.", "source_type": "web_page"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	chunks, err := LoadCorpusFile(path)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, path, chunks[0].SourceFile)
}
