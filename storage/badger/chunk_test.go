package badger

import (
	"context"
	"testing"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.ChunkRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testChunks() []*core.Chunk {
	return []*core.Chunk{
		{
			Content:    "To create a collect link, open the dashboard and choose Collect Links.",
			SourceType: "faq",
			Topic:      "collect_links",
			IsFAQ:      true,
			Vector:     []float32{1, 0, 0},
		},
		{
			Content:    "Settlements are credited to your registered bank account by the next working day.",
			SourceType: "faq",
			Topic:      "settlements",
			IsFAQ:      true,
			Vector:     []float32{0.9, 0.436, 0},
		},
		{
			Content:    "Grievance redressal follows a three-level escalation matrix ending at the nodal officer.",
			SourceType: "pdf",
			Topic:      "pdf_policy",
			IsPDF:      true,
			Vector:     []float32{0, 1, 0},
		},
		{
			Content:    "JioPay Business supports UPI, cards, and wallets at checkout.",
			SourceType: "web_page",
			Topic:      "payment_gateway",
			Vector:     []float32{0, 0, 1},
		},
	}
}

func TestAddChunks_ContentIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)
	require.Len(t, added, 4)

	for _, chunk := range added {
		assert.Equal(t, core.IDFromContent(chunk.Content), chunk.Id)
		assert.False(t, chunk.InsertedAt.IsZero())
	}

	// Re-adding identical content overwrites instead of duplicating.
	_, err = repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	count, err := repo.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestAddChunks_Invalid(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.AddChunks(context.Background(), &core.Chunk{SourceType: "faq"})
	assert.ErrorIs(t, err, core.ErrEmptyContent)
}

func TestGetChunk(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	got, err := repo.GetChunk(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, added[0].Content, got.Content)
	assert.Equal(t, "collect_links", got.Topic)

	_, err = repo.GetChunk(ctx, core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteChunks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteChunks(ctx, added[0].Id))

	_, err = repo.GetChunk(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Index entries went with the record.
	chunks, err := repo.TopicSearch(ctx, []float32{1, 0, 0}, "collect_links", 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	assert.ErrorIs(t, repo.DeleteChunks(ctx, added[0].Id), storage.ErrNotFound)
}

func TestSimilaritySearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	chunks, err := repo.SimilaritySearch(ctx, []float32{1, 0, 0}, 0.3, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	// Relevance-descending order with scores populated.
	assert.Contains(t, chunks[0].Content, "collect link")
	assert.InDelta(t, 1.0, chunks[0].Similarity, 1e-5)
	assert.Greater(t, chunks[0].Similarity, chunks[1].Similarity)
}

func TestSimilaritySearch_Threshold(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	chunks, err := repo.SimilaritySearch(ctx, []float32{1, 0, 0}, 0.95, 10)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)

	chunks, err = repo.SimilaritySearch(ctx, []float32{0, 0, -1}, 0.2, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSimilaritySearch_Limit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	chunks, err := repo.SimilaritySearch(ctx, []float32{1, 0, 0}, 0.2, 1)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestTopicSearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	chunks, err := repo.TopicSearch(ctx, []float32{0.9, 0.436, 0}, "settlements", 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Content, "Settlements")

	// Other topics stay out even when the vector is close.
	chunks, err = repo.TopicSearch(ctx, []float32{1, 0, 0}, "settlements", 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	_, err = repo.TopicSearch(ctx, []float32{1, 0, 0}, "", 10)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestFAQSearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	chunks, err := repo.FAQSearch(ctx, []float32{1, 0, 0}, 0.4, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	for _, chunk := range chunks {
		assert.True(t, chunk.IsFAQ)
	}

	// Stricter threshold trims the weaker match.
	chunks, err = repo.FAQSearch(ctx, []float32{1, 0, 0}, 0.95, 10)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestHybridSearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	// The web chunk has low vector similarity but strong keyword overlap.
	chunks, err := repo.HybridSearch(ctx, []float32{1, 0, 0}, "jiopay checkout wallets", 0.7, 0.3, 10)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	var foundWeb bool
	for _, chunk := range chunks {
		if chunk.SourceType == "web_page" {
			foundWeb = true
		}
	}
	assert.True(t, foundWeb, "keyword overlap should surface the web chunk")

	_, err = repo.HybridSearch(ctx, []float32{1, 0, 0}, "query", -1, 0.3, 10)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestFilterByFlag(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	pdfs, err := repo.FilterByFlag(ctx, storage.FlagPDF, 10)
	require.NoError(t, err)
	require.Len(t, pdfs, 1)
	assert.True(t, pdfs[0].IsPDF)

	faqs, err := repo.FilterByFlag(ctx, storage.FlagFAQ, 1)
	require.NoError(t, err)
	assert.Len(t, faqs, 1)

	_, err = repo.FilterByFlag(ctx, storage.Flag(99), 10)
	assert.ErrorIs(t, err, storage.ErrInvalidFlag)
}

func TestSearch_SkipsUnembeddedChunks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddChunks(ctx, &core.Chunk{
		Content:    "not yet embedded",
		SourceType: "faq",
		IsFAQ:      true,
	})
	require.NoError(t, err)

	chunks, err := repo.SimilaritySearch(ctx, []float32{1, 0, 0}, 0.0, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestListChunkIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ids, err := repo.ListChunkIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	added, err := repo.AddChunks(ctx, testChunks()...)
	require.NoError(t, err)

	ids, err = repo.ListChunkIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, len(added))

	want := make([]core.ID, len(added))
	for i, chunk := range added {
		want[i] = chunk.Id
	}
	assert.ElementsMatch(t, want, ids)
}
