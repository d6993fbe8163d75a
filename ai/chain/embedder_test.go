package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/HarVkr/jiopay-rag-chatbot/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingEmbedder(err error) *mock.MockEmbedder {
	m := mock.NewMockEmbedder()
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, err
	}
	m.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, err
	}
	return m
}

func fixedEmbedder(vector []float32) *mock.MockEmbedder {
	m := mock.NewMockEmbedder()
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vector, nil
	}
	m.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = vector
		}
		return vectors, nil
	}
	return m
}

func TestNewEmbedder_Validation(t *testing.T) {
	_, err := NewEmbedder(384)
	assert.ErrorIs(t, err, ErrNoTiers)

	_, err = NewEmbedder(0, mock.NewMockEmbedder())
	assert.Error(t, err)
}

func TestEmbedText_FirstTierWins(t *testing.T) {
	first := fixedEmbedder([]float32{3, 4, 0})
	second := fixedEmbedder([]float32{0, 1, 0})

	chain, err := NewEmbedder(3, first, second)
	require.NoError(t, err)

	vector, err := chain.EmbedText(context.Background(), "hello")
	require.NoError(t, err)

	// Normalized output from the first tier; the second is never consulted.
	assert.InDelta(t, 0.6, vector[0], 1e-5)
	assert.InDelta(t, 0.8, vector[1], 1e-5)
	assert.Equal(t, 1, first.CallCount())
	assert.Equal(t, 0, second.CallCount())
}

func TestEmbedText_FallsThroughInOrder(t *testing.T) {
	first := failingEmbedder(errors.New("model server down"))
	second := failingEmbedder(errors.New("inference down"))
	third := fixedEmbedder([]float32{0, 0, 1})

	chain, err := NewEmbedder(3, first, second, third)
	require.NoError(t, err)

	vector, err := chain.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1}, vector)
	assert.Equal(t, 1, first.CallCount())
	assert.Equal(t, 1, second.CallCount())
	assert.Equal(t, 1, third.CallCount())
}

func TestEmbedText_AllFail_ReturnsFirstError(t *testing.T) {
	firstErr := errors.New("model server down")
	chain, err := NewEmbedder(3,
		failingEmbedder(firstErr),
		failingEmbedder(errors.New("inference down")),
		failingEmbedder(errors.New("service down")),
	)
	require.NoError(t, err)

	_, err = chain.EmbedText(context.Background(), "hello")
	assert.ErrorIs(t, err, firstErr)
}

func TestEmbedText_DimensionMismatchIsTierFailure(t *testing.T) {
	wrongDim := fixedEmbedder([]float32{1, 0})
	rightDim := fixedEmbedder([]float32{1, 0, 0})

	chain, err := NewEmbedder(3, wrongDim, rightDim)
	require.NoError(t, err)

	vector, err := chain.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vector, 3)
	assert.Equal(t, 1, rightDim.CallCount())
}

func TestEmbedTexts_NoMixedTiers(t *testing.T) {
	// First tier fails mid-batch by answering with a short vector.
	bad := mock.NewMockEmbedder()
	bad.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0, 0}, {1, 0}}, nil
	}
	good := fixedEmbedder([]float32{0, 1, 0})

	chain, err := NewEmbedder(3, bad, good)
	require.NoError(t, err)

	vectors, err := chain.EmbedTexts(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	for _, v := range vectors {
		assert.Equal(t, []float32{0, 1, 0}, v)
	}
}

func TestEmbedTexts_AllFail_ReturnsFirstError(t *testing.T) {
	firstErr := errors.New("model server down")
	chain, err := NewEmbedder(3,
		failingEmbedder(firstErr),
		failingEmbedder(errors.New("inference down")),
	)
	require.NoError(t, err)

	_, err = chain.EmbedTexts(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, firstErr)
}
