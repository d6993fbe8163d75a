package storage

import (
	"testing"
	"time"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalID_RoundTrip(t *testing.T) {
	ids := []core.ID{0, 1, 42, 1<<63 + 7}
	for _, id := range ids {
		got, err := UnmarshalID(MarshalID(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestUnmarshalID_Truncated(t *testing.T) {
	_, err := UnmarshalID([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalChunk_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	chunk := &core.Chunk{
		Id:         core.IDFromContent("settlement timing"),
		Content:    "Settlements reach your bank account within one working day.",
		SourceFile: "faq_settlements.json",
		SourceType: "faq",
		Topic:      "settlements",
		IsFAQ:      true,
		TokenCount: 12,
		Metadata:   map[string]string{"question": "When do I get settled?"},
		InsertedAt: now,
		Vector:     []float32{0.1, 0.2, 0.3},
	}

	data, err := MarshalChunk(chunk)
	require.NoError(t, err)

	got, err := UnmarshalChunk(data)
	require.NoError(t, err)
	assert.Equal(t, chunk, got)
}

func TestUnmarshalChunk_Garbage(t *testing.T) {
	_, err := UnmarshalChunk([]byte("{not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
