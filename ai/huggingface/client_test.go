package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HarVkr/jiopay-rag-chatbot/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(inferenceURL, serviceURL string) *ai.Config {
	return ai.NewConfig(
		ai.WithInferenceEndpoint(inferenceURL),
		ai.WithInferenceToken("test-token"),
		ai.WithFallbackServiceURL(serviceURL),
	)
}

func TestInferenceClient_EmbedText(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Inputs)
		assert.True(t, req.Options.WaitForModel)

		json.NewEncoder(w).Encode([]float32{0.1, 0.2, 0.3})
	}))
	defer srv.Close()

	client, err := NewInferenceClient(testConfig(srv.URL, "http://localhost:5000/embed"))
	require.NoError(t, err)

	vector, err := client.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestInferenceClient_NestedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([][]float32{{0.5, 0.5}})
	}))
	defer srv.Close()

	client, err := NewInferenceClient(testConfig(srv.URL, "http://localhost:5000/embed"))
	require.NoError(t, err)

	vector, err := client.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, vector)
}

func TestInferenceClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewInferenceClient(testConfig(srv.URL, "http://localhost:5000/embed"))
	require.NoError(t, err)

	_, err = client.EmbedText(context.Background(), "hello")
	assert.Error(t, err)
}

func TestInferenceClient_EmptyEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]float32{})
	}))
	defer srv.Close()

	client, err := NewInferenceClient(testConfig(srv.URL, "http://localhost:5000/embed"))
	require.NoError(t, err)

	_, err = client.EmbedText(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrEmptyEmbedding)
}

func TestLocalServiceClient_EmbedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req localServiceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Text)

		json.NewEncoder(w).Encode(localServiceResponse{Embedding: []float32{1, 0}})
	}))
	defer srv.Close()

	client, err := NewLocalServiceClient(testConfig("https://inference.example.com", srv.URL))
	require.NoError(t, err)

	vector, err := client.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vector)
}

func TestLocalServiceClient_EmbedTexts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(localServiceResponse{Embedding: []float32{float32(calls), 0}})
	}))
	defer srv.Close()

	client, err := NewLocalServiceClient(testConfig("https://inference.example.com", srv.URL))
	require.NoError(t, err)

	vectors, err := client.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []float32{1, 0}, vectors[0])
}
