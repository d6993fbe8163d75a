package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/HarVkr/jiopay-rag-chatbot/ai"
)

// localServiceTimeout bounds each call to the fallback microservice. The
// service runs on the same host, so anything slower than this is down.
const localServiceTimeout = 5 * time.Second

// LocalServiceClient implements ai.Embedder against the local embedding
// microservice, the last tier of the embedding fallback chain.
type LocalServiceClient struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

type localServiceRequest struct {
	Text string `json:"text"`
}

type localServiceResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewLocalServiceClient creates an embedding client for the local fallback
// microservice configured in config.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewLocalServiceClient(config *ai.Config) (ai.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &LocalServiceClient{
		url: config.FallbackServiceURL,
		client: &http.Client{
			Timeout: localServiceTimeout,
		},
		logger: slog.Default().With("component", "hf-local-service"),
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
func (c *LocalServiceClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(localServiceRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling service request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating service request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("fallback service unreachable", "err", err)
		return nil, fmt.Errorf("calling fallback service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("fallback service error", "status", resp.StatusCode)
		return nil, fmt.Errorf("fallback service returned status %d", resp.StatusCode)
	}

	var decoded localServiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding service response: %w", err)
	}
	if len(decoded.Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}

	c.logger.Debug("fallback service embedding generated", "dims", len(decoded.Embedding))
	return decoded.Embedding, nil
}

// EmbedTexts generates vector embeddings for multiple text strings.
func (c *LocalServiceClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := c.EmbedText(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		vectors[i] = vector
	}
	return vectors, nil
}
