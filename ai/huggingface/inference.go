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


package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/HarVkr/jiopay-rag-chatbot/ai"
)

// ErrEmptyEmbedding indicates the endpoint answered successfully but
// produced no vector.
var ErrEmptyEmbedding = errors.New("inference endpoint returned empty embedding")

// InferenceClient implements ai.Embedder against a hosted feature-extraction
// inference endpoint. It is the second tier of the embedding fallback chain.
type InferenceClient struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *slog.Logger
}

// inferenceRequest is the hosted endpoint request format. The options ask
// the service to block until the model is loaded rather than answer 503.
type inferenceRequest struct {
	Inputs  string           `json:"inputs"`
	Options inferenceOptions `json:"options"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

// NewInferenceClient creates an embedding client for the hosted inference
// endpoint configured in config.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewInferenceClient(config *ai.Config) (ai.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &InferenceClient{
		endpoint: config.InferenceEndpoint,
		token:    config.InferenceToken,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default().With("component", "hf-inference"),
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
func (c *InferenceClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs: text,
		Options: inferenceOptions{
			WaitForModel: true,
			UseCache:     true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("inference endpoint unreachable", "err", err)
		return nil, fmt.Errorf("calling inference endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("inference endpoint error", "status", resp.StatusCode)
		return nil, fmt.Errorf("inference endpoint returned status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading inference response: %w", err)
	}

	vector, err := decodeVector(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("hosted inference embedding generated", "dims", len(vector))
	return vector, nil
}

// EmbedTexts generates vector embeddings for multiple text strings.
// The endpoint is called per text; batching is not part of its contract for
// feature-extraction pipelines across model variants.
func (c *InferenceClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
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

// decodeVector handles both response shapes the feature-extraction pipeline
// produces: a flat vector, or a batch holding a single vector.
func decodeVector(payload []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(payload, &flat); err == nil {
		if len(flat) == 0 {
			return nil, ErrEmptyEmbedding
		}
		return flat, nil
	}

	var nested [][]float32
	if err := json.Unmarshal(payload, &nested); err != nil {
		return nil, fmt.Errorf("decoding inference response: %w", err)
	}
	if len(nested) == 0 || len(nested[0]) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return nested[0], nil
}
