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


// Package chain implements the ordered embedding fallback chain.
//
// An Embedder here wraps a list of ai.Embedder tiers and tries them in
// order until one produces a usable vector. Callers never see which tier
// answered; every tier's output is unit-normalized and dimension-checked, so
// vectors from different backends remain comparable in the store.
//
// When every tier fails, the error from the FIRST tier is returned. The
// primary backend's failure is the one worth diagnosing; the later tiers are
// best-effort stand-ins whose errors would only obscure it.
package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/HarVkr/jiopay-rag-chatbot/ai"
	"github.com/HarVkr/jiopay-rag-chatbot/core"
)

// ErrNoTiers indicates the chain was constructed without any embedders.
var ErrNoTiers = errors.New("embedding chain requires at least one tier")

// Embedder implements ai.Embedder over an ordered list of fallback tiers.
type Embedder struct {
	dim    int
	tiers  []ai.Embedder
	logger *slog.Logger
}

// NewEmbedder creates a fallback chain over the given tiers, tried in order.
// dim is the required output dimensionality; a tier answering with a vector
// of any other length counts as a failed tier.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(dim int, tiers ...ai.Embedder) (ai.Embedder, error) {
	if len(tiers) == 0 {
		return nil, ErrNoTiers
	}
	if dim <= 0 {
		return nil, fmt.Errorf("embedding chain: dimensionality must be positive, got %d", dim)
	}

	return &Embedder{
		dim:    dim,
		tiers:  tiers,
		logger: slog.Default().With("component", "embedding-chain"),
	}, nil
}

// EmbedText tries each tier in order and returns the first usable vector,
// unit-normalized. When all tiers fail, the first tier's error is returned.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var firstErr error

	for i, tier := range e.tiers {
		vector, err := tier.EmbedText(ctx, text)
		if err == nil {
			err = e.checkDim(vector)
		}
		if err != nil {
			e.logger.Warn("embedding tier failed", "tier", i, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if i > 0 {
			e.logger.Info("embedding served by fallback tier", "tier", i)
		}
		return core.NormalizeVector(vector), nil
	}

	e.logger.Error("all embedding tiers failed", "err", firstErr)
	return nil, firstErr
}

// EmbedTexts embeds a batch with the same tier ordering as EmbedText. A tier
// must succeed for the whole batch to be chosen; partial results are not
// mixed across tiers.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	var firstErr error

	for i, tier := range e.tiers {
		vectors, err := tier.EmbedTexts(ctx, texts)
		if err == nil {
			for _, v := range vectors {
				if err = e.checkDim(v); err != nil {
					break
				}
			}
		}
		if err != nil {
			e.logger.Warn("embedding tier failed", "tier", i, "count", len(texts), "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if i > 0 {
			e.logger.Info("batch embedding served by fallback tier", "tier", i)
		}
		for j, v := range vectors {
			vectors[j] = core.NormalizeVector(v)
		}
		return vectors, nil
	}

	e.logger.Error("all embedding tiers failed for batch", "count", len(texts), "err", firstErr)
	return nil, firstErr
}

func (e *Embedder) checkDim(vector []float32) error {
	if len(vector) != e.dim {
		return fmt.Errorf("%w: got %d dimensions, want %d",
			core.ErrDimensionMismatch, len(vector), e.dim)
	}
	return nil
}
