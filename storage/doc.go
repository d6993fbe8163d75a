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


// Package storage provides the vector-store abstraction for the chatbot.
//
// The package defines the ChunkRepository interface that decouples retrieval
// strategies from the storage implementation. The search router treats the
// repository as a ranked-retrieval oracle: each named operation accepts an
// embedding vector plus operation-specific parameters and returns chunks in
// relevance-descending order.
//
// # Retrieval Operations
//
//   - SimilaritySearch: generic cosine similarity with a minimum threshold
//   - TopicSearch: similarity restricted to a single topic label
//   - FAQSearch: similarity restricted to FAQ-flagged chunks
//   - HybridSearch: weighted blend of similarity and keyword overlap
//   - FilterByFlag: raw row lookup by boolean flag, used as a degraded
//     fallback when a primary operation fails
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and keep
// backends swappable:
//
//	repo, err := badger.NewChunkRepository(backend)  // returns storage.ChunkRepository
//
// Use the in-memory backend in tests:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
