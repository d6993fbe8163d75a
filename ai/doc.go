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


// Package ai provides abstractions for the AI services used by the chatbot.
//
// The package defines interfaces for text embedding and grounded answer
// generation. Business logic depends on these abstractions, never on a
// concrete backend.
//
// # Interfaces
//
//   - Embedder: turns text into fixed-length embedding vectors
//   - Generator: produces an answer from a grounded prompt
//   - Provider: aggregates both for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: langchaingo client for OpenAI-compatible model servers;
//     the local embedding tier and the answer generator
//   - ai/huggingface: HTTP clients for the hosted inference endpoint and the
//     last-resort local embedding microservice
//   - ai/chain: the ordered embedding fallback chain over the three tiers
//   - ai/mock: test doubles with injectable behavior
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction:
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Mock constructors return concrete types so tests can inject behavior and
// make assertions.
package ai
