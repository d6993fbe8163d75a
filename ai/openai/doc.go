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


// Package openai implements the ai interfaces against OpenAI-compatible
// model servers (Ollama, LocalAI, vLLM, or the real OpenAI API).
//
// The Embedder here is the first tier of the embedding fallback chain: the
// local model server. Its underlying client is initialized lazily on first
// use so that a chatbot pointed at an unreachable model server can still
// start up and fall through to the hosted tiers.
//
// The Generator produces grounded answers over the chat completion API.
package openai
