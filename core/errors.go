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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptySourceType indicates the SourceType field is empty.
	ErrEmptySourceType = errors.New("source type cannot be empty")

	// ErrEmptyMessage indicates a chat message is empty after trimming.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrDimensionMismatch indicates an embedding vector has an unexpected length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
