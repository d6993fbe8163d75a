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


package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
)

// chunkRecord mirrors one element of a scraped corpus file: a JSON array of
// pre-chunked documents produced by the FAQ and web scrapers.
type chunkRecord struct {
	Content     string            `json:"content"`
	SourceFile  string            `json:"source_file"`
	SourceType  string            `json:"source_type"`
	Topic       string            `json:"topic"`
	IsPDF       bool              `json:"is_pdf"`
	IsFAQ       bool              `json:"is_faq"`
	TokenCount  int               `json:"token_count"`
	ChunkMethod string            `json:"chunk_method"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// LoadCorpusFile reads a scraped corpus file and converts its records to
// chunks. Records with blank content are dropped; everything else is passed
// through for validation at store time.
func LoadCorpusFile(path string) ([]*core.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}

	var records []chunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorpusParse, path, err)
	}

	chunks := make([]*core.Chunk, 0, len(records))
	for _, record := range records {
		if strings.TrimSpace(record.Content) == "" {
			continue
		}
		sourceFile := record.SourceFile
		if sourceFile == "" {
			sourceFile = path
		}
		chunks = append(chunks, &core.Chunk{
			Content:     record.Content,
			SourceFile:  sourceFile,
			SourceType:  record.SourceType,
			Topic:       record.Topic,
			IsPDF:       record.IsPDF,
			IsFAQ:       record.IsFAQ,
			TokenCount:  record.TokenCount,
			ChunkMethod: record.ChunkMethod,
			Metadata:    record.Metadata,
		})
	}

	return chunks, nil
}
