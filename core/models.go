package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Chunk IDs are generated with content-based hashing so re-ingesting the same
// corpus is idempotent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is a unit of indexed corpus content returned by retrieval operations.
// It is created during ingestion and treated as read-only afterwards.
type Chunk struct {
	Id          ID
	Content     string
	SourceFile  string
	SourceType  string // "faq", "pdf", "web_page", or another free-form tag
	Topic       string
	IsPDF       bool
	IsFAQ       bool
	TokenCount  int
	ChunkMethod string
	Metadata    map[string]string
	InsertedAt  time.Time
	UpdatedAt   time.Time
	Vector      []float32 // Embedding vector (populated during ingestion)
	Similarity  float32   // Similarity score in [0,1] (populated on retrieval)
}

// SearchResult is the outcome of one retrieval strategy: the chunks it found
// in relevance-descending order, plus the label of the strategy that ran.
type SearchResult struct {
	SearchType string
	Results    []*Chunk
	Count      int
	Topic      string // Empty when no topic applies
}

// Empty reports whether the result carries no chunks.
func (r *SearchResult) Empty() bool {
	return r == nil || r.Count == 0
}

// Source describes one retrieved chunk in a chat response, for transparency.
// Ids are 1-based and match the bracketed citations in the answer.
type Source struct {
	Id         int     `json:"id"`
	Content    string  `json:"content"`
	SourceType string  `json:"source_type"`
	Topic      string  `json:"topic"`
	Similarity float32 `json:"similarity"`
}

// ChatResponse is the payload returned to the upstream caller for one question.
type ChatResponse struct {
	Answer       string   `json:"answer"`
	Sources      []Source `json:"sources"`
	SearchType   string   `json:"searchType"`
	SearchTopic  string   `json:"searchTopic,omitempty"`
	TotalSources int      `json:"totalSources"`
}
