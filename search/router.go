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


package search

import (
	"context"
	"log/slog"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/HarVkr/jiopay-rag-chatbot/query"
	"github.com/HarVkr/jiopay-rag-chatbot/storage"
)

// Search type labels carried on every SearchResult. Callers surface them in
// API responses, so they are part of the external contract.
const (
	SearchTypePDF           = "pdf_specific"
	SearchTypePDFFallback   = "pdf_fallback"
	SearchTypeTopic         = "topic_specific"
	SearchTypeFAQ           = "faq_specific"
	SearchTypeFAQFallback   = "faq_fallback"
	SearchTypeHybrid        = "hybrid"
	SearchTypeComprehensive = "comprehensive"
	SearchTypeBasic         = "basic_semantic"
)

// TopicPDFPolicy tags every successful PDF-strategy result regardless of the
// chunks' own topics.
const TopicPDFPolicy = "pdf_policy"

// Per-strategy similarity thresholds and hybrid weights.
const (
	pdfMinSimilarity           = 0.3
	faqMinSimilarity           = 0.4
	comprehensiveMinSimilarity = 0.2
	basicMinSimilarity         = 0.3
	hybridSemanticWeight       = 0.7
	hybridKeywordWeight        = 0.3
)

// DefaultMaxResults bounds every strategy's result set unless overridden.
const DefaultMaxResults = 8

// Router executes the ordered retrieval fallback chain over the chunk store.
type Router struct {
	chunks     storage.ChunkRepository
	maxResults int
	logger     *slog.Logger
}

// Option configures a Router.
type Option func(*Router) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMaxResults caps the number of chunks any strategy returns.
// Default is DefaultMaxResults.
func WithMaxResults(n int) Option {
	return func(r *Router) error {
		if n > 0 {
			r.maxResults = n
		}
		return nil
	}
}

// NewRouter creates a new search router over the given chunk repository.
func NewRouter(chunks storage.ChunkRepository, opts ...Option) (*Router, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}

	r := &Router{
		chunks:     chunks,
		maxResults: DefaultMaxResults,
		logger:     slog.Default().With("component", "search-router"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Route classifies the query and walks the fallback chain until a strategy
// produces results. It always returns a SearchResult, never an error:
// a strategy that fails or comes back empty falls through to the next step,
// and a failure in the comprehensive step degrades to the basic safety net.
func (r *Router) Route(ctx context.Context, q string, vector []float32) *core.SearchResult {
	return r.RouteWithMonitor(ctx, q, vector, nil)
}

// RouteWithMonitor routes with per-step observation callbacks.
func (r *Router) RouteWithMonitor(ctx context.Context, q string, vector []float32, monitor RouteMonitor) *core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(q)
	analysis := query.Analyze(q)
	monitor.AfterAnalysis(analysis)

	r.logger.Debug("routing query",
		"isPdfQuery", analysis.IsPdfQuery,
		"detectedTopic", analysis.DetectedTopic,
		"isOperationalFaq", analysis.IsOperationalFaq,
		"isComplexQuery", analysis.IsComplexQuery,
		"hasExactTerms", analysis.HasExactTerms)

	// 1. PDF-specific search for policy/compliance questions
	if analysis.IsPdfQuery {
		monitor.StrategySelected(SearchTypePDF)
		result, err := r.pdfSearch(ctx, vector)
		if hit := r.settle(SearchTypePDF, result, err, monitor); hit != nil {
			hit.Topic = TopicPDFPolicy
			monitor.Finish(hit)
			return hit
		}
	}

	// 2. Topic-specific search when a topic is clearly identified
	if analysis.DetectedTopic != "" {
		monitor.StrategySelected(SearchTypeTopic)
		result, err := r.topicSearch(ctx, vector, analysis.DetectedTopic)
		if hit := r.settle(SearchTypeTopic, result, err, monitor); hit != nil {
			monitor.Finish(hit)
			return hit
		}
	}

	// 3. FAQ search for operational questions that aren't policy lookups
	if analysis.IsOperationalFaq && !analysis.IsPdfQuery {
		monitor.StrategySelected(SearchTypeFAQ)
		result, err := r.faqSearch(ctx, vector)
		if hit := r.settle(SearchTypeFAQ, result, err, monitor); hit != nil {
			hit.Topic = ""
			monitor.Finish(hit)
			return hit
		}
	}

	// 4. Hybrid search for complex queries carrying exact domain terms
	if analysis.IsComplexQuery && analysis.HasExactTerms {
		monitor.StrategySelected(SearchTypeHybrid)
		result, err := r.hybridSearch(ctx, vector, q)
		if hit := r.settle(SearchTypeHybrid, result, err, monitor); hit != nil {
			hit.Topic = ""
			monitor.Finish(hit)
			return hit
		}
	}

	// 5. Comprehensive search across all content, returned even when empty
	monitor.StrategySelected(SearchTypeComprehensive)
	result, err := r.comprehensiveSearch(ctx, vector)
	if err != nil {
		monitor.StrategyFailed(SearchTypeComprehensive, err)
		r.logger.Warn("comprehensive search failed, degrading to basic", "err", err)
		result = r.basicSafetyNet(ctx, vector, monitor)
	}

	monitor.Finish(result)
	return result
}

// settle folds a strategy outcome into the chain's fall-through rule: only a
// non-empty result wins; an error or an empty result yields nil so the chain
// continues with the next step.
func (r *Router) settle(searchType string, result *core.SearchResult, err error, monitor RouteMonitor) *core.SearchResult {
	if err != nil {
		monitor.StrategyFailed(searchType, err)
		return nil
	}
	if result.Empty() {
		monitor.StrategyEmpty(result.SearchType)
		r.logger.Debug("strategy returned no results, continuing chain", "searchType", result.SearchType)
		return nil
	}
	return result
}

// pdfSearch retrieves via similarity and filters to PDF-flagged chunks. When
// the primary retrieval is unavailable it falls back to a plain flag filter,
// labeled distinctly so callers can tell relevance-ranked results apart from
// unranked ones.
func (r *Router) pdfSearch(ctx context.Context, vector []float32) (*core.SearchResult, error) {
	chunks, err := r.chunks.SimilaritySearch(ctx, vector, pdfMinSimilarity, r.maxResults)
	if err != nil {
		r.logger.Warn("pdf similarity search failed, using flag filter", "err", err)
		fallback, ferr := r.chunks.FilterByFlag(ctx, storage.FlagPDF, r.maxResults)
		if ferr != nil {
			r.logger.Error("pdf fallback filter failed", "err", ferr)
			return nil, ferr
		}
		return newResult(SearchTypePDFFallback, fallback), nil
	}

	pdfChunks := make([]*core.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.IsPDF {
			pdfChunks = append(pdfChunks, chunk)
		}
	}
	return newResult(SearchTypePDF, pdfChunks), nil
}

func (r *Router) topicSearch(ctx context.Context, vector []float32, topic string) (*core.SearchResult, error) {
	chunks, err := r.chunks.TopicSearch(ctx, vector, topic, r.maxResults)
	if err != nil {
		r.logger.Warn("topic search failed", "topic", topic, "err", err)
		return nil, err
	}

	result := newResult(SearchTypeTopic, chunks)
	result.Topic = topic
	return result, nil
}

// faqSearch retrieves FAQ chunks at the stricter FAQ threshold, falling back
// to a plain flag filter when the primary retrieval is unavailable.
func (r *Router) faqSearch(ctx context.Context, vector []float32) (*core.SearchResult, error) {
	chunks, err := r.chunks.FAQSearch(ctx, vector, faqMinSimilarity, r.maxResults)
	if err != nil {
		r.logger.Warn("faq search failed, using flag filter", "err", err)
		fallback, ferr := r.chunks.FilterByFlag(ctx, storage.FlagFAQ, r.maxResults)
		if ferr != nil {
			r.logger.Error("faq fallback filter failed", "err", ferr)
			return nil, ferr
		}
		return newResult(SearchTypeFAQFallback, fallback), nil
	}
	return newResult(SearchTypeFAQ, chunks), nil
}

func (r *Router) hybridSearch(ctx context.Context, vector []float32, queryText string) (*core.SearchResult, error) {
	chunks, err := r.chunks.HybridSearch(ctx, vector, queryText,
		hybridSemanticWeight, hybridKeywordWeight, r.maxResults)
	if err != nil {
		r.logger.Warn("hybrid search failed", "err", err)
		return nil, err
	}
	return newResult(SearchTypeHybrid, chunks), nil
}

func (r *Router) comprehensiveSearch(ctx context.Context, vector []float32) (*core.SearchResult, error) {
	chunks, err := r.chunks.SimilaritySearch(ctx, vector, comprehensiveMinSimilarity, r.maxResults)
	if err != nil {
		return nil, err
	}
	return newResult(SearchTypeComprehensive, chunks), nil
}

// basicSafetyNet is the terminal fallback. It never fails: if even the basic
// search errors, the caller gets an honest empty result.
func (r *Router) basicSafetyNet(ctx context.Context, vector []float32, monitor RouteMonitor) *core.SearchResult {
	monitor.StrategySelected(SearchTypeBasic)
	chunks, err := r.chunks.SimilaritySearch(ctx, vector, basicMinSimilarity, r.maxResults)
	if err != nil {
		monitor.StrategyFailed(SearchTypeBasic, err)
		r.logger.Error("basic safety net failed", "err", err)
		return newResult(SearchTypeBasic, nil)
	}
	return newResult(SearchTypeBasic, chunks)
}

func newResult(searchType string, chunks []*core.Chunk) *core.SearchResult {
	if chunks == nil {
		chunks = []*core.Chunk{}
	}
	return &core.SearchResult{
		SearchType: searchType,
		Results:    chunks,
		Count:      len(chunks),
	}
}
