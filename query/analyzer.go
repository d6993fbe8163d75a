package query

import "strings"

// Analysis is an immutable classification snapshot of one query.
// It is produced once per query and consumed only by the search router.
type Analysis struct {
	IsFaqQuestion    bool
	IsPdfQuery       bool
	IsOperationalFaq bool
	IsComplexQuery   bool
	HasExactTerms    bool
	DetectedTopic    string // Empty when no topic matched
	WordCount        int
}

// complexWordThreshold is the word count above which a query counts as complex.
const complexWordThreshold = 6

// Analyze classifies a query string. It is pure and deterministic: the same
// input always yields the same Analysis, with no I/O and no shared state.
func Analyze(q string) Analysis {
	lower := strings.ToLower(q)
	wordCount := len(strings.Fields(q))

	return Analysis{
		IsFaqQuestion:    containsAny(lower, faqQuestionPatterns),
		IsPdfQuery:       containsAny(lower, pdfKeywords),
		IsOperationalFaq: containsAny(lower, faqKeywords),
		IsComplexQuery:   wordCount > complexWordThreshold,
		HasExactTerms:    containsAny(lower, exactTerms),
		DetectedTopic:    detectTopic(lower),
		WordCount:        wordCount,
	}
}

// detectTopic walks the ordered topic table and returns the first topic whose
// keyword list has a substring hit. Order matters: a query matching both
// "settlements" and "refunds" keywords resolves to whichever is declared first.
func detectTopic(lower string) string {
	for _, entry := range topicTable {
		if containsAny(lower, entry.Keywords) {
			return entry.Topic
		}
	}
	return ""
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
