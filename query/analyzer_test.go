package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_Deterministic(t *testing.T) {
	q := "How to create a collect link for my store?"

	first := Analyze(q)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Analyze(q))
	}
}

func TestAnalyze_FaqQuestion(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"how to opener", "how to activate voicebox", true},
		{"what is opener", "What is a DQR code", true},
		{"where can opener", "Where can I see my payouts", true},
		{"why does opener", "why does my payment fail", true},
		{"can i opener", "Can I block a sub user", true},
		{"do i need opener", "Do I need GST registration", true},
		{"question mark only", "voicebox replay limit?", true},
		{"plain statement", "tell me about settlements", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.query).IsFaqQuestion)
		})
	}
}

func TestAnalyze_PdfQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"grievance", "How do I raise a grievance with the nodal officer", true},
		{"rbi guidelines", "what do RBI guidelines say about chargebacks", true},
		{"kyc documents", "which KYC documents are required", true},
		{"gst", "is GST charged on fees", true},
		{"policy word", "What is the settlement refund policy for UTR disputes?", true},
		{"operational question", "how to download the app", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.query).IsPdfQuery)
		})
	}
}

func TestAnalyze_OperationalFaq(t *testing.T) {
	assert.True(t, Analyze("steps to configure the voicebox").IsOperationalFaq)
	assert.True(t, Analyze("how to login to the dashboard").IsOperationalFaq)
	assert.False(t, Analyze("merchant fees for UPI").IsOperationalFaq)
}

func TestAnalyze_TopicOrder(t *testing.T) {
	// "payment link" belongs to collect_links even though "payment" alone would
	// match transactions and payment_gateway later in the table.
	a := Analyze("my payment link expired")
	assert.Equal(t, "collect_links", a.DetectedTopic)

	// "refund" appears in settlements, transactions, and refunds; settlements is
	// declared first.
	a = Analyze("refund not received")
	assert.Equal(t, "settlements", a.DetectedTopic)

	// "voicebox" is declared before app topics.
	a = Analyze("voicebox app not announcing")
	assert.Equal(t, "voicebox", a.DetectedTopic)
}

func TestAnalyze_NoTopic(t *testing.T) {
	a := Analyze("hello there")
	assert.Empty(t, a.DetectedTopic)
}

func TestAnalyze_GeneralNeverMatches(t *testing.T) {
	// The general entry has no keywords, so it can never be detected directly.
	a := Analyze("general question about things")
	assert.Empty(t, a.DetectedTopic)
}

func TestAnalyze_ExactTerms(t *testing.T) {
	assert.True(t, Analyze("JioPay webhook retries").HasExactTerms)
	assert.True(t, Analyze("does the API support callbacks").HasExactTerms)
	assert.False(t, Analyze("refund timeline for failed orders").HasExactTerms)
}

func TestAnalyze_Complexity(t *testing.T) {
	a := Analyze("one two three four five six")
	assert.Equal(t, 6, a.WordCount)
	assert.False(t, a.IsComplexQuery)

	a = Analyze("one two three four five six seven")
	assert.Equal(t, 7, a.WordCount)
	assert.True(t, a.IsComplexQuery)
}

func TestAnalyze_SettlementScenario(t *testing.T) {
	a := Analyze("What is the settlement refund policy for UTR disputes?")

	assert.True(t, a.IsPdfQuery)
	assert.True(t, a.IsFaqQuestion)
	assert.Equal(t, "settlements", a.DetectedTopic)
	assert.True(t, a.IsComplexQuery)
}

func TestTopics(t *testing.T) {
	topics := Topics()
	assert.Len(t, topics, 19)
	assert.Equal(t, "collect_links", topics[0])
	assert.Equal(t, "general", topics[len(topics)-1])
}
