package prompt

import (
	"strings"
	"testing"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
	assert.Equal(t, "", BuildContext([]*core.Chunk{}))
}

func TestBuildContext_Formatting(t *testing.T) {
	chunks := []*core.Chunk{
		{Content: "Settlements arrive next day.", SourceType: "faq", Topic: "settlements"},
		{Content: "Refunds follow the grievance policy.", SourceType: "pdf", Topic: "pdf_policy"},
		{Content: "JioPay supports UPI.", SourceType: "web_page", Topic: "payment_gateway"},
		{Content: "Misc note.", SourceType: "manual", Topic: ""},
	}

	got := BuildContext(chunks)
	entries := strings.Split(got, "\n\n")
	require.Len(t, entries, 4)

	assert.Equal(t, "[1] FAQ (Topic: settlements): Settlements arrive next day.", entries[0])
	assert.Equal(t, "[2] Policy Document: Refunds follow the grievance policy.", entries[1])
	assert.Equal(t, "[3] Web Information: JioPay supports UPI.", entries[2])
	assert.Equal(t, "[4] manual: Misc note.", entries[3])
}

func TestBuildContext_NumberingFollowsResultOrder(t *testing.T) {
	// The entry number reflects position in the result list, not identity,
	// so citations stay aligned with the response's source numbering.
	first := &core.Chunk{Content: "Alpha.", SourceType: "faq", Topic: "general"}
	second := &core.Chunk{Content: "Beta.", SourceType: "faq", Topic: "general"}

	got := BuildContext([]*core.Chunk{first, second})
	assert.Contains(t, got, "[1] FAQ (Topic: general): Alpha.")
	assert.Contains(t, got, "[2] FAQ (Topic: general): Beta.")

	reversed := BuildContext([]*core.Chunk{second, first})
	assert.Contains(t, reversed, "[1] FAQ (Topic: general): Beta.")
	assert.Contains(t, reversed, "[2] FAQ (Topic: general): Alpha.")
}

func TestBuildContext_Deterministic(t *testing.T) {
	chunks := []*core.Chunk{
		{Content: "Alpha.", SourceType: "faq", Topic: "kyc_documents"},
		{Content: "Beta.", SourceType: "pdf"},
	}
	assert.Equal(t, BuildContext(chunks), BuildContext(chunks))
}

func TestBuildAnswerPrompt(t *testing.T) {
	got := BuildAnswerPrompt("How do settlements work?", "[1] FAQ (Topic: settlements): Next day.")

	assert.Contains(t, got, "QUESTION: How do settlements work?")
	assert.Contains(t, got, "CONTEXT:\n[1] FAQ (Topic: settlements): Next day.")
	assert.Contains(t, got, "JioPay Business customer support assistant")
	assert.True(t, strings.HasSuffix(got, "Please provide a helpful answer based only on the above context:"))
}
