package query

// TopicKeywords maps a topic to the keyword list that selects it.
type TopicKeywords struct {
	Topic    string
	Keywords []string
}

// topicTable is evaluated in order; the first topic with a keyword hit wins.
// "general" carries no keywords and therefore never matches on its own; it
// exists so the full topic set is visible in one place.
var topicTable = []TopicKeywords{
	{"collect_links", []string{"collect link", "payment link", "link validity", "bulk collect", "partial payment"}},
	{"voicebox", []string{"voicebox", "voice box", "audio", "announcement", "replay"}},
	{"settlements", []string{"settlement", "bank account", "utr", "refund", "payout"}},
	{"app_dashboard", []string{"app", "dashboard", "login", "password", "download", "forgot"}},
	{"transactions", []string{"transaction", "payment", "refund", "failed", "processing"}},
	{"repeat_payments", []string{"repeat", "recurring", "subscription", "mandate"}},
	{"campaigns", []string{"campaign", "offer", "create campaign", "edit campaign"}},
	{"user_management", []string{"sub user", "user management", "block user"}},
	{"dqr", []string{"dqr", "dynamic qr", "store manager"}},
	{"partner_program", []string{"partner", "commission", "earning"}},
	{"p2pm_merchants", []string{"p2pm", "merchant limit", "upgrade"}},
	{"payment_gateway", []string{"payment", "gateway", "transaction", "processing", "checkout"}},
	{"app_usage", []string{"app", "download", "install", "mobile", "android", "ios"}},
	{"business_setup", []string{"business", "setup", "merchant", "onboarding", "registration"}},
	{"technical_issues", []string{"error", "issue", "problem", "troubleshoot", "fix", "bug"}},
	{"refunds", []string{"refund", "return", "cancel", "reverse", "chargeback"}},
	{"kyc_documents", []string{"kyc", "documents", "verification", "identity", "proof"}},
	{"fees_pricing", []string{"fee", "charge", "cost", "price", "rate", "commission"}},
	{"general", nil},
}

// pdfKeywords flag policy, procedure, and compliance questions whose answers
// live in the official policy documents.
var pdfKeywords = []string{
	"policy", "grievance", "complaint", "escalation", "levels", "resolution",
	"ombudsman", "nodal officer", "turnaround time", "compensation",
	"restricted business", "prohibited", "allowed", "not allowed",
	"documents required", "kyc documents", "proof of identity", "address proof",
	"sole proprietorship", "partnership", "private limited", "llp",
	"registered address", "cin", "pan", "gst", "fssai",
	"rbi guidelines", "regulatory", "compliance", "board reporting",
}

// faqKeywords flag operational "how do I" questions best served by FAQ content.
var faqKeywords = []string{
	"how to", "steps to", "process to", "way to",
	"create", "setup", "configure", "install",
	"login", "signup", "register", "activate",
}

// exactTerms are product jargon that warrants hybrid semantic+keyword search
// when they appear in a sufficiently long query.
var exactTerms = []string{"jiopay", "api", "webhook", "callback", "integration"}

// faqQuestionPatterns are interrogative openers; a literal question mark also
// qualifies a query as a FAQ-style question.
var faqQuestionPatterns = []string{
	"how to", "what is", "where can", "why does", "can i", "do i need", "?",
}

// Topics returns the names of all known topics in declared order.
func Topics() []string {
	names := make([]string, len(topicTable))
	for i, entry := range topicTable {
		names[i] = entry.Topic
	}
	return names
}
