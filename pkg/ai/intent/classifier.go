package intent

import "strings"

// Intent is a coarse category describing what the user's message asks for.
type Intent string

const (
	General          Intent = "general"
	InvoiceCreate    Intent = "invoice.create"
	InvoiceView      Intent = "invoice.view"
	InvoiceDelete    Intent = "invoice.delete"
	GstVerify        Intent = "gst.verify"
	GstFiling        Intent = "gst.filing"
	UdyamLookup      Intent = "udyam.lookup"
	DocumentFetch    Intent = "document.fetch"
	BusinessSummary  Intent = "business.summary"
	PreferenceUpdate Intent = "preference.update"
	Unknown          Intent = "unknown"
)

type category struct {
	intent   Intent
	keywords []string
}

// rules are evaluated top-down; the first category with a keyword hit wins,
// so the ordering below is itself the tie-break policy. Do not reorder.
var rules = []category{
	{General, []string{
		"hello", "namaste", "good morning", "good afternoon", "good evening",
		"thank you", "thanks", "who are you", "what can you do",
	}},
	{InvoiceCreate, []string{
		"create invoice", "make invoice", "new invoice", "generate invoice",
		"invoice for", "bill for", "invoice banao", "banao invoice",
	}},
	{InvoiceView, []string{
		"show invoice", "view invoice", "list invoice", "show my invoices",
		"recent invoices", "pending invoice", "unpaid invoice", "invoice list",
	}},
	{InvoiceDelete, []string{
		"delete invoice", "remove invoice", "cancel invoice",
		"delete all my invoices", "delete my invoices",
	}},
	{GstVerify, []string{
		"verify gst", "check gst", "validate gst", "gst number", "gstin",
	}},
	{GstFiling, []string{
		"gst return", "file gst", "gstr", "gst filing", "tax return", "filing due",
	}},
	{UdyamLookup, []string{
		"udyam", "msme registration", "udyog aadhaar",
	}},
	{DocumentFetch, []string{
		"pan card", "aadhaar", "certificate", "digilocker",
		"download document", "my documents",
	}},
	{BusinessSummary, []string{
		"business summary", "how is my business", "dashboard", "overview",
		"sales this month", "revenue",
	}},
	{PreferenceUpdate, []string{
		"change language", "switch language", "set language", "language to",
		"prefer",
	}},
}

// Classifier maps free text to exactly one intent tag using ordered keyword
// membership tests.
type Classifier struct {
	rules []category
}

func NewClassifier() *Classifier {
	return &Classifier{rules: rules}
}

// Classify lower-cases the query and returns the first category whose
// keywords appear as a substring, or Unknown when none match.
func (c *Classifier) Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, cat := range c.rules {
		for _, kw := range cat.keywords {
			if strings.Contains(q, kw) {
				return cat.intent
			}
		}
	}
	return Unknown
}

// Order returns the evaluation order of intents, primarily for tests that
// pin the priority policy.
func (c *Classifier) Order() []Intent {
	out := make([]Intent, len(c.rules))
	for i, cat := range c.rules {
		out[i] = cat.intent
	}
	return out
}
