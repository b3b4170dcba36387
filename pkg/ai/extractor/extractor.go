package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Entity keys produced by Extract.
const (
	KeyGstNumber     = "gst_number"
	KeyUdyamNumber   = "udyam_number"
	KeyInvoiceNumber = "invoice_number"
	KeyAmount        = "amount"
	KeyCustomerName  = "customer_name"
	KeyBusinessName  = "business_name"
	KeyMonth         = "month"
	KeyDate          = "date"
	KeyLanguage      = "language"
	KeyDocumentType  = "document_type"
)

var (
	gstinPattern   = regexp.MustCompile(`\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]`)
	udyamPattern   = regexp.MustCompile(`UDYAM-[A-Z]{2}-\d{2}-\d{7}`)
	invoicePattern = regexp.MustCompile(`(?:INV-|#)(\d+)`)
	amountPattern  = regexp.MustCompile(`(?i)(?:₹|rs\.?\s?|inr\s?)\s*([\d,]+(?:\.\d+)?)`)
	rupeesPattern  = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*rupees`)
	namePattern    = regexp.MustCompile(`(?i)\b(?:for|to)\s+([a-zA-Z][a-zA-Z ]*)`)
	bizPattern     = regexp.MustCompile(`(?i)(?:company|business|firm)(?:\s+name)?(?:\s+is)?\s+([a-zA-Z][a-zA-Z0-9& ]*)`)
	datePattern    = regexp.MustCompile(`\d{2}/\d{2}/\d{4}|\d{2}-\d{2}-\d{4}|\d{4}-\d{2}-\d{2}`)
)

var months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var languages = []string{
	"hindi", "english", "tamil", "telugu", "bengali", "marathi",
	"gujarati", "kannada", "malayalam", "punjabi", "odia",
}

// documentTypes are checked in order; the first literal hit wins.
var documentTypes = []struct {
	keyword string
	docType string
}{
	{"pan", "pan"},
	{"aadhaar", "aadhaar"},
	{"gst certificate", "gst_certificate"},
	{"udyam certificate", "udyam_certificate"},
	{"msme certificate", "msme_certificate"},
}

// nameStopWords end a counterparty-name capture.
var nameStopWords = map[string]bool{
	"worth": true, "of": true, "rs": true, "inr": true,
}

// Extractor pulls structured fields out of raw free text using pattern
// rules. It is a pure function of its input: absent patterns simply omit
// the key, never a guessed or default value.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns a mapping of entity name to value for every pattern that
// matched the query. The already-classified intent is accepted for parity
// with the pipeline contract but extraction itself is intent-independent.
func (e *Extractor) Extract(query string, _ string) map[string]interface{} {
	entities := make(map[string]interface{})
	upper := strings.ToUpper(query)
	lower := strings.ToLower(query)

	if m := gstinPattern.FindString(upper); m != "" {
		entities[KeyGstNumber] = m
	}
	if m := udyamPattern.FindString(upper); m != "" {
		entities[KeyUdyamNumber] = m
	}
	if m := invoicePattern.FindStringSubmatch(upper); m != nil {
		entities[KeyInvoiceNumber] = m[1]
	}

	if amount, ok := extractAmount(query); ok {
		entities[KeyAmount] = amount
	}

	if name, ok := extractCustomerName(query); ok {
		entities[KeyCustomerName] = name
	}
	if name, ok := extractBusinessName(query); ok {
		entities[KeyBusinessName] = name
	}

	for _, month := range months {
		if strings.Contains(lower, month) {
			entities[KeyMonth] = titleCase(month)
			break
		}
	}

	if m := datePattern.FindString(query); m != "" {
		entities[KeyDate] = m
	}

	for _, lang := range languages {
		if strings.Contains(lower, lang) {
			entities[KeyLanguage] = lang
			break
		}
	}

	for _, dt := range documentTypes {
		if strings.Contains(lower, dt.keyword) {
			entities[KeyDocumentType] = dt.docType
			break
		}
	}

	return entities
}

func extractAmount(query string) (float64, bool) {
	var raw string
	if m := amountPattern.FindStringSubmatch(query); m != nil {
		raw = m[1]
	} else if m := rupeesPattern.FindStringSubmatch(query); m != nil {
		raw = m[1]
	} else {
		return 0, false
	}

	raw = strings.ReplaceAll(raw, ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// extractCustomerName captures the text after "for"/"to" up to a stop word
// or a digit, title-cased. RE2 has no lookahead, so the stop-word trim runs
// over the captured tokens.
func extractCustomerName(query string) (string, bool) {
	m := namePattern.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}

	var kept []string
	for _, word := range strings.Fields(m[1]) {
		if nameStopWords[strings.ToLower(word)] {
			break
		}
		kept = append(kept, word)
	}
	if len(kept) == 0 {
		return "", false
	}
	return titleCase(strings.Join(kept, " ")), true
}

func extractBusinessName(query string) (string, bool) {
	m := bizPattern.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if idx := strings.IndexAny(name, ".,?!"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	if name == "" {
		return "", false
	}
	return titleCase(name), true
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ValidGstin reports whether the value matches the full 15-character tax
// identifier shape. Used by the verification tool before calling out.
func ValidGstin(value string) bool {
	return gstinPattern.MatchString(strings.ToUpper(value)) && len(value) == 15
}
