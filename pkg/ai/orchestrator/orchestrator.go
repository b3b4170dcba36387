package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/pkg/logger"
	"smartbiz-be/pkg/ai/composer"
	"smartbiz-be/pkg/ai/extractor"
	"smartbiz-be/pkg/ai/intent"
	"smartbiz-be/pkg/ai/tools"
)

const toolTimeout = 15 * time.Second

const apologyReply = "Sorry, something went wrong on my side. Please try that again in a moment."

// Memory is the passive record/query surface the pipeline writes through.
type Memory interface {
	FetchContext(ctx context.Context, userId uuid.UUID) (map[string]interface{}, error)
	RecordTurn(ctx context.Context, userId uuid.UUID, sessionId, query, response string, it intent.Intent, entities map[string]interface{}, toolsUsed []string) error
	SaveFact(ctx context.Context, userId uuid.UUID, contextType, contextKey string, value map[string]interface{}, summary string) error
	TrackPattern(ctx context.Context, userId uuid.UUID, query string, it intent.Intent) error
	SetLanguage(ctx context.Context, userId uuid.UUID, language string) error
}

type Request struct {
	UserId    uuid.UUID
	SessionId string
	Query     string
	Language  string
}

type Response struct {
	Reply       string                 `json:"reply"`
	Intent      string                 `json:"intent"`
	Entities    map[string]interface{} `json:"entities"`
	Context     map[string]interface{} `json:"context"`
	Suggestions []string               `json:"suggestions"`
	ToolsUsed   []string               `json:"tools_used"`
	MemorySaved bool                   `json:"memory_saved"`
}

// followupSuggestions hints the next likely action per intent.
var followupSuggestions = map[intent.Intent][]string{
	intent.InvoiceCreate:   {"Show my invoices", "How is my business this month?"},
	intent.InvoiceView:     {"Create invoice for a customer", "Delete invoice #"},
	intent.InvoiceDelete:   {"Show my invoices"},
	intent.GstVerify:       {"File GST return", "Create invoice"},
	intent.GstFiling:       {"Show my invoices", "Business summary"},
	intent.BusinessSummary: {"Show my invoices", "GST return for this month"},
}

var defaultSuggestions = []string{
	"Create invoice for Acme Corp worth ₹5000",
	"Show my invoices",
	"Check GST 29ABCDE1234F1Z5",
	"How is my business this month?",
}

// Orchestrator coordinates one request/response cycle:
// classify -> extract -> fetch memory -> route tool -> compose -> persist.
type Orchestrator struct {
	classifier *intent.Classifier
	extractor  *extractor.Extractor
	router     *tools.Router
	composer   *composer.Composer
	memory     Memory
	logger     logger.ILogger
}

func New(
	classifier *intent.Classifier,
	ext *extractor.Extractor,
	router *tools.Router,
	comp *composer.Composer,
	memory Memory,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		extractor:  ext,
		router:     router,
		composer:   comp,
		memory:     memory,
		logger:     log,
	}
}

// Handle runs the full pipeline for one chat request. It never lets an
// internal failure reach the caller: any panic or stage error degrades to a
// generic apology with intent "unknown".
func (o *Orchestrator) Handle(ctx context.Context, req *Request) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("orchestrator", "panic while handling chat request", map[string]interface{}{
				"user_id": req.UserId.String(),
				"panic":   r,
			})
			resp = &Response{
				Reply:       apologyReply,
				Intent:      string(intent.Unknown),
				Entities:    map[string]interface{}{},
				Context:     map[string]interface{}{},
				Suggestions: defaultSuggestions,
				ToolsUsed:   []string{},
			}
		}
	}()

	it := o.classifier.Classify(req.Query)
	entities := o.extractor.Extract(req.Query, string(it))

	memoryContext, err := o.memory.FetchContext(ctx, req.UserId)
	if err != nil {
		o.logger.Warn("orchestrator", "failed to fetch memory context", map[string]interface{}{
			"user_id": req.UserId.String(),
			"error":   err.Error(),
		})
		memoryContext = map[string]interface{}{}
	}

	var result *tools.Result
	toolsUsed := []string{}
	if it != intent.General && it != intent.Unknown {
		toolCtx, cancel := context.WithTimeout(ctx, toolTimeout)
		result = o.router.Route(toolCtx, it, req.UserId, entities, req.Query)
		cancel()
		toolsUsed = append(toolsUsed, string(it))
	}

	reply := o.composer.Compose(ctx, it, entities, result, memoryContext, req.Query)

	if err := o.memory.RecordTurn(ctx, req.UserId, req.SessionId, req.Query, reply, it, entities, toolsUsed); err != nil {
		o.logger.Warn("orchestrator", "failed to persist conversation turn", map[string]interface{}{
			"user_id": req.UserId.String(),
			"error":   err.Error(),
		})
	}

	memorySaved := o.persistFacts(ctx, req.UserId, it, entities, result)

	if it != intent.Unknown {
		if err := o.memory.TrackPattern(ctx, req.UserId, req.Query, it); err != nil {
			o.logger.Warn("orchestrator", "failed to track query pattern", map[string]interface{}{
				"user_id": req.UserId.String(),
				"error":   err.Error(),
			})
		}
	}

	suggestions, ok := followupSuggestions[it]
	if !ok {
		suggestions = defaultSuggestions
	}

	return &Response{
		Reply:       reply,
		Intent:      string(it),
		Entities:    entities,
		Context:     memoryContext,
		Suggestions: suggestions,
		ToolsUsed:   toolsUsed,
		MemorySaved: memorySaved,
	}
}

// persistFacts applies the memory-write policy: only stable identifiers,
// explicitly stated business names, language preferences and fresh invoice
// activity get promoted to durable context. Everything else stays in
// conversation history only.
func (o *Orchestrator) persistFacts(ctx context.Context, userId uuid.UUID, it intent.Intent, entities map[string]interface{}, result *tools.Result) bool {
	saved := false

	save := func(contextType, contextKey string, value map[string]interface{}, summary string) {
		if err := o.memory.SaveFact(ctx, userId, contextType, contextKey, value, summary); err != nil {
			o.logger.Warn("orchestrator", "failed to save business context", map[string]interface{}{
				"user_id":      userId.String(),
				"context_type": contextType,
				"error":        err.Error(),
			})
			return
		}
		saved = true
	}

	if it == intent.GstVerify && result != nil && result.Status == tools.StatusSuccess {
		if gstin, ok := result.Data["gstin"].(string); ok {
			save("tax_identifier", "gstin",
				map[string]interface{}{"gstin": gstin, "legal_name": result.Data["legal_name"]},
				"Verified GSTIN "+gstin)
		}
	}

	if it == intent.UdyamLookup && result != nil && result.Status == tools.StatusSuccess {
		if number, ok := result.Data["udyam_number"].(string); ok {
			save("registration", "udyam",
				map[string]interface{}{"udyam_number": number, "enterprise_name": result.Data["enterprise_name"]},
				"Udyam registration "+number)
		}
	}

	if name, ok := entities[extractor.KeyBusinessName].(string); ok && name != "" {
		save("business_profile", "business_name",
			map[string]interface{}{"business_name": name},
			"Business name is "+name)
	}

	if it == intent.PreferenceUpdate {
		if lang, ok := entities[extractor.KeyLanguage].(string); ok && lang != "" {
			if err := o.memory.SetLanguage(ctx, userId, lang); err != nil {
				o.logger.Warn("orchestrator", "failed to update language preference", map[string]interface{}{
					"user_id": userId.String(),
					"error":   err.Error(),
				})
			} else {
				saved = true
			}
		}
	}

	if it == intent.InvoiceCreate && result != nil && result.Status == tools.StatusSuccess {
		save("recent_activity", "last_invoice",
			map[string]interface{}{
				"invoice_number": result.Data["invoice_number"],
				"customer_name":  result.Data["customer_name"],
				"total_amount":   result.Data["total_amount"],
			},
			"Last created invoice")
	}

	return saved
}
