package orchestrator

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"smartbiz-be/pkg/ai/composer"
	"smartbiz-be/pkg/ai/extractor"
	"smartbiz-be/pkg/ai/intent"
	"smartbiz-be/pkg/ai/tools"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type savedFact struct {
	contextType string
	contextKey  string
	value       map[string]interface{}
}

type fakeMemory struct {
	context     map[string]interface{}
	contextErr  error
	turns       int
	lastQuery   string
	lastReply   string
	lastIntent  intent.Intent
	facts       []savedFact
	tracked     []intent.Intent
	language    string
	recordErr   error
	saveFactErr error
}

func (m *fakeMemory) FetchContext(ctx context.Context, userId uuid.UUID) (map[string]interface{}, error) {
	if m.contextErr != nil {
		return nil, m.contextErr
	}
	if m.context == nil {
		return map[string]interface{}{}, nil
	}
	return m.context, nil
}

func (m *fakeMemory) RecordTurn(ctx context.Context, userId uuid.UUID, sessionId, query, response string, it intent.Intent, entities map[string]interface{}, toolsUsed []string) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.turns++
	m.lastQuery = query
	m.lastReply = response
	m.lastIntent = it
	return nil
}

func (m *fakeMemory) SaveFact(ctx context.Context, userId uuid.UUID, contextType, contextKey string, value map[string]interface{}, summary string) error {
	if m.saveFactErr != nil {
		return m.saveFactErr
	}
	m.facts = append(m.facts, savedFact{contextType, contextKey, value})
	return nil
}

func (m *fakeMemory) TrackPattern(ctx context.Context, userId uuid.UUID, query string, it intent.Intent) error {
	m.tracked = append(m.tracked, it)
	return nil
}

func (m *fakeMemory) SetLanguage(ctx context.Context, userId uuid.UUID, language string) error {
	m.language = language
	return nil
}

func (m *fakeMemory) factTypes() []string {
	var out []string
	for _, f := range m.facts {
		out = append(out, f.contextType)
	}
	return out
}

func newTestOrchestrator(mem Memory, router *tools.Router) *Orchestrator {
	if router == nil {
		router = tools.NewRouter()
	}
	return New(
		intent.NewClassifier(),
		extractor.NewExtractor(),
		router,
		composer.NewComposer(nil, 100),
		mem,
		nopLogger{},
	)
}

func TestHandleInvoiceCreateFullPipeline(t *testing.T) {
	mem := &fakeMemory{}
	router := tools.NewRouter()
	router.Register(intent.InvoiceCreate, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		if entities[extractor.KeyCustomerName] != "Acme Corp" {
			t.Errorf("tool saw customer_name = %v", entities[extractor.KeyCustomerName])
		}
		return tools.Success("created", map[string]interface{}{
			"invoice_number": "INV-2026-0001",
			"customer_name":  "Acme Corp",
			"subtotal":       5000.0,
			"gst_rate":       18.0,
			"gst_amount":     900.0,
			"total_amount":   5900.0,
		})
	}))

	o := newTestOrchestrator(mem, router)
	resp := o.Handle(context.Background(), &Request{
		UserId:    uuid.New(),
		SessionId: "s1",
		Query:     "Create invoice for Acme Corp worth ₹5000",
	})

	if resp.Intent != string(intent.InvoiceCreate) {
		t.Errorf("intent = %s, want invoice.create", resp.Intent)
	}
	if len(resp.ToolsUsed) != 1 || resp.ToolsUsed[0] != "invoice.create" {
		t.Errorf("tools_used = %v", resp.ToolsUsed)
	}
	if mem.turns != 1 {
		t.Errorf("recorded turns = %d, want 1", mem.turns)
	}
	if !resp.MemorySaved {
		t.Error("invoice creation should persist a recent-activity fact")
	}
	if got := mem.factTypes(); len(got) != 1 || got[0] != "recent_activity" {
		t.Errorf("saved fact types = %v, want [recent_activity]", got)
	}
	if len(mem.tracked) != 1 || mem.tracked[0] != intent.InvoiceCreate {
		t.Errorf("tracked = %v", mem.tracked)
	}
}

func TestHandleGeneralChatSkipsTools(t *testing.T) {
	mem := &fakeMemory{}
	o := newTestOrchestrator(mem, nil)

	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "hello"})

	if resp.Intent != string(intent.General) {
		t.Errorf("intent = %s, want general", resp.Intent)
	}
	if len(resp.ToolsUsed) != 0 {
		t.Errorf("general chat must not invoke tools, got %v", resp.ToolsUsed)
	}
	if resp.MemorySaved {
		t.Error("general chat must not promote facts to durable context")
	}
	if mem.turns != 1 {
		t.Errorf("turn should still be recorded, got %d", mem.turns)
	}
	if len(mem.tracked) != 1 {
		t.Errorf("classified general turn should be pattern-tracked, got %v", mem.tracked)
	}
}

func TestHandleUnknownSkipsTracking(t *testing.T) {
	mem := &fakeMemory{}
	o := newTestOrchestrator(mem, nil)

	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "qwerty asdf"})

	if resp.Intent != string(intent.Unknown) {
		t.Errorf("intent = %s, want unknown", resp.Intent)
	}
	if len(mem.tracked) != 0 {
		t.Errorf("unknown intent must not be tracked, got %v", mem.tracked)
	}
}

func TestHandleRecoversFromPanic(t *testing.T) {
	mem := &fakeMemory{}
	router := tools.NewRouter()
	router.Register(intent.GstVerify, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		panic("registry client exploded")
	}))

	o := newTestOrchestrator(mem, router)
	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "check gst 29ABCDE1234F1Z5"})

	if resp == nil {
		t.Fatal("response must never be nil")
	}
	if resp.Intent != string(intent.Unknown) {
		t.Errorf("intent after panic = %s, want unknown", resp.Intent)
	}
	if resp.Reply != apologyReply {
		t.Errorf("reply after panic = %q, want generic apology", resp.Reply)
	}
	if resp.MemorySaved {
		t.Error("memory_saved must be false after a panic")
	}
	if len(resp.ToolsUsed) != 0 {
		t.Errorf("tools_used after panic = %v, want empty", resp.ToolsUsed)
	}
}

func TestHandleMemoryFetchFailureDegrades(t *testing.T) {
	mem := &fakeMemory{contextErr: context.DeadlineExceeded}
	o := newTestOrchestrator(mem, nil)

	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "hello"})

	if resp.Intent != string(intent.General) {
		t.Errorf("intent = %s, fetch failure must not derail the pipeline", resp.Intent)
	}
	if resp.Context == nil || len(resp.Context) != 0 {
		t.Errorf("context = %v, want empty map", resp.Context)
	}
}

func TestPersistFactsGstVerify(t *testing.T) {
	mem := &fakeMemory{}
	router := tools.NewRouter()
	router.Register(intent.GstVerify, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		return tools.Success("ok", map[string]interface{}{
			"gstin":      "29ABCDE1234F1Z5",
			"legal_name": "ACME CORP PVT LTD",
		})
	}))

	o := newTestOrchestrator(mem, router)
	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "check gst 29ABCDE1234F1Z5"})

	if !resp.MemorySaved {
		t.Error("successful verification must persist the identifier")
	}
	if got := mem.factTypes(); len(got) != 1 || got[0] != "tax_identifier" {
		t.Errorf("saved fact types = %v, want [tax_identifier]", got)
	}
}

func TestPersistFactsSkipsPendingVerification(t *testing.T) {
	mem := &fakeMemory{}
	router := tools.NewRouter()
	router.Register(intent.GstVerify, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		return tools.Pending("queued", map[string]interface{}{"gstin": "29ABCDE1234F1Z5"})
	}))

	o := newTestOrchestrator(mem, router)
	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "check gst 29ABCDE1234F1Z5"})

	if resp.MemorySaved {
		t.Error("pending verification must not persist a fact")
	}
	if len(mem.facts) != 0 {
		t.Errorf("saved facts = %v, want none", mem.facts)
	}
}

func TestPersistFactsBusinessNameAnyIntent(t *testing.T) {
	mem := &fakeMemory{}
	o := newTestOrchestrator(mem, nil)

	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "my company name is Sharma Textiles"})

	if !resp.MemorySaved {
		t.Error("an extracted business name must always be persisted")
	}
	if got := mem.factTypes(); len(got) != 1 || got[0] != "business_profile" {
		t.Errorf("saved fact types = %v, want [business_profile]", got)
	}
}

func TestPersistFactsLanguagePreference(t *testing.T) {
	mem := &fakeMemory{}
	router := tools.NewRouter()
	router.Register(intent.PreferenceUpdate, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		return tools.Success("ok", map[string]interface{}{"language": entities[extractor.KeyLanguage]})
	}))

	o := newTestOrchestrator(mem, router)
	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "switch language to hindi"})

	if !resp.MemorySaved {
		t.Error("language preference update must be persisted")
	}
	if mem.language != "hindi" {
		t.Errorf("language = %q, want hindi", mem.language)
	}
	if len(mem.facts) != 0 {
		t.Errorf("language lives on the preference row, not in facts; got %v", mem.facts)
	}
}

func TestHandleUnregisteredToolGetsPendingReply(t *testing.T) {
	mem := &fakeMemory{}
	o := newTestOrchestrator(mem, nil)

	resp := o.Handle(context.Background(), &Request{UserId: uuid.New(), Query: "get my pan card"})

	if resp.Intent != string(intent.DocumentFetch) {
		t.Errorf("intent = %s, want document.fetch", resp.Intent)
	}
	if resp.Reply != "This feature is coming soon." {
		t.Errorf("reply = %q, want coming-soon placeholder", resp.Reply)
	}
}
