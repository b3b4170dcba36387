package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/contract"
	"smartbiz-be/internal/repository/specification"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/pkg/ai/intent"
)

func TestTopicOf(t *testing.T) {
	tests := []struct {
		it   intent.Intent
		want string
	}{
		{intent.InvoiceCreate, "invoice"},
		{intent.InvoiceView, "invoice"},
		{intent.GstVerify, "gst"},
		{intent.BusinessSummary, "business"},
		{intent.PreferenceUpdate, "preference"},
		{intent.General, ""},
		{intent.Unknown, ""},
		{intent.Intent(""), ""},
	}

	for _, tt := range tests {
		if got := topicOf(tt.it); got != tt.want {
			t.Errorf("topicOf(%q) = %q, want %q", tt.it, got, tt.want)
		}
	}
}

func TestContainsString(t *testing.T) {
	topics := []string{"invoice", "gst"}

	if !containsString(topics, "gst") {
		t.Error("expected gst to be found")
	}
	if containsString(topics, "udyam") {
		t.Error("udyam should not be found")
	}
	if containsString(nil, "invoice") {
		t.Error("nil list contains nothing")
	}
}

// fakeUnitOfWork satisfies the accessors TrackPattern, SetLanguage and
// SaveFact touch; every other repository panics if reached.
type fakeUnitOfWork struct {
	unitofwork.UnitOfWork
	prefs *fakePreferenceRepo
	facts *fakeContextRepo
	turns *fakeTurnRepo
}

func (u *fakeUnitOfWork) UserPreferenceRepository() contract.UserPreferenceRepository {
	return u.prefs
}

func (u *fakeUnitOfWork) BusinessContextRepository() contract.BusinessContextRepository {
	return u.facts
}

func (u *fakeUnitOfWork) ConversationTurnRepository() contract.ConversationTurnRepository {
	return u.turns
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakePreferenceRepo struct {
	contract.UserPreferenceRepository
	pref *entity.UserPreference
}

func (r *fakePreferenceRepo) GetOrCreate(ctx context.Context, userId uuid.UUID) (*entity.UserPreference, error) {
	if r.pref == nil {
		r.pref = &entity.UserPreference{
			Id:       uuid.New(),
			UserId:   userId,
			Language: "english",
		}
	}
	return r.pref, nil
}

func (r *fakePreferenceRepo) Update(ctx context.Context, pref *entity.UserPreference) error {
	r.pref = pref
	return nil
}

type fakeTurnRepo struct {
	contract.ConversationTurnRepository
	stored          int64
	clearedSessions []string
	clearedUsers    []uuid.UUID
}

func (r *fakeTurnRepo) DeleteBySession(ctx context.Context, userId uuid.UUID, sessionId string) (int64, error) {
	r.clearedSessions = append(r.clearedSessions, sessionId)
	return 1, nil
}

func (r *fakeTurnRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.clearedUsers = append(r.clearedUsers, userId)
	deleted := r.stored
	r.stored = 0
	return deleted, nil
}

type fakeContextRepo struct {
	contract.BusinessContextRepository
	facts map[string]*entity.BusinessContext
}

// FindAll interprets the filter specifications the memory service uses so
// read-path behavior can be asserted without a database.
func (r *fakeContextRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BusinessContext, error) {
	var out []*entity.BusinessContext
	for _, fact := range r.facts {
		keep := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.UserOwnedBy:
				if fact.UserId != s.UserID {
					keep = false
				}
			case specification.NotExpired:
				if fact.ExpiresAt != nil && !fact.ExpiresAt.After(s.Now) {
					keep = false
				}
			case specification.ByContextType:
				if fact.ContextType != s.ContextType {
					keep = false
				}
			case specification.ByContextKey:
				if fact.ContextKey != s.ContextKey {
					keep = false
				}
			}
		}
		if keep {
			out = append(out, fact)
		}
	}
	return out, nil
}

func (r *fakeContextRepo) Upsert(ctx context.Context, fact *entity.BusinessContext) error {
	if r.facts == nil {
		r.facts = map[string]*entity.BusinessContext{}
	}
	key := fact.UserId.String() + "|" + fact.ContextType + "|" + fact.ContextKey
	if existing, ok := r.facts[key]; ok {
		existing.ContextValue = fact.ContextValue
		existing.Summary = fact.Summary
		existing.ExpiresAt = fact.ExpiresAt
		existing.UpdatedAt = fact.UpdatedAt
		return nil
	}
	r.facts[key] = fact
	return nil
}

func newFakeMemoryService() (IMemoryService, *fakeUnitOfWork) {
	uow := &fakeUnitOfWork{
		prefs: &fakePreferenceRepo{},
		facts: &fakeContextRepo{},
		turns: &fakeTurnRepo{},
	}
	return NewMemoryService(&fakeFactory{uow: uow}), uow
}

func TestTrackPatternCapsQueryLog(t *testing.T) {
	svc, uow := newFakeMemoryService()
	userId := uuid.New()

	for i := 0; i < 60; i++ {
		query := fmt.Sprintf("show my invoices %d", i)
		if err := svc.TrackPattern(context.Background(), userId, query, intent.InvoiceView); err != nil {
			t.Fatalf("TrackPattern: %v", err)
		}
	}

	pref := uow.prefs.pref
	if len(pref.FrequentQueries) != 50 {
		t.Fatalf("query log length = %d, want 50", len(pref.FrequentQueries))
	}
	if pref.FrequentQueries[0].Query != "show my invoices 10" {
		t.Errorf("oldest kept entry = %q, want the 11th query", pref.FrequentQueries[0].Query)
	}
	if last := pref.FrequentQueries[49].Query; last != "show my invoices 59" {
		t.Errorf("newest entry = %q, want the 60th query", last)
	}
}

func TestTrackPatternTopicsAndHours(t *testing.T) {
	svc, uow := newFakeMemoryService()
	userId := uuid.New()

	svc.TrackPattern(context.Background(), userId, "create invoice", intent.InvoiceCreate)
	svc.TrackPattern(context.Background(), userId, "show invoices", intent.InvoiceView)
	svc.TrackPattern(context.Background(), userId, "check gst", intent.GstVerify)

	pref := uow.prefs.pref
	if len(pref.PreferredTopics) != 2 {
		t.Fatalf("topics = %v, want [invoice gst]", pref.PreferredTopics)
	}
	if pref.PreferredTopics[0] != "invoice" || pref.PreferredTopics[1] != "gst" {
		t.Errorf("topics = %v, want [invoice gst]", pref.PreferredTopics)
	}

	total := 0
	for _, n := range pref.ActiveHours {
		total += n
	}
	if total != 3 {
		t.Errorf("hour histogram total = %d, want 3", total)
	}
}

func TestSetLanguageLowercases(t *testing.T) {
	svc, uow := newFakeMemoryService()
	userId := uuid.New()

	if err := svc.SetLanguage(context.Background(), userId, "Hindi"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if uow.prefs.pref.Language != "hindi" {
		t.Errorf("language = %q, want hindi", uow.prefs.pref.Language)
	}
}

func TestSaveFactUpsertsByCompositeKey(t *testing.T) {
	svc, uow := newFakeMemoryService()
	userId := uuid.New()

	err := svc.SaveFact(context.Background(), userId, "tax_identifier", "gstin",
		map[string]interface{}{"gstin": "29ABCDE1234F1Z5"}, "GSTIN on file")
	if err != nil {
		t.Fatalf("SaveFact: %v", err)
	}
	err = svc.SaveFact(context.Background(), userId, "tax_identifier", "gstin",
		map[string]interface{}{"gstin": "27ABCDE1234F1Z3"}, "GSTIN updated")
	if err != nil {
		t.Fatalf("SaveFact: %v", err)
	}

	if len(uow.facts.facts) != 1 {
		t.Fatalf("fact rows = %d, want 1 after same-key writes", len(uow.facts.facts))
	}
	for _, fact := range uow.facts.facts {
		if fact.ContextValue["gstin"] != "27ABCDE1234F1Z3" {
			t.Errorf("value not replaced on upsert: %v", fact.ContextValue)
		}
		if fact.ExpiresAt != nil {
			t.Errorf("tax_identifier facts should not expire")
		}
	}
}

func TestSaveFactRecentActivityGetsExpiry(t *testing.T) {
	svc, uow := newFakeMemoryService()
	userId := uuid.New()

	err := svc.SaveFact(context.Background(), userId, "recent_activity", "last_invoice",
		map[string]interface{}{"invoice_number": "INV-2026-0001"}, "Created INV-2026-0001")
	if err != nil {
		t.Fatalf("SaveFact: %v", err)
	}

	for _, fact := range uow.facts.facts {
		if fact.ExpiresAt == nil {
			t.Fatal("recent_activity fact must carry an expiry")
		}
		if until := time.Until(*fact.ExpiresAt); until < 29*24*time.Hour || until > 31*24*time.Hour {
			t.Errorf("expiry %v not around 30 days out", until)
		}
	}
}

// Clearing all conversations must never touch business context: durable
// learned facts have no bulk-clear.
func TestClearAllTurnsLeavesFactsAlone(t *testing.T) {
	svc, uow := newFakeMemoryService()
	userId := uuid.New()
	uow.turns.stored = 12

	svc.SaveFact(context.Background(), userId, "tax_identifier", "gstin",
		map[string]interface{}{"gstin": "29ABCDE1234F1Z5"}, "GSTIN on file")
	svc.SaveFact(context.Background(), userId, "business_profile", "business_name",
		map[string]interface{}{"name": "Sharma Textiles"}, "Business name")

	deleted, err := svc.ClearAllTurns(context.Background(), userId)
	if err != nil {
		t.Fatalf("ClearAllTurns: %v", err)
	}
	if deleted != 12 {
		t.Errorf("deleted turns = %d, want 12", deleted)
	}
	if len(uow.turns.clearedUsers) != 1 || uow.turns.clearedUsers[0] != userId {
		t.Errorf("turn deletion not scoped to user: %v", uow.turns.clearedUsers)
	}
	if len(uow.facts.facts) != 2 {
		t.Fatalf("business context rows = %d after turn clear, want 2 untouched", len(uow.facts.facts))
	}
}

func TestGetContextFactsExcludesExpired(t *testing.T) {
	svc, uow := newFakeMemoryService()
	userId := uuid.New()

	past := time.Now().Add(-time.Hour)
	uow.facts.facts = map[string]*entity.BusinessContext{
		"stale": {
			Id: uuid.New(), UserId: userId,
			ContextType: "recent_activity", ContextKey: "last_invoice",
			ExpiresAt: &past,
		},
		"live": {
			Id: uuid.New(), UserId: userId,
			ContextType: "tax_identifier", ContextKey: "gstin",
		},
	}

	facts, err := svc.GetContextFacts(context.Background(), userId, "", "")
	if err != nil {
		t.Fatalf("GetContextFacts: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("got %d facts, want 1 (expired excluded)", len(facts))
	}
	if facts[0].ContextType != "tax_identifier" {
		t.Errorf("surviving fact = %q, want tax_identifier", facts[0].ContextType)
	}
}

func TestGetContextFactsFiltersByTypeAndKey(t *testing.T) {
	svc, uow := newFakeMemoryService()
	userId := uuid.New()

	uow.facts.facts = map[string]*entity.BusinessContext{
		"gstin": {
			Id: uuid.New(), UserId: userId,
			ContextType: "tax_identifier", ContextKey: "gstin",
		},
		"udyam": {
			Id: uuid.New(), UserId: userId,
			ContextType: "tax_identifier", ContextKey: "udyam",
		},
		"name": {
			Id: uuid.New(), UserId: userId,
			ContextType: "business_profile", ContextKey: "business_name",
		},
	}

	byType, err := svc.GetContextFacts(context.Background(), userId, "tax_identifier", "")
	if err != nil {
		t.Fatalf("GetContextFacts: %v", err)
	}
	if len(byType) != 2 {
		t.Fatalf("type filter returned %d facts, want 2", len(byType))
	}

	byKey, err := svc.GetContextFacts(context.Background(), userId, "tax_identifier", "udyam")
	if err != nil {
		t.Fatalf("GetContextFacts: %v", err)
	}
	if len(byKey) != 1 || byKey[0].ContextKey != "udyam" {
		t.Errorf("type+key filter = %v, want the single udyam fact", byKey)
	}
}
