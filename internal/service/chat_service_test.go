package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/repository/memory"
	"smartbiz-be/pkg/store"
)

// fakeMemorySvc overrides just the methods the chat service reaches;
// anything else panics through the nil embedded interface.
type fakeMemorySvc struct {
	IMemoryService
	clearedSession string
	clearedAll     bool
	topics         []string
	prefCalls      int
}

func (m *fakeMemorySvc) ClearSession(ctx context.Context, userId uuid.UUID, sessionId string) (int64, error) {
	m.clearedSession = sessionId
	return 3, nil
}

func (m *fakeMemorySvc) ClearAllTurns(ctx context.Context, userId uuid.UUID) (int64, error) {
	m.clearedAll = true
	return 7, nil
}

func (m *fakeMemorySvc) GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error) {
	m.prefCalls++
	return &dto.PreferencesResponse{PreferredTopics: m.topics}, nil
}

func TestClearContextSessionScoped(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	memSvc := &fakeMemorySvc{}
	svc := NewChatService(nil, sessionRepo, memSvc)

	userId := uuid.New()
	sessionRepo.Save(&store.Session{ID: "s1", UserID: userId.String()})
	sessionRepo.Save(&store.Session{ID: "s2", UserID: userId.String()})

	res, err := svc.ClearContext(context.Background(), userId, &dto.ClearContextRequest{SessionId: "s1"})
	if err != nil {
		t.Fatalf("ClearContext: %v", err)
	}
	if res.DeletedTurns != 3 {
		t.Errorf("DeletedTurns = %d, want 3", res.DeletedTurns)
	}
	if memSvc.clearedSession != "s1" {
		t.Errorf("cleared session = %q, want s1", memSvc.clearedSession)
	}
	if memSvc.clearedAll {
		t.Error("session-scoped clear must not touch other sessions")
	}
	if _, ok := sessionRepo.Get("s1"); ok {
		t.Error("s1 should be evicted from the session store")
	}
	if _, ok := sessionRepo.Get("s2"); !ok {
		t.Error("s2 must survive a clear scoped to s1")
	}
}

func TestClearContextAllSessions(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	memSvc := &fakeMemorySvc{}
	svc := NewChatService(nil, sessionRepo, memSvc)

	userId := uuid.New()
	other := uuid.New()
	sessionRepo.Save(&store.Session{ID: "s1", UserID: userId.String()})
	sessionRepo.Save(&store.Session{ID: "s2", UserID: userId.String()})
	sessionRepo.Save(&store.Session{ID: "s3", UserID: other.String()})

	res, err := svc.ClearContext(context.Background(), userId, &dto.ClearContextRequest{})
	if err != nil {
		t.Fatalf("ClearContext: %v", err)
	}
	if res.DeletedTurns != 7 {
		t.Errorf("DeletedTurns = %d, want 7", res.DeletedTurns)
	}
	if !memSvc.clearedAll {
		t.Error("expected all turns cleared")
	}
	if _, ok := sessionRepo.Get("s1"); ok {
		t.Error("s1 should be gone")
	}
	if _, ok := sessionRepo.Get("s3"); !ok {
		t.Error("another user's session must survive")
	}
}

func TestSuggestionsLearnedTopicsAndCache(t *testing.T) {
	memSvc := &fakeMemorySvc{topics: []string{"invoice", "gst"}}
	svc := NewChatService(nil, memory.NewSessionRepository(), memSvc)

	userId := uuid.New()
	res, err := svc.Suggestions(context.Background(), userId)
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(res.Suggestions) != len(baseSuggestions)+2 {
		t.Fatalf("got %d suggestions, want %d", len(res.Suggestions), len(baseSuggestions)+2)
	}
	want := topicSuggestions["invoice"]
	found := false
	for _, s := range res.Suggestions {
		if s == want {
			found = true
		}
	}
	if !found {
		t.Errorf("learned invoice suggestion %q missing from %v", want, res.Suggestions)
	}

	// Second call is served from the cache, not the preference store.
	if _, err := svc.Suggestions(context.Background(), userId); err != nil {
		t.Fatalf("Suggestions (cached): %v", err)
	}
	if memSvc.prefCalls != 1 {
		t.Errorf("preference lookups = %d, want 1 (second call cached)", memSvc.prefCalls)
	}
}
