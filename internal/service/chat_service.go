package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/repository/memory"
	"smartbiz-be/pkg/ai/orchestrator"
	"smartbiz-be/pkg/store"
)

var baseSuggestions = []string{
	"Create invoice for Acme Corp worth ₹5000",
	"Show my invoices",
	"Check GST 29ABCDE1234F1Z5",
	"How is my business this month?",
	"GST return for this month",
}

// topicSuggestions offers deeper prompts once a topic shows up in the
// user's history.
var topicSuggestions = map[string]string{
	"invoice":  "Delete invoice INV-1",
	"gst":      "File GST return",
	"business": "Show pending invoices",
	"udyam":    "Look up my Udyam registration",
}

type IChatService interface {
	Query(ctx context.Context, userId uuid.UUID, req *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error)
	ClearContext(ctx context.Context, userId uuid.UUID, req *dto.ClearContextRequest) (*dto.ClearContextResponse, error)
	Suggestions(ctx context.Context, userId uuid.UUID) (*dto.SuggestionsResponse, error)
}

type chatService struct {
	orch            *orchestrator.Orchestrator
	sessionRepo     *memory.SessionRepository
	memoryService   IMemoryService
	suggestionCache *gocache.Cache
}

func NewChatService(
	orch *orchestrator.Orchestrator,
	sessionRepo *memory.SessionRepository,
	memoryService IMemoryService,
) IChatService {
	return &chatService{
		orch:            orch,
		sessionRepo:     sessionRepo,
		memoryService:   memoryService,
		suggestionCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *chatService) Query(ctx context.Context, userId uuid.UUID, req *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error) {
	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	session, ok := s.sessionRepo.Get(sessionId)
	if !ok || session.UserID != userId.String() {
		session = &store.Session{
			ID:     sessionId,
			UserID: userId.String(),
		}
	}

	res := s.orch.Handle(ctx, &orchestrator.Request{
		UserId:    userId,
		SessionId: sessionId,
		Query:     req.Query,
		Language:  req.Language,
	})

	session.LastQuery = req.Query
	session.LastIntent = res.Intent
	session.LastEntities = res.Entities
	session.TurnCount++
	s.sessionRepo.Save(session)

	return &dto.ChatQueryResponse{
		Reply:       res.Reply,
		Intent:      res.Intent,
		Entities:    res.Entities,
		Context:     res.Context,
		Suggestions: res.Suggestions,
		ToolsUsed:   res.ToolsUsed,
		MemorySaved: res.MemorySaved,
		SessionId:   sessionId,
	}, nil
}

// ClearContext drops conversation turns: just one session when an id is
// given, every session of the user otherwise. Durable business facts and
// preferences survive either way.
func (s *chatService) ClearContext(ctx context.Context, userId uuid.UUID, req *dto.ClearContextRequest) (*dto.ClearContextResponse, error) {
	if req.SessionId != "" {
		deleted, err := s.memoryService.ClearSession(ctx, userId, req.SessionId)
		if err != nil {
			return nil, err
		}
		s.sessionRepo.Delete(req.SessionId)
		return &dto.ClearContextResponse{DeletedTurns: deleted}, nil
	}

	deleted, err := s.memoryService.ClearAllTurns(ctx, userId)
	if err != nil {
		return nil, err
	}
	s.sessionRepo.DeleteByUser(userId.String())
	return &dto.ClearContextResponse{DeletedTurns: deleted}, nil
}

func (s *chatService) Suggestions(ctx context.Context, userId uuid.UUID) (*dto.SuggestionsResponse, error) {
	cacheKey := userId.String()
	if cached, ok := s.suggestionCache.Get(cacheKey); ok {
		return cached.(*dto.SuggestionsResponse), nil
	}

	suggestions := append([]string{}, baseSuggestions...)

	pref, err := s.memoryService.GetPreferences(ctx, userId)
	if err == nil {
		for _, topic := range pref.PreferredTopics {
			if extra, ok := topicSuggestions[topic]; ok {
				suggestions = append(suggestions, extra)
			}
		}
	}

	res := &dto.SuggestionsResponse{Suggestions: suggestions}
	s.suggestionCache.Set(cacheKey, res, gocache.DefaultExpiration)
	return res, nil
}
