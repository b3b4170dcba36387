package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/pkg/ai/intent"
)

const (
	// maxQueryLogEntries caps the rolling per-user query log.
	maxQueryLogEntries = 50
	// recentActivityTTL bounds how long "last action" facts stay relevant.
	recentActivityTTL = 30 * 24 * time.Hour

	defaultHistoryLimit = 20
)

type IMemoryService interface {
	// Orchestrator gateway.
	FetchContext(ctx context.Context, userId uuid.UUID) (map[string]interface{}, error)
	RecordTurn(ctx context.Context, userId uuid.UUID, sessionId, query, response string, it intent.Intent, entities map[string]interface{}, toolsUsed []string) error
	SaveFact(ctx context.Context, userId uuid.UUID, contextType, contextKey string, value map[string]interface{}, summary string) error
	TrackPattern(ctx context.Context, userId uuid.UUID, query string, it intent.Intent) error
	SetLanguage(ctx context.Context, userId uuid.UUID, language string) error

	// Memory API.
	GetContextFacts(ctx context.Context, userId uuid.UUID, contextType, contextKey string) ([]*dto.ContextFactResponse, error)
	SaveContextFact(ctx context.Context, userId uuid.UUID, req *dto.SaveContextFactRequest) error
	GetConversations(ctx context.Context, userId uuid.UUID, req *dto.ConversationHistoryRequest) (*dto.ConversationHistoryResponse, error)
	// ClearSession and ClearAllTurns delete conversation turns only.
	// Business context and preferences have no bulk-clear: they are
	// durable learned facts, not ephemeral chat.
	ClearSession(ctx context.Context, userId uuid.UUID, sessionId string) (int64, error)
	ClearAllTurns(ctx context.Context, userId uuid.UUID) (int64, error)
	GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error)
	GetSummary(ctx context.Context, userId uuid.UUID) (*dto.MemorySummaryResponse, error)

	// SweepExpired removes context facts whose TTL has passed. Called
	// periodically by the bootstrap janitor.
	SweepExpired(ctx context.Context) (int64, error)
}

type memoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMemoryService(uowFactory unitofwork.RepositoryFactory) IMemoryService {
	return &memoryService{
		uowFactory: uowFactory,
	}
}

func (s *memoryService) FetchContext(ctx context.Context, userId uuid.UUID) (map[string]interface{}, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	facts, err := uow.BusinessContextRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NotExpired{Now: time.Now()},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	pref, err := uow.UserPreferenceRepository().GetOrCreate(ctx, userId)
	if err != nil {
		return nil, err
	}

	factMap := map[string]interface{}{}
	for _, fact := range facts {
		factMap[fact.ContextType+"."+fact.ContextKey] = fact.Summary
	}

	return map[string]interface{}{
		"facts":               factMap,
		"language":            pref.Language,
		"communication_style": pref.CommunicationStyle,
		"preferred_topics":    pref.PreferredTopics,
	}, nil
}

func (s *memoryService) RecordTurn(ctx context.Context, userId uuid.UUID, sessionId, query, response string, it intent.Intent, entities map[string]interface{}, toolsUsed []string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	intentStr := string(it)
	turn := &entity.ConversationTurn{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: sessionId,
		Query:     query,
		Response:  response,
		Intent:    &intentStr,
		Entities:  entities,
		Metadata:  map[string]interface{}{"tools_used": toolsUsed},
		CreatedAt: time.Now(),
	}
	return uow.ConversationTurnRepository().Create(ctx, turn)
}

func (s *memoryService) SaveFact(ctx context.Context, userId uuid.UUID, contextType, contextKey string, value map[string]interface{}, summary string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	fact := &entity.BusinessContext{
		Id:              uuid.New(),
		UserId:          userId,
		ContextType:     contextType,
		ContextKey:      contextKey,
		ContextValue:    value,
		Summary:         summary,
		ConfidenceScore: 100,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if contextType == "recent_activity" {
		expires := now.Add(recentActivityTTL)
		fact.ExpiresAt = &expires
	}
	return uow.BusinessContextRepository().Upsert(ctx, fact)
}

// TrackPattern folds one classified query into the user's preference row:
// rolling query log, topic set and hour-of-day histogram.
func (s *memoryService) TrackPattern(ctx context.Context, userId uuid.UUID, query string, it intent.Intent) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref, err := uow.UserPreferenceRepository().GetOrCreate(ctx, userId)
	if err != nil {
		return err
	}

	now := time.Now()
	pref.FrequentQueries = append(pref.FrequentQueries, entity.QueryLogEntry{
		Query:     query,
		Intent:    string(it),
		Timestamp: now,
	})
	if len(pref.FrequentQueries) > maxQueryLogEntries {
		pref.FrequentQueries = pref.FrequentQueries[len(pref.FrequentQueries)-maxQueryLogEntries:]
	}

	topic := topicOf(it)
	if topic != "" && !containsString(pref.PreferredTopics, topic) {
		pref.PreferredTopics = append(pref.PreferredTopics, topic)
	}

	if pref.ActiveHours == nil {
		pref.ActiveHours = map[string]int{}
	}
	pref.ActiveHours[strconv.Itoa(now.Hour())]++

	pref.UpdatedAt = now
	return uow.UserPreferenceRepository().Update(ctx, pref)
}

func (s *memoryService) SetLanguage(ctx context.Context, userId uuid.UUID, language string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref, err := uow.UserPreferenceRepository().GetOrCreate(ctx, userId)
	if err != nil {
		return err
	}
	pref.Language = strings.ToLower(language)
	pref.UpdatedAt = time.Now()
	return uow.UserPreferenceRepository().Update(ctx, pref)
}

func (s *memoryService) GetContextFacts(ctx context.Context, userId uuid.UUID, contextType, contextKey string) ([]*dto.ContextFactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.NotExpired{Now: time.Now()},
	}
	if contextType != "" {
		specs = append(specs, specification.ByContextType{ContextType: contextType})
	}
	if contextKey != "" {
		specs = append(specs, specification.ByContextKey{ContextKey: contextKey})
	}
	specs = append(specs, specification.OrderBy{Field: "updated_at", Desc: true})

	facts, err := uow.BusinessContextRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ContextFactResponse, 0, len(facts))
	for _, fact := range facts {
		res = append(res, &dto.ContextFactResponse{
			Id:              fact.Id,
			ContextType:     fact.ContextType,
			ContextKey:      fact.ContextKey,
			ContextValue:    fact.ContextValue,
			Summary:         fact.Summary,
			ConfidenceScore: fact.ConfidenceScore,
			ExpiresAt:       fact.ExpiresAt,
			UpdatedAt:       fact.UpdatedAt,
		})
	}
	return res, nil
}

func (s *memoryService) SaveContextFact(ctx context.Context, userId uuid.UUID, req *dto.SaveContextFactRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	fact := &entity.BusinessContext{
		Id:              uuid.New(),
		UserId:          userId,
		ContextType:     req.ContextType,
		ContextKey:      req.ContextKey,
		ContextValue:    req.ContextValue,
		Summary:         req.Summary,
		ConfidenceScore: 100,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.TtlDays > 0 {
		expires := now.Add(time.Duration(req.TtlDays) * 24 * time.Hour)
		fact.ExpiresAt = &expires
	}
	return uow.BusinessContextRepository().Upsert(ctx, fact)
}

func (s *memoryService) GetConversations(ctx context.Context, userId uuid.UUID, req *dto.ConversationHistoryRequest) (*dto.ConversationHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if req.SessionId != "" {
		specs = append(specs, specification.BySessionId{SessionId: req.SessionId})
	}
	if req.Search != "" {
		specs = append(specs, specification.TurnSearchQuery{Query: req.Search})
	}
	if req.Days > 0 {
		specs = append(specs, specification.CreatedAfter{Time: time.Now().AddDate(0, 0, -req.Days)})
	}

	total, err := uow.ConversationTurnRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)

	turns, err := uow.ConversationTurnRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ConversationTurnResponse, 0, len(turns))
	for _, turn := range turns {
		res = append(res, &dto.ConversationTurnResponse{
			Id:        turn.Id,
			SessionId: turn.SessionId,
			Query:     turn.Query,
			Response:  turn.Response,
			Intent:    turn.Intent,
			Entities:  turn.Entities,
			CreatedAt: turn.CreatedAt,
		})
	}
	return &dto.ConversationHistoryResponse{Turns: res, TotalCount: total}, nil
}

func (s *memoryService) ClearSession(ctx context.Context, userId uuid.UUID, sessionId string) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConversationTurnRepository().DeleteBySession(ctx, userId, sessionId)
}

func (s *memoryService) ClearAllTurns(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConversationTurnRepository().DeleteAllByUserId(ctx, userId)
}

func (s *memoryService) GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref, err := uow.UserPreferenceRepository().GetOrCreate(ctx, userId)
	if err != nil {
		return nil, err
	}
	return toPreferencesResponse(pref), nil
}

func (s *memoryService) UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref, err := uow.UserPreferenceRepository().GetOrCreate(ctx, userId)
	if err != nil {
		return nil, err
	}

	if req.Language != nil {
		pref.Language = strings.ToLower(*req.Language)
	}
	if req.CommunicationStyle != nil {
		pref.CommunicationStyle = *req.CommunicationStyle
	}
	if req.NotificationSettings != nil {
		pref.NotificationSettings = req.NotificationSettings
	}
	if req.DashboardLayout != nil {
		pref.DashboardLayout = req.DashboardLayout
	}
	pref.UpdatedAt = time.Now()

	if err := uow.UserPreferenceRepository().Update(ctx, pref); err != nil {
		return nil, err
	}
	return toPreferencesResponse(pref), nil
}

func (s *memoryService) GetSummary(ctx context.Context, userId uuid.UUID) (*dto.MemorySummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	turnCount, err := uow.ConversationTurnRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	facts, err := uow.BusinessContextRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NotExpired{Now: time.Now()},
	)
	if err != nil {
		return nil, err
	}

	pref, err := uow.UserPreferenceRepository().GetOrCreate(ctx, userId)
	if err != nil {
		return nil, err
	}

	factsByType := map[string]int64{}
	businessFacts := map[string]interface{}{}
	for _, fact := range facts {
		factsByType[fact.ContextType]++
		businessFacts[fact.ContextType+"."+fact.ContextKey] = fact.Summary
	}

	var lastActivity *time.Time
	lastTurns, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 1, Offset: 0},
	)
	if err != nil {
		return nil, err
	}
	if len(lastTurns) > 0 {
		lastActivity = &lastTurns[0].CreatedAt
	}

	return &dto.MemorySummaryResponse{
		TurnCount:      turnCount,
		FactCount:      int64(len(facts)),
		FactsByType:    factsByType,
		TopTopics:      pref.PreferredTopics,
		Language:       pref.Language,
		LastActivityAt: lastActivity,
		BusinessFacts:  businessFacts,
	}, nil
}

func (s *memoryService) SweepExpired(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.BusinessContextRepository().DeleteExpired(ctx)
}

// topicOf maps an intent to its coarse topic ("invoice.create" -> "invoice").
func topicOf(it intent.Intent) string {
	s := string(it)
	if s == "" || s == string(intent.Unknown) || s == string(intent.General) {
		return ""
	}
	if idx := strings.Index(s, "."); idx > 0 {
		return s[:idx]
	}
	return s
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func toPreferencesResponse(pref *entity.UserPreference) *dto.PreferencesResponse {
	queries := make([]dto.QueryLogEntryDTO, 0, len(pref.FrequentQueries))
	for _, q := range pref.FrequentQueries {
		queries = append(queries, dto.QueryLogEntryDTO{
			Query:     q.Query,
			Intent:    q.Intent,
			Timestamp: q.Timestamp,
		})
	}
	return &dto.PreferencesResponse{
		Language:             pref.Language,
		CommunicationStyle:   pref.CommunicationStyle,
		NotificationSettings: pref.NotificationSettings,
		DashboardLayout:      pref.DashboardLayout,
		FrequentQueries:      queries,
		PreferredTopics:      pref.PreferredTopics,
		ActiveHours:          pref.ActiveHours,
		UpdatedAt:            pref.UpdatedAt,
	}
}
