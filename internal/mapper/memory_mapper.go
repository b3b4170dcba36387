package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/model"
)

type MemoryMapper struct{}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

func toMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return out
}

func (m *MemoryMapper) TurnToEntity(t *model.ConversationTurn) *entity.ConversationTurn {
	if t == nil {
		return nil
	}
	return &entity.ConversationTurn{
		Id:        t.Id,
		UserId:    t.UserId,
		SessionId: t.SessionId,
		Query:     t.Query,
		Response:  t.Response,
		Intent:    t.Intent,
		Entities:  toMap(t.Entities),
		Metadata:  toMap(t.Metadata),
		CreatedAt: t.CreatedAt,
	}
}

func (m *MemoryMapper) TurnToModel(t *entity.ConversationTurn) *model.ConversationTurn {
	if t == nil {
		return nil
	}
	return &model.ConversationTurn{
		Id:        t.Id,
		UserId:    t.UserId,
		SessionId: t.SessionId,
		Query:     t.Query,
		Response:  t.Response,
		Intent:    t.Intent,
		Entities:  toJSON(t.Entities),
		Metadata:  toJSON(t.Metadata),
		CreatedAt: t.CreatedAt,
	}
}

func (m *MemoryMapper) TurnsToEntities(turns []*model.ConversationTurn) []*entity.ConversationTurn {
	entities := make([]*entity.ConversationTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.TurnToEntity(t)
	}
	return entities
}

func (m *MemoryMapper) ContextToEntity(c *model.BusinessContext) *entity.BusinessContext {
	if c == nil {
		return nil
	}
	return &entity.BusinessContext{
		Id:              c.Id,
		UserId:          c.UserId,
		ContextType:     c.ContextType,
		ContextKey:      c.ContextKey,
		ContextValue:    toMap(c.ContextValue),
		Summary:         c.Summary,
		ConfidenceScore: c.ConfidenceScore,
		ExpiresAt:       c.ExpiresAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *MemoryMapper) ContextToModel(c *entity.BusinessContext) *model.BusinessContext {
	if c == nil {
		return nil
	}
	return &model.BusinessContext{
		Id:              c.Id,
		UserId:          c.UserId,
		ContextType:     c.ContextType,
		ContextKey:      c.ContextKey,
		ContextValue:    toJSON(c.ContextValue),
		Summary:         c.Summary,
		ConfidenceScore: c.ConfidenceScore,
		ExpiresAt:       c.ExpiresAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (m *MemoryMapper) ContextsToEntities(contexts []*model.BusinessContext) []*entity.BusinessContext {
	entities := make([]*entity.BusinessContext, len(contexts))
	for i, c := range contexts {
		entities[i] = m.ContextToEntity(c)
	}
	return entities
}

func (m *MemoryMapper) PreferenceToEntity(p *model.UserPreference) *entity.UserPreference {
	if p == nil {
		return nil
	}

	var queries []entity.QueryLogEntry
	if len(p.FrequentQueries) > 0 {
		_ = json.Unmarshal(p.FrequentQueries, &queries)
	}
	var topics []string
	if len(p.PreferredTopics) > 0 {
		_ = json.Unmarshal(p.PreferredTopics, &topics)
	}
	var hours map[string]int
	if len(p.ActiveHours) > 0 {
		_ = json.Unmarshal(p.ActiveHours, &hours)
	}

	return &entity.UserPreference{
		Id:                   p.Id,
		UserId:               p.UserId,
		Language:             p.Language,
		CommunicationStyle:   p.CommunicationStyle,
		NotificationSettings: toMap(p.NotificationSettings),
		DashboardLayout:      toMap(p.DashboardLayout),
		FrequentQueries:      queries,
		PreferredTopics:      topics,
		ActiveHours:          hours,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (m *MemoryMapper) PreferenceToModel(p *entity.UserPreference) *model.UserPreference {
	if p == nil {
		return nil
	}
	return &model.UserPreference{
		Id:                   p.Id,
		UserId:               p.UserId,
		Language:             p.Language,
		CommunicationStyle:   p.CommunicationStyle,
		NotificationSettings: toJSON(p.NotificationSettings),
		DashboardLayout:      toJSON(p.DashboardLayout),
		FrequentQueries:      toJSON(p.FrequentQueries),
		PreferredTopics:      toJSON(p.PreferredTopics),
		ActiveHours:          toJSON(p.ActiveHours),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
