package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConversationTurnResponse struct {
	Id        uuid.UUID              `json:"id"`
	SessionId string                 `json:"session_id"`
	Query     string                 `json:"query"`
	Response  string                 `json:"response"`
	Intent    *string                `json:"intent,omitempty"`
	Entities  map[string]interface{} `json:"entities,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type ConversationHistoryRequest struct {
	SessionId string `query:"session_id"`
	Search    string `query:"search"`
	// Days restricts history to turns created in the last N days.
	Days  int `query:"days"`
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

type ConversationHistoryResponse struct {
	Turns      []*ConversationTurnResponse `json:"turns"`
	TotalCount int64                       `json:"total_count"`
}

type ContextFactResponse struct {
	Id              uuid.UUID              `json:"id"`
	ContextType     string                 `json:"context_type"`
	ContextKey      string                 `json:"context_key"`
	ContextValue    map[string]interface{} `json:"context_value"`
	Summary         string                 `json:"summary"`
	ConfidenceScore int                    `json:"confidence_score"`
	ExpiresAt       *time.Time             `json:"expires_at,omitempty"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type SaveContextFactRequest struct {
	ContextType  string                 `json:"context_type" validate:"required"`
	ContextKey   string                 `json:"context_key" validate:"required"`
	ContextValue map[string]interface{} `json:"context_value" validate:"required"`
	Summary      string                 `json:"summary"`
	// TtlDays sets an expiry; zero means the fact never expires.
	TtlDays int `json:"ttl_days" validate:"gte=0"`
}

type QueryLogEntryDTO struct {
	Query     string    `json:"query"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

type PreferencesResponse struct {
	Language             string                 `json:"language"`
	CommunicationStyle   string                 `json:"communication_style"`
	NotificationSettings map[string]interface{} `json:"notification_settings,omitempty"`
	DashboardLayout      map[string]interface{} `json:"dashboard_layout,omitempty"`
	FrequentQueries      []QueryLogEntryDTO     `json:"frequent_queries"`
	PreferredTopics      []string               `json:"preferred_topics"`
	ActiveHours          map[string]int         `json:"active_hours"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

// UpdatePreferencesRequest enumerates every field callers may change. Nil
// pointers leave the stored value untouched.
type UpdatePreferencesRequest struct {
	Language             *string                `json:"language,omitempty" validate:"omitempty,oneof=english hindi bengali telugu marathi tamil gujarati kannada malayalam punjabi urdu odia"`
	CommunicationStyle   *string                `json:"communication_style,omitempty" validate:"omitempty,oneof=simple detailed technical"`
	NotificationSettings map[string]interface{} `json:"notification_settings,omitempty"`
	DashboardLayout      map[string]interface{} `json:"dashboard_layout,omitempty"`
}

type MemorySummaryResponse struct {
	TurnCount      int64                  `json:"turn_count"`
	FactCount      int64                  `json:"fact_count"`
	FactsByType    map[string]int64       `json:"facts_by_type"`
	TopTopics      []string               `json:"top_topics"`
	Language       string                 `json:"language"`
	LastActivityAt *time.Time             `json:"last_activity_at,omitempty"`
	BusinessFacts  map[string]interface{} `json:"business_facts,omitempty"`
}
