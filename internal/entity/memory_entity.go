package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one request/response exchange. Immutable once created;
// turns are only ever deleted by session or in bulk per user.
type ConversationTurn struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SessionId string
	Query     string
	Response  string
	Intent    *string
	Entities  map[string]interface{}
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

// BusinessContext is a durable, named fact about a user's business, keyed by
// (user, context_type, context_key). Writes upsert by that composite key.
type BusinessContext struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	ContextType     string
	ContextKey      string
	ContextValue    map[string]interface{}
	Summary         string
	ConfidenceScore int
	ExpiresAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QueryLogEntry is one element of the preferences' rolling query log.
type QueryLogEntry struct {
	Query     string    `json:"query"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// UserPreference has exactly one row per user, created lazily on first
// access and mutated incrementally by the pattern tracker.
type UserPreference struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	Language             string
	CommunicationStyle   string
	NotificationSettings map[string]interface{}
	DashboardLayout      map[string]interface{}
	FrequentQueries      []QueryLogEntry
	PreferredTopics      []string
	ActiveHours          map[string]int // hour-of-day ("0".."23") -> count
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
