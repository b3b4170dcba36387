package specification

import (
	"time"

	"gorm.io/gorm"
)

type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

type ByContextType struct {
	ContextType string
}

func (s ByContextType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("context_type = ?", s.ContextType)
}

type ByContextKey struct {
	ContextKey string
}

func (s ByContextKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("context_key = ?", s.ContextKey)
}

// NotExpired keeps rows with no expiry or an expiry still in the future.
type NotExpired struct {
	Now time.Time
}

func (s NotExpired) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at IS NULL OR expires_at > ?", s.Now)
}

type CreatedAfter struct {
	Time time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.Time)
}

// TurnSearchQuery matches a keyword against both sides of an exchange.
type TurnSearchQuery struct {
	Query string
}

func (s TurnSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("query ILIKE ? OR response ILIKE ?", pattern, pattern)
}
