package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationTurn struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_turns_user_created,priority:1"`
	SessionId string         `gorm:"type:varchar(100);not null;index"`
	Query     string         `gorm:"type:text;not null"`
	Response  string         `gorm:"type:text;not null"`
	Intent    *string        `gorm:"type:varchar(50)"`
	Entities  datatypes.JSON `gorm:"type:jsonb"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_turns_user_created,priority:2"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}

type BusinessContext struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_context_user_type_key,priority:1"`
	ContextType     string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_context_user_type_key,priority:2"`
	ContextKey      string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_context_user_type_key,priority:3"`
	ContextValue    datatypes.JSON `gorm:"type:jsonb"`
	Summary         string         `gorm:"type:text"`
	ConfidenceScore int            `gorm:"not null;default:100"`
	ExpiresAt       *time.Time     `gorm:"index"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (BusinessContext) TableName() string {
	return "business_contexts"
}

type UserPreference struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId               uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Language             string         `gorm:"type:varchar(30);not null;default:'english'"`
	CommunicationStyle   string         `gorm:"type:varchar(30);not null;default:'simple'"`
	NotificationSettings datatypes.JSON `gorm:"type:jsonb"`
	DashboardLayout      datatypes.JSON `gorm:"type:jsonb"`
	FrequentQueries      datatypes.JSON `gorm:"type:jsonb"`
	PreferredTopics      datatypes.JSON `gorm:"type:jsonb"`
	ActiveHours          datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
