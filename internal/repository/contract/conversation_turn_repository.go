package contract

import (
	"context"

	"github.com/google/uuid"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
)

type ConversationTurnRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteBySession(ctx context.Context, userId uuid.UUID, sessionId string) (int64, error)
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error)
}
