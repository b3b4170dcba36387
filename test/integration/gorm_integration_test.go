package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.InvoiceRepository())
	assert.NotNil(t, uow.BusinessContextRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Conversation Turn Repository", func(t *testing.T) {
		count, err := uow.ConversationTurnRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ConversationTurn count: %d", count)
	})

	t.Run("Check Transactional Invoice Creation", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		seq, err := uow.InvoiceRepository().MaxSequenceForYear(ctx, userId, 2026)
		assert.NoError(t, err)
		assert.Equal(t, 0, seq)

		invoice := &entity.Invoice{
			Id:            uuid.New(),
			UserId:        userId,
			InvoiceNumber: fmt.Sprintf("INV-2026-%04d", seq+1),
			CustomerName:  "Integration Customer",
			Items: []entity.InvoiceItem{
				{Description: "Goods/Services", Quantity: 1, UnitPrice: 5000, Amount: 5000},
			},
			Subtotal:    5000,
			GstRate:     18,
			GstAmount:   900,
			TotalAmount: 5900,
			Status:      entity.InvoiceStatusDraft,
		}
		err = uow.InvoiceRepository().Create(ctx, invoice)
		assert.NoError(t, err)

		// A second insert with the same number must hit the unique index.
		dup := *invoice
		dup.Id = uuid.New()
		err = uow.InvoiceRepository().Create(ctx, &dup)
		assert.Error(t, err)
	})

	t.Run("Check Business Context Upsert", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		fact := &entity.BusinessContext{
			Id:              uuid.New(),
			UserId:          userId,
			ContextType:     "business_profile",
			ContextKey:      "business_name",
			ContextValue:    map[string]interface{}{"business_name": "Integration Traders"},
			Summary:         "Business name is Integration Traders",
			ConfidenceScore: 100,
		}
		err = uow.BusinessContextRepository().Upsert(ctx, fact)
		assert.NoError(t, err)

		// Same composite key again must update, not duplicate.
		fact.Id = uuid.New()
		fact.Summary = "Business name is Integration Traders Pvt Ltd"
		err = uow.BusinessContextRepository().Upsert(ctx, fact)
		assert.NoError(t, err)

		count, err := uow.BusinessContextRepository().Count(ctx)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(1))

		deleted, err := uow.BusinessContextRepository().DeleteAllByUserId(ctx, userId)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})
}
