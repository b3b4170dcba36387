package unitofwork

import (
	"context"

	"smartbiz-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BusinessProfileRepository() contract.BusinessProfileRepository
	CustomerRepository() contract.CustomerRepository
	InvoiceRepository() contract.InvoiceRepository
	GstFilingRepository() contract.GstFilingRepository

	ConversationTurnRepository() contract.ConversationTurnRepository
	BusinessContextRepository() contract.BusinessContextRepository
	UserPreferenceRepository() contract.UserPreferenceRepository
	NotificationRepository() contract.NotificationRepository
}
