package unitofwork

import "context"

// RepositoryFactory hands out request-scoped units of work over a shared DB.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
