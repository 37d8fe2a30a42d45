package repository

import "context"

// TransactionManager defines the interface for managing store transactions.
// This allows the use case layer to group writes without depending on GORM.
type TransactionManager interface {
	// Execute runs fn within a transaction.
	// If fn returns an error, the transaction is rolled back. Otherwise, it's committed.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	TaskRepo() TaskRepository
	SessionRepo() SessionRepository
}
