package contract

import "context"

// UnitOfWork is a short-lived transaction boundary handed out per request.
// Repositories obtained from it share the active transaction once Begin has
// been called.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() NoteRepository
	DialogueActivityRepository() DialogueActivityRepository
	AiConfigRepository() IAiConfigRepository
}

// RepositoryFactory hands out units of work bound to a request context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
