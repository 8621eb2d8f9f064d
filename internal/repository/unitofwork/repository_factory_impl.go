package unitofwork

import (
	"context"

	"socratic-notes-be/internal/repository/contract"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) contract.RepositoryFactory {
	return &RepositoryFactoryImpl{
		db: db,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) contract.UnitOfWork {
	// UoW is short lived per request. The context is used when calling Begin().
	return NewUnitOfWork(f.db)
}
