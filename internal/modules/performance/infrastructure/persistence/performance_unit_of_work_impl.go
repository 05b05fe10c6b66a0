package persistence

import (
	"context"

	"Gigbell/internal/modules/performance/domain/repository"

	"gorm.io/gorm"
)

type performanceUnitOfWorkImpl struct {
	db *gorm.DB
}

func NewPerformanceUnitOfWork(db *gorm.DB) repository.PerformanceUnitOfWork {
	return &performanceUnitOfWorkImpl{db: db}
}

func (u *performanceUnitOfWorkImpl) Transaction(ctx context.Context, fn func(repo repository.PerformanceRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPerformanceRepository(tx))
	})
}
