package repository

import (
	"context"

	"Gigbell/internal/modules/performance/domain/entity"
)

type PerformanceRepository interface {
	// Create 写入演出和艺人关联，p.ID 回填
	Create(ctx context.Context, p *entity.Performance, artistIDs []int64) error
	// GetByID 不存在返回 nil, nil
	GetByID(ctx context.Context, id int64) (*entity.Performance, error)
	ListArtistIDs(ctx context.Context, performanceID int64) ([]int64, error)
}

type PerformanceUnitOfWork interface {
	Transaction(ctx context.Context, fn func(repo PerformanceRepository) error) error
}
