package repository

import (
	"context"

	"Gigbell/internal/modules/alert/domain/entity"
)

// SubscriptionRepository 提醒和收藏共用，按行的表名落库
type SubscriptionRepository interface {
	// Create 已存在时返回 false
	Create(ctx context.Context, row entity.Subscription) (bool, error)
	// Delete 不存在时返回 false
	Delete(ctx context.Context, row entity.Subscription) (bool, error)
	PerformanceExists(ctx context.Context, performanceID int64) (bool, error)
}
