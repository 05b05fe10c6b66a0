package persistence

import (
	"context"
	"errors"

	"Gigbell/internal/modules/alert/domain/entity"
	"Gigbell/internal/modules/alert/domain/repository"
	perfEntity "Gigbell/internal/modules/performance/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepositoryImpl{db: db}
}

func (r *subscriptionRepositoryImpl) Create(ctx context.Context, row entity.Subscription) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete 复合主键从 row 上取值
func (r *subscriptionRepositoryImpl) Delete(ctx context.Context, row entity.Subscription) (bool, error) {
	res := r.db.WithContext(ctx).Delete(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepositoryImpl) PerformanceExists(ctx context.Context, performanceID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&perfEntity.Performance{}).
		Where("id = ?", performanceID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
