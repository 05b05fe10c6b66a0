package persistence

import (
	"context"
	"errors"

	"Gigbell/internal/modules/user/domain/entity"
	"Gigbell/internal/modules/user/domain/repository"

	"gorm.io/gorm"
)

// userRepositoryImpl 结构体
type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 构造函数
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	// First 查不到会返回 ErrRecordNotFound
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePushSettings 用 map 更新，alarm_enabled=false 和 push_token=NULL 也会写入
func (r *userRepositoryImpl) UpdatePushSettings(ctx context.Context, id int64, pushToken *string, alarmEnabled bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"push_token":    pushToken,
			"alarm_enabled": alarmEnabled,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
