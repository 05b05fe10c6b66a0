package repository

import (
	"context"

	"Gigbell/internal/modules/user/domain/entity"
)

// UserRepository 接口定义
type UserRepository interface {
	// GetByID 查不到返回 nil, nil
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// UpdatePushSettings 用户不存在时返回 false
	UpdatePushSettings(ctx context.Context, id int64, pushToken *string, alarmEnabled bool) (bool, error)
}
