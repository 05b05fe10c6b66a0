package repository

import (
	"context"

	"Gigbell/internal/modules/notification/domain/entity"
)

type NotificationRepository interface {
	// Exists 按 (user, type, payload) 判断是否已经发过
	Exists(ctx context.Context, userID int64, typ string, payloadKey string) (bool, error)
	// InsertIfAbsent 命中唯一索引时不报错，返回 false
	InsertIfAbsent(ctx context.Context, n *entity.Notification) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Notification, error)
	// GetByIDAndUser 不存在返回 nil, nil
	GetByIDAndUser(ctx context.Context, id int64, userID int64) (*entity.Notification, error)
	MarkRead(ctx context.Context, id int64, userID int64) error
	Delete(ctx context.Context, id int64, userID int64) (bool, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type NotificationUnitOfWork interface {
	Transaction(ctx context.Context, fn func(repo NotificationRepository) error) error
}
