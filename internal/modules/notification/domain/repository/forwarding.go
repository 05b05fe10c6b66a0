package repository

import (
	"context"

	"Gigbell/internal/modules/notification/domain/entity"
)

// PushQueue 推送队列，入队即返回，投递至多一次
type PushQueue interface {
	Enqueue(ctx context.Context, msg entity.PushMessage) error
}

// Broadcaster 站内实时通知
type Broadcaster interface {
	Broadcast(ctx context.Context, n *entity.Notification) error
}

// PushSender 推送网关，不做重试
type PushSender interface {
	Send(ctx context.Context, msg entity.PushMessage) (entity.DeliveryResult, error)
}
