package persistence

import (
	"context"

	"Gigbell/internal/modules/notification/domain/repository"

	"gorm.io/gorm"
)

type notificationUnitOfWorkImpl struct {
	db *gorm.DB
}

func NewNotificationUnitOfWork(db *gorm.DB) repository.NotificationUnitOfWork {
	return &notificationUnitOfWorkImpl{db: db}
}

func (u *notificationUnitOfWorkImpl) Transaction(ctx context.Context, fn func(repo repository.NotificationRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewNotificationRepository(tx))
	})
}
