package persistence

import (
	"context"
	"errors"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Exists(ctx context.Context, userID int64, typ string, payloadKey string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND type = ?", userID, typ)
	if payloadKey == "" {
		q = q.Where("payload_json IS NULL")
	} else {
		q = q.Where("payload_json = ?", payloadKey)
	}
	var cnt int64
	if err := q.Limit(1).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *notificationRepositoryImpl) InsertIfAbsent(ctx context.Context, n *entity.Notification) (bool, error) {
	// ON CONFLICT DO NOTHING：postgres 事务里撞唯一键不会把整个事务打成 aborted
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(n)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepositoryImpl) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Notification, error) {
	var list []entity.Notification
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepositoryImpl) GetByIDAndUser(ctx context.Context, id int64, userID int64) (*entity.Notification, error) {
	var n entity.Notification
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id int64, userID int64) error {
	return r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *notificationRepositoryImpl) Delete(ctx context.Context, id int64, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Notification{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&cnt).Error
	return cnt, err
}
