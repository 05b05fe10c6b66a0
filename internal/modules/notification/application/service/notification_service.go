package service

import (
	"context"
	"time"

	"Gigbell/internal/modules/notification/application/dto/respond"
	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/pkg/xerr"
	"Gigbell/pkg/zlog"

	"go.uber.org/zap"
)

const DefaultInboxLimit = 100

// NotificationService 用户收件箱
type NotificationService interface {
	List(ctx context.Context, userID int64) ([]respond.NotificationItem, error)
	MarkRead(ctx context.Context, userID int64, id int64) error
	Remove(ctx context.Context, userID int64, id int64) error
	UnreadCount(ctx context.Context, userID int64) (*respond.UnreadCountRespond, error)
}

type notificationServiceImpl struct {
	repo  repository.NotificationRepository
	limit int
}

func NewNotificationService(repo repository.NotificationRepository, limit int) NotificationService {
	if limit <= 0 {
		limit = DefaultInboxLimit
	}
	return &notificationServiceImpl{repo: repo, limit: limit}
}

func (s *notificationServiceImpl) List(ctx context.Context, userID int64) ([]respond.NotificationItem, error) {
	if userID <= 0 {
		return nil, xerr.ErrUnauthorized
	}
	list, err := s.repo.ListByUser(ctx, userID, s.limit)
	if err != nil {
		zlog.Error("list notifications failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	items := make([]respond.NotificationItem, 0, len(list))
	for i := range list {
		items = append(items, ToItem(&list[i]))
	}
	return items, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID int64, id int64) error {
	n, err := s.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		zlog.Error("get notification failed", zap.Int64("id", id), zap.Error(err))
		return xerr.ErrServerError
	}
	if n == nil {
		return xerr.ErrNotificationNotFound
	}
	if n.IsRead {
		return nil
	}
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		zlog.Error("mark notification read failed", zap.Int64("id", id), zap.Error(err))
		return xerr.ErrServerError
	}
	return nil
}

func (s *notificationServiceImpl) Remove(ctx context.Context, userID int64, id int64) error {
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		zlog.Error("delete notification failed", zap.Int64("id", id), zap.Error(err))
		return xerr.ErrServerError
	}
	if !ok {
		return xerr.ErrNotificationNotFound
	}
	return nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID int64) (*respond.UnreadCountRespond, error) {
	cnt, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		zlog.Error("count unread failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	return &respond.UnreadCountRespond{Count: cnt}, nil
}

// ToItem 收件箱和实时推送共用的输出字段
func ToItem(n *entity.Notification) respond.NotificationItem {
	return respond.NotificationItem{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Body:        n.Body,
		LinkURL:     n.LinkURL,
		PayloadJSON: n.PayloadJSON,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
}
