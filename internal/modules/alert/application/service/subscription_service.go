package service

import (
	"context"
	"strings"
	"time"

	"Gigbell/internal/modules/alert/application/dto/request"
	"Gigbell/internal/modules/alert/application/dto/respond"
	"Gigbell/internal/modules/alert/domain/entity"
	"Gigbell/internal/modules/alert/domain/repository"
	"Gigbell/pkg/xerr"
	"Gigbell/pkg/zlog"

	"go.uber.org/zap"
)

// SubscriptionService 提醒（alert）和收藏（like），调度器从这些表挑选接收人
type SubscriptionService interface {
	CreateAlert(ctx context.Context, userID int64, req request.TargetRequest) (*respond.MessageRespond, error)
	DeleteAlert(ctx context.Context, userID int64, alertType string, refID int64) (*respond.MessageRespond, error)
	Like(ctx context.Context, userID int64, req request.TargetRequest) (*respond.MessageRespond, error)
	Unlike(ctx context.Context, userID int64, likeType string, refID int64) (*respond.MessageRespond, error)
}

type subscriptionServiceImpl struct {
	repo repository.SubscriptionRepository
	now  func() time.Time
}

func NewSubscriptionService(repo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionServiceImpl{repo: repo, now: time.Now}
}

func (s *subscriptionServiceImpl) CreateAlert(ctx context.Context, userID int64, req request.TargetRequest) (*respond.MessageRespond, error) {
	row, ok := entity.NewAlert(req.Type, userID, req.RefID, s.now())
	if !ok {
		return nil, xerr.ErrInvalidAlertType
	}
	if err := s.ensurePerformance(ctx, req.Type, req.RefID); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		zlog.Error("create alert failed", zap.Int64("user_id", userID), zap.String("type", req.Type), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	if !created {
		return nil, xerr.ErrAlertAlreadySet
	}
	return message(req.Type, "alert set successfully"), nil
}

func (s *subscriptionServiceImpl) DeleteAlert(ctx context.Context, userID int64, alertType string, refID int64) (*respond.MessageRespond, error) {
	row, ok := entity.NewAlert(alertType, userID, refID, time.Time{})
	if !ok {
		return nil, xerr.ErrInvalidAlertType
	}
	deleted, err := s.repo.Delete(ctx, row)
	if err != nil {
		zlog.Error("delete alert failed", zap.Int64("user_id", userID), zap.String("type", alertType), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	if !deleted {
		return nil, xerr.ErrAlertNotFound
	}
	return message(alertType, "alert removed successfully"), nil
}

func (s *subscriptionServiceImpl) Like(ctx context.Context, userID int64, req request.TargetRequest) (*respond.MessageRespond, error) {
	row, ok := entity.NewLike(req.Type, userID, req.RefID, s.now())
	if !ok {
		return nil, xerr.ErrInvalidLikeType
	}
	if err := s.ensurePerformance(ctx, req.Type, req.RefID); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		zlog.Error("create like failed", zap.Int64("user_id", userID), zap.String("type", req.Type), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	if !created {
		return nil, xerr.ErrAlreadyLiked
	}
	return message(req.Type, "like set successfully"), nil
}

func (s *subscriptionServiceImpl) Unlike(ctx context.Context, userID int64, likeType string, refID int64) (*respond.MessageRespond, error) {
	row, ok := entity.NewLike(likeType, userID, refID, time.Time{})
	if !ok {
		return nil, xerr.ErrInvalidLikeType
	}
	deleted, err := s.repo.Delete(ctx, row)
	if err != nil {
		zlog.Error("delete like failed", zap.Int64("user_id", userID), zap.String("type", likeType), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	if !deleted {
		return nil, xerr.ErrLikeNotFound
	}
	return message(likeType, "like removed successfully"), nil
}

func (s *subscriptionServiceImpl) ensurePerformance(ctx context.Context, kind string, refID int64) error {
	if !entity.RefersToPerformance(kind) {
		return nil
	}
	ok, err := s.repo.PerformanceExists(ctx, refID)
	if err != nil {
		zlog.Error("check performance failed", zap.Int64("performance_id", refID), zap.Error(err))
		return xerr.ErrServerError
	}
	if !ok {
		return xerr.ErrPerformanceNotFound
	}
	return nil
}

// message 例如 "Performance alert set successfully"
func message(kind, suffix string) *respond.MessageRespond {
	name := kind
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return &respond.MessageRespond{Message: name + " " + suffix}
}
