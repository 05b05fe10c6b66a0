package service

import (
	"context"
	"strings"

	"Gigbell/internal/modules/user/application/dto/request"
	"Gigbell/internal/modules/user/application/dto/respond"
	"Gigbell/internal/modules/user/domain/repository"
	"Gigbell/pkg/xerr"
	"Gigbell/pkg/zlog"

	"go.uber.org/zap"
)

// UserService 推送设置；账号本身由外部系统维护
type UserService interface {
	GetPushSettings(ctx context.Context, userID int64) (*respond.PushSettingsRespond, error)
	UpdatePushSettings(ctx context.Context, userID int64, req request.PushSettingsRequest) (*respond.PushSettingsRespond, error)
}

type userServiceImpl struct {
	repo repository.UserRepository
}

// NewUserService 构造函数
func NewUserService(repo repository.UserRepository) UserService {
	return &userServiceImpl{repo: repo}
}

func (u *userServiceImpl) GetPushSettings(ctx context.Context, userID int64) (*respond.PushSettingsRespond, error) {
	user, err := u.repo.GetByID(ctx, userID)
	if err != nil {
		zlog.Error("get user failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	if user == nil {
		return nil, xerr.ErrUserNotFound
	}
	return &respond.PushSettingsRespond{
		UserID:       user.ID,
		PushToken:    user.PushToken,
		AlarmEnabled: user.AlarmEnabled,
	}, nil
}

func (u *userServiceImpl) UpdatePushSettings(ctx context.Context, userID int64, req request.PushSettingsRequest) (*respond.PushSettingsRespond, error) {
	var token *string
	if req.PushToken != nil {
		if t := strings.TrimSpace(*req.PushToken); t != "" {
			token = &t
		}
	}
	enabled := req.AlarmEnabled != nil && *req.AlarmEnabled

	ok, err := u.repo.UpdatePushSettings(ctx, userID, token, enabled)
	if err != nil {
		zlog.Error("update push settings failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	if !ok {
		return nil, xerr.ErrUserNotFound
	}
	return &respond.PushSettingsRespond{UserID: userID, PushToken: token, AlarmEnabled: enabled}, nil
}
