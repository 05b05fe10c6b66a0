package service

import (
	"context"
	"testing"

	"Gigbell/internal/modules/user/application/dto/request"
	"Gigbell/internal/modules/user/domain/entity"
	"Gigbell/internal/modules/user/infrastructure/persistence"
	"Gigbell/internal/testutil"
	"Gigbell/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func TestUpdatePushSettings(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, &entity.User{})
	require.NoError(t, db.Create(&entity.User{Nickname: "a"}).Error)
	svc := NewUserService(persistence.NewUserRepository(db))

	res, err := svc.UpdatePushSettings(ctx, 1, request.PushSettingsRequest{
		PushToken:    strPtr(" ExponentPushToken[abc] "),
		AlarmEnabled: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, res.PushToken)
	assert.Equal(t, "ExponentPushToken[abc]", *res.PushToken)

	var u entity.User
	require.NoError(t, db.First(&u, 1).Error)
	assert.True(t, u.CanReceivePush())

	// 关闭推送并注销 token
	_, err = svc.UpdatePushSettings(ctx, 1, request.PushSettingsRequest{PushToken: strPtr(""), AlarmEnabled: boolPtr(false)})
	require.NoError(t, err)
	got, err := svc.GetPushSettings(ctx, 1)
	require.NoError(t, err)
	assert.False(t, got.AlarmEnabled)
	assert.Nil(t, got.PushToken)
}

func TestPushSettings_UnknownUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, &entity.User{})
	svc := NewUserService(persistence.NewUserRepository(db))

	_, err := svc.GetPushSettings(ctx, 9)
	assert.Equal(t, xerr.ErrUserNotFound, err)

	_, err = svc.UpdatePushSettings(ctx, 9, request.PushSettingsRequest{AlarmEnabled: boolPtr(true)})
	assert.Equal(t, xerr.ErrUserNotFound, err)
}
