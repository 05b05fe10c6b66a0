package service

import (
	"context"
	"testing"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, store *fakeStore, userID, perfID int64) *entity.Notification {
	t.Helper()
	n, err := entity.NewNotification(userID, entity.TicketOpenPayload{PerformanceID: perfID}, "t", "b", "")
	require.NoError(t, err)
	ok, err := store.InsertIfAbsent(context.Background(), n)
	require.NoError(t, err)
	require.True(t, ok)
	return n
}

func TestNotificationService_ListAndCount(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	for i := int64(1); i <= 3; i++ {
		seed(t, store, 1, i)
	}
	seed(t, store, 2, 1)

	svc := NewNotificationService(store, 2)
	items, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ID)

	cnt, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cnt.Count)

	_, err = svc.List(ctx, 0)
	assert.ErrorIs(t, err, xerr.ErrUnauthorized)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	n := seed(t, store, 1, 1)
	svc := NewNotificationService(store, 0)

	assert.ErrorIs(t, svc.MarkRead(ctx, 2, n.ID), xerr.ErrNotificationNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, 1, 999), xerr.ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(ctx, 1, n.ID))
	// 重复标记已读不报错
	require.NoError(t, svc.MarkRead(ctx, 1, n.ID))

	cnt, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, cnt.Count)
}

func TestNotificationService_Remove(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	n := seed(t, store, 1, 1)
	svc := NewNotificationService(store, 0)

	assert.ErrorIs(t, svc.Remove(ctx, 2, n.ID), xerr.ErrNotificationNotFound)
	require.NoError(t, svc.Remove(ctx, 1, n.ID))
	assert.ErrorIs(t, svc.Remove(ctx, 1, n.ID), xerr.ErrNotificationNotFound)
}
