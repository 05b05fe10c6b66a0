package persistence

import (
	"context"
	"testing"
	"time"

	"Gigbell/internal/modules/alert/domain/entity"
	perfEntity "Gigbell/internal/modules/performance/domain/entity"
	"Gigbell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSubscriptionRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, append(entity.Models(), &perfEntity.Performance{})...)
	repo := NewSubscriptionRepository(db)
	now := time.Now()

	row, ok := entity.NewAlert(entity.AlertTypeTicketOpen, 1, 10, now)
	require.True(t, ok)

	created, err := repo.Create(ctx, row)
	require.NoError(t, err)
	assert.True(t, created)

	again, _ := entity.NewAlert(entity.AlertTypeTicketOpen, 1, 10, now)
	created, err = repo.Create(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	var cnt int64
	require.NoError(t, db.Model(&entity.UserPerformanceOpenAlarm{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
	// 其他类型的表不受影响
	require.NoError(t, db.Model(&entity.UserPerformanceTicketAlarm{}).Count(&cnt).Error)
	assert.Equal(t, int64(0), cnt)

	del, _ := entity.NewAlert(entity.AlertTypeTicketOpen, 1, 10, time.Time{})
	deleted, err := repo.Delete(ctx, del)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, del)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSubscriptionRepository_DeleteOnlyMatchingRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, entity.Models()...)
	repo := NewSubscriptionRepository(db)

	require.NoError(t, db.Create([]entity.UserFavoriteArtist{{UserID: 1, ArtistID: 5}, {UserID: 2, ArtistID: 5}}).Error)

	row, _ := entity.NewLike(entity.LikeTypeArtist, 1, 5, time.Time{})
	deleted, err := repo.Delete(ctx, row)
	require.NoError(t, err)
	assert.True(t, deleted)

	var left []entity.UserFavoriteArtist
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, int64(2), left[0].UserID)
}

func TestSubscriptionRepository_PerformanceExists(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, &perfEntity.Performance{})
	repo := NewSubscriptionRepository(db)

	p := &perfEntity.Performance{Title: "p", Date: datatypes.Date(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))}
	require.NoError(t, db.Create(p).Error)

	ok, err := repo.PerformanceExists(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.PerformanceExists(ctx, p.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}
