package reader

import (
	"context"
	"sort"

	alertEntity "Gigbell/internal/modules/alert/domain/entity"
	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"

	"gorm.io/gorm"
)

type eligibilityReaderImpl struct {
	db *gorm.DB
}

func NewEligibilityReader(db *gorm.DB) repository.EligibilityReader {
	return &eligibilityReaderImpl{db: db}
}

func (r *eligibilityReaderImpl) ListTicketOpenAlarms(ctx context.Context) ([]entity.Edge, error) {
	var edges []entity.Edge
	err := r.db.WithContext(ctx).Model(&alertEntity.UserPerformanceOpenAlarm{}).
		Select("user_id, performance_id").
		Order("performance_id, user_id").
		Scan(&edges).Error
	return edges, err
}

func (r *eligibilityReaderImpl) ListFavoritePerformances(ctx context.Context) ([]entity.Edge, error) {
	var edges []entity.Edge
	err := r.db.WithContext(ctx).Model(&alertEntity.UserFavoritePerformance{}).
		Select("user_id, performance_id").
		Order("performance_id, user_id").
		Scan(&edges).Error
	return edges, err
}

func (r *eligibilityReaderImpl) ListArtistFollowers(ctx context.Context, artistIDs []int64) ([]int64, error) {
	if len(artistIDs) == 0 {
		return []int64{}, nil
	}
	var favorites, alarms []int64
	if err := r.db.WithContext(ctx).Model(&alertEntity.UserFavoriteArtist{}).
		Where("artist_id IN ?", artistIDs).
		Distinct().Pluck("user_id", &favorites).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&alertEntity.UserArtistTicketAlarm{}).
		Where("artist_id IN ?", artistIDs).
		Distinct().Pluck("user_id", &alarms).Error; err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(favorites)+len(alarms))
	out := make([]int64, 0, len(favorites)+len(alarms))
	for _, ids := range [][]int64{favorites, alarms} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
