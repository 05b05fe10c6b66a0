package persistence

import (
	"context"
	"errors"

	"Gigbell/internal/modules/performance/domain/entity"
	"Gigbell/internal/modules/performance/domain/repository"
	"Gigbell/pkg/util"

	"gorm.io/gorm"
)

type performanceRepositoryImpl struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) repository.PerformanceRepository {
	return &performanceRepositoryImpl{db: db}
}

func (r *performanceRepositoryImpl) Create(ctx context.Context, p *entity.Performance, artistIDs []int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(p).Error; err != nil {
		return err
	}
	ids := util.DedupInt64(artistIDs)
	if len(ids) == 0 {
		return nil
	}
	links := make([]entity.PerformanceArtist, 0, len(ids))
	for _, id := range ids {
		links = append(links, entity.PerformanceArtist{PerformanceID: p.ID, ArtistID: id})
	}
	return db.Create(&links).Error
}

func (r *performanceRepositoryImpl) GetByID(ctx context.Context, id int64) (*entity.Performance, error) {
	var p entity.Performance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *performanceRepositoryImpl) ListArtistIDs(ctx context.Context, performanceID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).Model(&entity.PerformanceArtist{}).
		Where("performance_id = ?", performanceID).
		Order("artist_id").
		Pluck("artist_id", &ids).Error
	return ids, err
}
