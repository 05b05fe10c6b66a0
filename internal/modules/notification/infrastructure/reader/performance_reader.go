package reader

import (
	"context"
	"errors"
	"time"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
	perfEntity "Gigbell/internal/modules/performance/domain/entity"

	"gorm.io/gorm"
)

type performanceReaderImpl struct {
	db *gorm.DB
}

func NewPerformanceReader(db *gorm.DB) repository.PerformanceReader {
	return &performanceReaderImpl{db: db}
}

func (r *performanceReaderImpl) GetPerformance(ctx context.Context, id int64) (*entity.PerformanceSnapshot, error) {
	var p perfEntity.Performance
	err := r.db.WithContext(ctx).
		Select("id, title, date, ticket_open_date, created_at").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.PerformanceSnapshot{
		ID:             p.ID,
		Title:          p.Title,
		Date:           p.DateValue(),
		TicketOpenDate: p.TicketOpenDateValue(),
		CreatedAt:      p.CreatedAt,
	}, nil
}

func (r *performanceReaderImpl) ListPerformanceIDsCreatedSince(ctx context.Context, since time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&perfEntity.Performance{}).
		Where("created_at >= ?", since).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *performanceReaderImpl) ListArtistIDs(ctx context.Context, performanceID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&perfEntity.PerformanceArtist{}).
		Where("performance_id = ?", performanceID).
		Order("artist_id").
		Pluck("artist_id", &ids).Error
	return ids, err
}
