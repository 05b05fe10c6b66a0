package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	notifyRespond "Gigbell/internal/modules/notification/application/dto/respond"
	"Gigbell/internal/modules/performance/application/dto/request"
	"Gigbell/internal/modules/performance/application/dto/respond"
	"Gigbell/internal/modules/performance/domain/entity"
	"Gigbell/internal/modules/performance/domain/repository"
	"Gigbell/pkg/util"
	"Gigbell/pkg/xerr"
	"Gigbell/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// NewPerformanceNotifier 演出入库后通知关注艺人的用户
type NewPerformanceNotifier interface {
	NotifyOnNewPerformance(ctx context.Context, performanceID int64, artistIDs []int64) (*notifyRespond.NotifyRespond, error)
}

type PerformanceService interface {
	Create(ctx context.Context, req request.CreatePerformanceRequest) (*respond.PerformanceRespond, error)
	Get(ctx context.Context, id int64) (*respond.PerformanceRespond, error)
}

type performanceServiceImpl struct {
	uow      repository.PerformanceUnitOfWork
	repo     repository.PerformanceRepository
	notifier NewPerformanceNotifier
}

func NewPerformanceService(uow repository.PerformanceUnitOfWork, repo repository.PerformanceRepository, notifier NewPerformanceNotifier) PerformanceService {
	return &performanceServiceImpl{uow: uow, repo: repo, notifier: notifier}
}

func (s *performanceServiceImpl) Create(ctx context.Context, req request.CreatePerformanceRequest) (*respond.PerformanceRespond, error) {
	p, err := buildPerformance(req)
	if err != nil {
		zlog.Warn("invalid performance request", zap.Error(err))
		return nil, xerr.ErrParam
	}
	artistIDs := util.DedupInt64(req.ArtistIDs)

	err = s.uow.Transaction(ctx, func(repo repository.PerformanceRepository) error {
		return repo.Create(ctx, p, artistIDs)
	})
	if err != nil {
		zlog.Error("create performance failed", zap.Error(err))
		return nil, xerr.ErrServerError
	}

	// 通知失败不影响创建结果，漏发由 reconcile 补
	if s.notifier != nil && len(artistIDs) > 0 {
		res, err := s.notifier.NotifyOnNewPerformance(ctx, p.ID, artistIDs)
		if err != nil {
			zlog.Error("notify new performance failed", zap.Int64("performance_id", p.ID), zap.Error(err))
		} else {
			zlog.Info("notified new performance", zap.Int64("performance_id", p.ID), zap.Int("created", res.Created))
		}
	}
	return toRespond(p, artistIDs), nil
}

func (s *performanceServiceImpl) Get(ctx context.Context, id int64) (*respond.PerformanceRespond, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		zlog.Error("get performance failed", zap.Int64("id", id), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	if p == nil {
		return nil, xerr.ErrPerformanceNotFound
	}
	artistIDs, err := s.repo.ListArtistIDs(ctx, id)
	if err != nil {
		zlog.Error("list performance artists failed", zap.Int64("id", id), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	return toRespond(p, artistIDs), nil
}

func buildPerformance(req request.CreatePerformanceRequest) (*entity.Performance, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	p := &entity.Performance{
		Title:     strings.TrimSpace(req.Title),
		VenueID:   req.VenueID,
		Date:      datatypes.Date(date),
		Price:     req.Price,
		ImageURL:  req.ImageURL,
		DetailURL: req.DetailURL,
	}
	if p.Title == "" {
		return nil, fmt.Errorf("title is empty")
	}
	if req.Time != "" {
		if p.Time, err = parseClock(req.Time); err != nil {
			return nil, fmt.Errorf("time: %w", err)
		}
	}
	if req.TicketOpenDate != nil && *req.TicketOpenDate != "" {
		d, err := time.Parse(dateLayout, strings.TrimSpace(*req.TicketOpenDate))
		if err != nil {
			return nil, fmt.Errorf("ticket_open_date: %w", err)
		}
		od := datatypes.Date(d)
		p.TicketOpenDate = &od
	}
	if req.TicketOpenTime != nil && *req.TicketOpenTime != "" {
		t, err := parseClock(*req.TicketOpenTime)
		if err != nil {
			return nil, fmt.Errorf("ticket_open_time: %w", err)
		}
		p.TicketOpenTime = &t
	}
	return p, nil
}

// parseClock 接受 15:04 和 15:04:05
func parseClock(raw string) (datatypes.Time, error) {
	raw = strings.TrimSpace(raw)
	layout := "15:04:05"
	if strings.Count(raw, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return 0, err
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
}

func toRespond(p *entity.Performance, artistIDs []int64) *respond.PerformanceRespond {
	if artistIDs == nil {
		artistIDs = []int64{}
	}
	out := &respond.PerformanceRespond{
		ID:        p.ID,
		Title:     p.Title,
		VenueID:   p.VenueID,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		DetailURL: p.DetailURL,
		ArtistIDs: artistIDs,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if d := p.DateValue(); d != nil {
		out.Date = d.Format(dateLayout)
	}
	if p.Time != 0 {
		out.Time = p.Time.String()
	}
	if d := p.TicketOpenDateValue(); d != nil {
		s := d.Format(dateLayout)
		out.TicketOpenDate = &s
	}
	if p.TicketOpenTime != nil {
		s := p.TicketOpenTime.String()
		out.TicketOpenTime = &s
	}
	return out
}
