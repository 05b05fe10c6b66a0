package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"Gigbell/internal/metrics"
	"Gigbell/internal/modules/notification/application/dto/respond"
	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/policy"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/pkg/util"
	"Gigbell/pkg/zlog"

	"go.uber.org/zap"
)

const DefaultReconcileHours = 24

const (
	jobDispatch  = "dispatch"
	jobReconcile = "reconcile"
	jobNotify    = "notify_new_performance"
)

const (
	MessageNoArtists           = "no artists"
	MessageNoFollowers         = "no followers"
	MessagePerformanceNotFound = "performance not found"
)

// DispatchService 调度类通知：开票提醒、D-1 提醒、艺人新演出
type DispatchService interface {
	// Dispatch now 为空时取当前时间
	Dispatch(ctx context.Context, now *time.Time) (*respond.DispatchRespond, error)
	NotifyOnNewPerformance(ctx context.Context, performanceID int64, artistIDs []int64) (*respond.NotifyRespond, error)
	// Reconcile 补发最近 sinceHours 小时内入库演出的新演出通知
	Reconcile(ctx context.Context, sinceHours int) (*respond.ReconcileRespond, error)
}

type DispatchOptions struct {
	Policy       policy.DuePolicy
	QueryTimeout time.Duration
	Now          func() time.Time
}

type dispatchServiceImpl struct {
	uow          repository.NotificationUnitOfWork
	eligibility  repository.EligibilityReader
	performances repository.PerformanceReader
	forwarder    *Forwarder
	policy       policy.DuePolicy
	queryTimeout time.Duration
	now          func() time.Time
}

func NewDispatchService(uow repository.NotificationUnitOfWork, eligibility repository.EligibilityReader, performances repository.PerformanceReader, forwarder *Forwarder, opts DispatchOptions) DispatchService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Policy.Location == nil {
		opts.Policy = policy.Default()
	}
	return &dispatchServiceImpl{
		uow:          uow,
		eligibility:  eligibility,
		performances: performances,
		forwarder:    forwarder,
		policy:       opts.Policy,
		queryTimeout: opts.QueryTimeout,
		now:          opts.Now,
	}
}

// scheduledKind 一类按日期触发的提醒
type scheduledKind struct {
	name    string
	payload func(performanceID int64) entity.Payload
	date    func(p *entity.PerformanceSnapshot) *time.Time
	title   string
	body    func(performanceTitle string) string
}

var ticketOpenKind = scheduledKind{
	name:    entity.TypeTicketOpen,
	payload: func(id int64) entity.Payload { return entity.TicketOpenPayload{PerformanceID: id} },
	date:    func(p *entity.PerformanceSnapshot) *time.Time { return p.TicketOpenDate },
	title:   "예매 오픈 알림",
	body:    func(t string) string { return fmt.Sprintf("『%s』 예매가 곧 열립니다.", t) },
}

var favoriteD1Kind = scheduledKind{
	name:    entity.TypeFavoritePerformanceD1,
	payload: func(id int64) entity.Payload { return entity.FavoriteD1Payload{PerformanceID: id} },
	date:    func(p *entity.PerformanceSnapshot) *time.Time { return p.Date },
	title:   "공연 D-1 알림",
	body:    func(t string) string { return fmt.Sprintf("『%s』 공연이 내일입니다.", t) },
}

const (
	newPerformanceTitle = "새 공연 소식"
	newPerformanceBody  = "『%s』 공연이 등록되었습니다."
)

func performanceLink(id int64) string {
	return "/performance/" + strconv.FormatInt(id, 10)
}

func (s *dispatchServiceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return context.WithCancel(ctx)
}

func observe(job string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.DispatchRuns.WithLabelValues(job, result).Inc()
	metrics.DispatchDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
}

func (s *dispatchServiceImpl) Dispatch(ctx context.Context, now *time.Time) (res *respond.DispatchRespond, err error) {
	start := time.Now()
	defer func() { observe(jobDispatch, start, err) }()

	at := s.now()
	if now != nil {
		at = *now
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cache := newPerformanceCache(s.performances)
	res = &respond.DispatchRespond{}

	res.CreatedTicketOpen, err = s.dispatchKind(ctx, cache, at, ticketOpenKind, s.eligibility.ListTicketOpenAlarms)
	if err != nil {
		return nil, err
	}
	res.CreatedFavoriteD1, err = s.dispatchKind(ctx, cache, at, favoriteD1Kind, s.eligibility.ListFavoritePerformances)
	if err != nil {
		return nil, err
	}

	zlog.Info("notification dispatch done",
		zap.Time("now", at),
		zap.Int("created_ticket_open", res.CreatedTicketOpen),
		zap.Int("created_favorite_d1", res.CreatedFavoriteD1))
	return res, nil
}

// dispatchKind 扫描 -> 判定到期 -> 单事务插入 -> 提交后转发
func (s *dispatchServiceImpl) dispatchKind(ctx context.Context, cache *performanceCache, now time.Time, kind scheduledKind, list func(context.Context) ([]entity.Edge, error)) (int, error) {
	edges, err := list(ctx)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", kind.name, err)
	}

	candidates := make([]*entity.Notification, 0)
	for _, e := range edges {
		perf, err := cache.get(ctx, e.PerformanceID)
		if err != nil {
			return 0, fmt.Errorf("load performance %d: %w", e.PerformanceID, err)
		}
		if perf == nil || !s.policy.IsDue(kind.date(perf), now) {
			continue
		}
		n, err := entity.NewNotification(e.UserID, kind.payload(perf.ID), kind.title, kind.body(perf.Title), performanceLink(perf.ID))
		if err != nil {
			return 0, err
		}
		candidates = append(candidates, n)
	}

	created, err := s.insertAll(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", kind.name, err)
	}
	s.forwarder.Forward(ctx, created)
	return len(created), nil
}

// insertAll 一个事务内完成；Exists 只是预过滤，真正的去重由唯一索引兜底
func (s *dispatchServiceImpl) insertAll(ctx context.Context, list []*entity.Notification) ([]*entity.Notification, error) {
	if len(list) == 0 {
		return nil, nil
	}
	var created []*entity.Notification
	err := s.uow.Transaction(ctx, func(repo repository.NotificationRepository) error {
		created = created[:0]
		for _, n := range list {
			exists, err := repo.Exists(ctx, n.UserID, n.Type, n.PayloadKey())
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			ok, err := repo.InsertIfAbsent(ctx, n)
			if err != nil {
				return err
			}
			if ok {
				created = append(created, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, n := range created {
		metrics.NotificationsCreated.WithLabelValues(n.Type).Inc()
	}
	return created, nil
}

func (s *dispatchServiceImpl) NotifyOnNewPerformance(ctx context.Context, performanceID int64, artistIDs []int64) (res *respond.NotifyRespond, err error) {
	start := time.Now()
	defer func() { observe(jobNotify, start, err) }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.notifyNewPerformance(ctx, performanceID, artistIDs)
}

func (s *dispatchServiceImpl) notifyNewPerformance(ctx context.Context, performanceID int64, artistIDs []int64) (*respond.NotifyRespond, error) {
	artistIDs = util.DedupInt64(artistIDs)
	if len(artistIDs) == 0 {
		return &respond.NotifyRespond{Created: 0, Message: MessageNoArtists}, nil
	}

	followers, err := s.eligibility.ListArtistFollowers(ctx, artistIDs)
	if err != nil {
		return nil, fmt.Errorf("list artist followers: %w", err)
	}
	if len(followers) == 0 {
		return &respond.NotifyRespond{Created: 0, Message: MessageNoFollowers}, nil
	}

	perf, err := s.performances.GetPerformance(ctx, performanceID)
	if err != nil {
		return nil, fmt.Errorf("load performance %d: %w", performanceID, err)
	}
	if perf == nil {
		return &respond.NotifyRespond{Created: 0, Message: MessagePerformanceNotFound}, nil
	}

	candidates := make([]*entity.Notification, 0, len(followers))
	for _, uid := range followers {
		n, err := entity.NewNotification(uid, entity.NewPerformancePayload{PerformanceID: perf.ID},
			newPerformanceTitle, fmt.Sprintf(newPerformanceBody, perf.Title), performanceLink(perf.ID))
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, n)
	}

	created, err := s.insertAll(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", entity.TypeNewPerformanceByArtist, err)
	}
	s.forwarder.Forward(ctx, created)
	return &respond.NotifyRespond{Created: len(created)}, nil
}

func (s *dispatchServiceImpl) Reconcile(ctx context.Context, sinceHours int) (res *respond.ReconcileRespond, err error) {
	start := time.Now()
	defer func() { observe(jobReconcile, start, err) }()

	if sinceHours <= 0 {
		sinceHours = DefaultReconcileHours
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	since := s.now().Add(-time.Duration(sinceHours) * time.Hour)
	ids, err := s.performances.ListPerformanceIDsCreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list recent performances: %w", err)
	}

	res = &respond.ReconcileRespond{ScannedPerformances: len(ids)}
	for _, id := range ids {
		artistIDs, err := s.performances.ListArtistIDs(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list artists of performance %d: %w", id, err)
		}
		r, err := s.notifyNewPerformance(ctx, id, artistIDs)
		if err != nil {
			return nil, err
		}
		res.CreatedNotifications += r.Created
	}

	zlog.Info("new performance reconcile done",
		zap.Int("since_hours", sinceHours),
		zap.Int("scanned_performances", res.ScannedPerformances),
		zap.Int("created_notifications", res.CreatedNotifications))
	return res, nil
}

// performanceCache 单次运行内的演出缓存，未找到也缓存
type performanceCache struct {
	reader repository.PerformanceReader
	items  map[int64]*entity.PerformanceSnapshot
}

func newPerformanceCache(reader repository.PerformanceReader) *performanceCache {
	return &performanceCache{reader: reader, items: make(map[int64]*entity.PerformanceSnapshot)}
}

func (c *performanceCache) get(ctx context.Context, id int64) (*entity.PerformanceSnapshot, error) {
	if p, ok := c.items[id]; ok {
		return p, nil
	}
	p, err := c.reader.GetPerformance(ctx, id)
	if err != nil {
		return nil, err
	}
	c.items[id] = p
	return p, nil
}
