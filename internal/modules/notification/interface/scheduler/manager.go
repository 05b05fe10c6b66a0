package scheduler

import (
	"context"
	"fmt"
	"time"

	"Gigbell/internal/modules/notification/application/service"
	"Gigbell/pkg/zlog"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultDispatchSpec  = "@every 1m"
	DefaultReconcileSpec = "@hourly"
)

type Options struct {
	DispatchSpec   string
	ReconcileSpec  string
	ReconcileHours int
	// 单次任务超时，0 表示不限制
	Timeout time.Duration
}

// SchedulerManager 定时触发 Dispatch / Reconcile，同一任务上一轮未结束时跳过本轮
type SchedulerManager struct {
	cron           *cron.Cron
	svc            service.DispatchService
	reconcileHours int
	timeout        time.Duration
}

func NewSchedulerManager(svc service.DispatchService, opts Options) (*SchedulerManager, error) {
	if opts.DispatchSpec == "" {
		opts.DispatchSpec = DefaultDispatchSpec
	}
	if opts.ReconcileSpec == "" {
		opts.ReconcileSpec = DefaultReconcileSpec
	}
	logger := cronLogger{}
	m := &SchedulerManager{
		// 标准5段表达式（不含秒），也支持 @every/@hourly
		cron: cron.New(cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		svc:            svc,
		reconcileHours: opts.ReconcileHours,
		timeout:        opts.Timeout,
	}
	if _, err := m.cron.AddFunc(opts.DispatchSpec, m.runDispatch); err != nil {
		return nil, fmt.Errorf("schedule dispatch %q: %w", opts.DispatchSpec, err)
	}
	if _, err := m.cron.AddFunc(opts.ReconcileSpec, m.runReconcile); err != nil {
		return nil, fmt.Errorf("schedule reconcile %q: %w", opts.ReconcileSpec, err)
	}
	return m, nil
}

func (m *SchedulerManager) Start() {
	m.cron.Start()
	zlog.Info("notification scheduler started", zap.Int("entries", len(m.cron.Entries())))
}

// Stop 等待正在执行的任务结束或 ctx 超时
func (m *SchedulerManager) Stop(ctx context.Context) {
	done := m.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		zlog.Warn("notification scheduler stop timed out")
	}
}

func (m *SchedulerManager) jobContext() (context.Context, context.CancelFunc) {
	if m.timeout > 0 {
		return context.WithTimeout(context.Background(), m.timeout)
	}
	return context.WithCancel(context.Background())
}

func (m *SchedulerManager) runDispatch() {
	ctx, cancel := m.jobContext()
	defer cancel()
	res, err := m.svc.Dispatch(ctx, nil)
	if err != nil {
		zlog.Error("scheduled dispatch failed", zap.Error(err))
		return
	}
	if res.CreatedTicketOpen+res.CreatedFavoriteD1 > 0 {
		zlog.Info("scheduled dispatch",
			zap.Int("created_ticket_open", res.CreatedTicketOpen),
			zap.Int("created_favorite_d1", res.CreatedFavoriteD1))
	}
}

func (m *SchedulerManager) runReconcile() {
	ctx, cancel := m.jobContext()
	defer cancel()
	res, err := m.svc.Reconcile(ctx, m.reconcileHours)
	if err != nil {
		zlog.Error("scheduled reconcile failed", zap.Error(err))
		return
	}
	zlog.Info("scheduled reconcile",
		zap.Int("scanned_performances", res.ScannedPerformances),
		zap.Int("created_notifications", res.CreatedNotifications))
}

// cronLogger 把 cron 的内部日志转给 zlog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	zlog.L().Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zlog.L().Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
