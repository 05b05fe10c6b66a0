package service

import (
	"context"

	"Gigbell/internal/metrics"
	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/pkg/zlog"

	"go.uber.org/zap"
)

// Forwarder 通知入库之后的转发：站内实时 + 设备推送。
// 任何失败只记日志和指标，不影响调用方。
type Forwarder struct {
	recipients  repository.RecipientReader
	queue       repository.PushQueue
	broadcaster repository.Broadcaster
}

// NewForwarder 各依赖都可以为 nil，对应的转发直接跳过
func NewForwarder(recipients repository.RecipientReader, queue repository.PushQueue, broadcaster repository.Broadcaster) *Forwarder {
	return &Forwarder{recipients: recipients, queue: queue, broadcaster: broadcaster}
}

func (f *Forwarder) Forward(ctx context.Context, list []*entity.Notification) {
	if f == nil || len(list) == 0 {
		return
	}
	f.broadcast(ctx, list)
	f.push(ctx, list)
}

func (f *Forwarder) broadcast(ctx context.Context, list []*entity.Notification) {
	if f.broadcaster == nil {
		return
	}
	for _, n := range list {
		if err := f.broadcaster.Broadcast(ctx, n); err != nil {
			metrics.RealtimeDelivered.WithLabelValues("error").Inc()
			zlog.Warn("realtime broadcast failed", zap.Int64("notification_id", n.ID), zap.Error(err))
		}
	}
}

func (f *Forwarder) push(ctx context.Context, list []*entity.Notification) {
	if f.queue == nil || f.recipients == nil {
		return
	}

	userIDs := make([]int64, 0, len(list))
	seen := make(map[int64]struct{}, len(list))
	for _, n := range list {
		if _, ok := seen[n.UserID]; ok {
			continue
		}
		seen[n.UserID] = struct{}{}
		userIDs = append(userIDs, n.UserID)
	}

	targets, err := f.recipients.ListPushTargets(ctx, userIDs)
	if err != nil {
		metrics.PushFailures.WithLabelValues(metrics.StageLookup).Inc()
		zlog.Warn("load push targets failed", zap.Int("users", len(userIDs)), zap.Error(err))
		return
	}
	tokens := make(map[int64]string, len(targets))
	for _, t := range targets {
		tokens[t.UserID] = t.Token
	}

	for _, n := range list {
		token, ok := tokens[n.UserID]
		if !ok {
			continue
		}
		if err := f.queue.Enqueue(ctx, entity.NewPushMessage(token, n)); err != nil {
			metrics.PushFailures.WithLabelValues(metrics.StageEnqueue).Inc()
			zlog.Warn("enqueue push failed", zap.Int64("notification_id", n.ID), zap.Int64("user_id", n.UserID), zap.Error(err))
			continue
		}
		metrics.PushEnqueued.Inc()
	}
}
