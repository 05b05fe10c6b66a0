package event

import (
	"context"
	"errors"

	"Gigbell/internal/metrics"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/internal/modules/notification/infrastructure/mq"
	"Gigbell/internal/modules/notification/infrastructure/queue"
	"Gigbell/pkg/zlog"

	"go.uber.org/zap"
)

// PushConsumer 从推送队列取消息发给推送网关。
// 至多一次：失败只记日志，不重试。
type PushConsumer struct {
	consumer mq.Consumer
	sender   repository.PushSender
}

func NewPushConsumer(consumer mq.Consumer, sender repository.PushSender) *PushConsumer {
	return &PushConsumer{consumer: consumer, sender: sender}
}

func (c *PushConsumer) Run(ctx context.Context) error {
	if c == nil || c.consumer == nil {
		return errors.New("consumer is nil")
	}
	if c.sender == nil {
		return errors.New("push sender is nil")
	}
	return c.consumer.Run(ctx, c)
}

func (c *PushConsumer) Handle(ctx context.Context, m mq.Message) error {
	msg, err := queue.DecodePushMessage(m)
	if err != nil {
		metrics.PushFailures.WithLabelValues(metrics.StageDecode).Inc()
		zlog.Warn("push consumer invalid message", zap.String("topic", m.Topic), zap.Error(err))
		return nil
	}

	res, err := c.sender.Send(ctx, msg)
	if err != nil {
		zlog.Warn("push delivery failed",
			zap.Any("notification_id", msg.Data["notification_id"]),
			zap.String("status", res.Status),
			zap.Error(err))
		return nil
	}
	zlog.Debug("push delivered", zap.Any("notification_id", msg.Data["notification_id"]), zap.String("ticket", res.ID))
	return nil
}
