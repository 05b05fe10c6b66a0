package realtime

import (
	"context"
	"encoding/json"
	"errors"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/pkg/redis"
	"Gigbell/pkg/zlog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type envelope struct {
	UserID int64           `json:"user_id"`
	Frame  json.RawMessage `json:"frame"`
}

// RedisBroadcaster 多实例部署时经 redis 频道广播，每个实例把消息投给自己持有的连接
type RedisBroadcaster struct {
	channel string
	local   *LocalBroadcaster
}

func NewRedisBroadcaster(channel string, local *LocalBroadcaster) *RedisBroadcaster {
	return &RedisBroadcaster{channel: channel, local: local}
}

var _ repository.Broadcaster = (*RedisBroadcaster)(nil)

func (b *RedisBroadcaster) Broadcast(ctx context.Context, n *entity.Notification) error {
	frame, err := json.Marshal(Frame{Type: FrameTypeNotification, Data: n})
	if err != nil {
		return err
	}
	raw, err := json.Marshal(envelope{UserID: n.UserID, Frame: frame})
	if err != nil {
		return err
	}
	if _, err := redis.Publish(ctx, b.channel, raw); err != nil {
		// redis 不可用时至少投递本实例
		zlog.Warn("realtime publish failed, deliver locally", zap.String("channel", b.channel), zap.Error(err))
		b.local.deliver(n.UserID, frame)
	}
	return nil
}

// Run 订阅频道直到 ctx 结束
func (b *RedisBroadcaster) Run(ctx context.Context) error {
	ps, err := redis.Subscribe(ctx, b.channel)
	if err != nil {
		return err
	}
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return err
	}
	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return errors.New("realtime subscription closed")
			}
			b.handle(m)
		}
	}
}

func (b *RedisBroadcaster) handle(m *goredis.Message) {
	var env envelope
	if err := json.Unmarshal([]byte(m.Payload), &env); err != nil || env.UserID <= 0 {
		zlog.Warn("realtime invalid envelope", zap.String("channel", m.Channel))
		return
	}
	b.local.deliver(env.UserID, env.Frame)
}
