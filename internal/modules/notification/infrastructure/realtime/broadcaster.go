package realtime

import (
	"context"

	"Gigbell/internal/metrics"
	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/pkg/ws"
)

const FrameTypeNotification = "notification"

// Frame websocket 下发格式
type Frame struct {
	Type string               `json:"type"`
	Data *entity.Notification `json:"data"`
}

// LocalBroadcaster 只投递到本进程的连接
type LocalBroadcaster struct {
	hub *ws.Hub
}

func NewLocalBroadcaster(hub *ws.Hub) *LocalBroadcaster {
	return &LocalBroadcaster{hub: hub}
}

var _ repository.Broadcaster = (*LocalBroadcaster)(nil)

func (b *LocalBroadcaster) Broadcast(ctx context.Context, n *entity.Notification) error {
	ok, err := b.hub.SendJSON(n.UserID, Frame{Type: FrameTypeNotification, Data: n})
	if err != nil {
		return err
	}
	observeDelivery(ok)
	return nil
}

func (b *LocalBroadcaster) deliver(userID int64, frame []byte) {
	observeDelivery(b.hub.Send(userID, frame))
}

func observeDelivery(ok bool) {
	if ok {
		metrics.RealtimeDelivered.WithLabelValues("delivered").Inc()
		return
	}
	metrics.RealtimeDelivered.WithLabelValues("offline").Inc()
}
