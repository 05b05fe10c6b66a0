package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/infrastructure/mq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	n := &entity.Notification{ID: 9, Type: entity.TypeTicketOpen, Title: "t", Body: "b"}
	m, err := EncodePushMessage("topic", entity.NewPushMessage("tok", n))
	require.NoError(t, err)
	assert.Equal(t, "tok", string(m.Key))
	assert.Equal(t, kindPush, m.Headers[headerKind])

	msg, err := DecodePushMessage(m)
	require.NoError(t, err)
	assert.Equal(t, "tok", msg.To)
	assert.Equal(t, "t", msg.Title)

	_, err = DecodePushMessage(mq.Message{})
	assert.Error(t, err)
	_, err = DecodePushMessage(mq.Message{Value: []byte(`{"title":"x"}`)})
	assert.Error(t, err)
}

type recordingPublisher struct {
	msgs []mq.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, msg mq.Message) (mq.PublishResult, error) {
	p.msgs = append(p.msgs, msg)
	return mq.PublishResult{}, nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestKafkaPushQueue(t *testing.T) {
	pub := &recordingPublisher{}
	q := NewKafkaPushQueue(pub, "gigbell.push")
	require.NoError(t, q.Enqueue(context.Background(), entity.PushMessage{To: "tok"}))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "gigbell.push", pub.msgs[0].Topic)
}

func TestLocalPushQueue_Delivers(t *testing.T) {
	var mu sync.Mutex
	got := make([]string, 0)
	done := make(chan struct{}, 2)
	q := NewLocalPushQueue(mq.HandlerFunc(func(ctx context.Context, m mq.Message) error {
		msg, err := DecodePushMessage(m)
		require.NoError(t, err)
		mu.Lock()
		got = append(got, msg.To)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}), 4, 2, time.Second)
	q.Start()

	require.NoError(t, q.Enqueue(context.Background(), entity.PushMessage{To: "a"}))
	require.NoError(t, q.Enqueue(context.Background(), entity.PushMessage{To: "b"}))
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for delivery")
		}
	}
	q.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b"}, got)
	assert.ErrorIs(t, q.Enqueue(context.Background(), entity.PushMessage{To: "c"}), ErrQueueClosed)
}

func TestLocalPushQueue_FullDrops(t *testing.T) {
	// 不启动 worker，队列填满后直接返回错误
	q := NewLocalPushQueue(mq.HandlerFunc(func(ctx context.Context, m mq.Message) error { return nil }), 1, 1, time.Second)
	require.NoError(t, q.Enqueue(context.Background(), entity.PushMessage{To: "a"}))
	assert.ErrorIs(t, q.Enqueue(context.Background(), entity.PushMessage{To: "b"}), ErrQueueFull)
}
