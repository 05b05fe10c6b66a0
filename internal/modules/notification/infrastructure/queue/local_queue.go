package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/infrastructure/mq"
	"Gigbell/pkg/zlog"

	"go.uber.org/zap"
)

var (
	ErrQueueFull   = errors.New("push queue is full")
	ErrQueueClosed = errors.New("push queue is closed")
)

const localTopic = "local.push"

// LocalPushQueue 没有 kafka 时的进程内队列。入队不阻塞，满了直接丢弃；
// 投递与请求生命周期脱钩，每条消息单独超时。
type LocalPushQueue struct {
	handler mq.Handler
	ch      chan mq.Message
	workers int
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewLocalPushQueue(handler mq.Handler, size, workers int, timeout time.Duration) *LocalPushQueue {
	if size <= 0 {
		size = 256
	}
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &LocalPushQueue{
		handler: handler,
		ch:      make(chan mq.Message, size),
		workers: workers,
		timeout: timeout,
	}
}

func (q *LocalPushQueue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.loop()
	}
}

func (q *LocalPushQueue) loop() {
	defer q.wg.Done()
	for m := range q.ch {
		q.handle(m)
	}
}

func (q *LocalPushQueue) handle(m mq.Message) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Error("local push queue panic", zap.Any("panic", r))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	if err := q.handler.Handle(ctx, m); err != nil {
		zlog.Warn("local push delivery failed", zap.Error(err))
	}
}

func (q *LocalPushQueue) Enqueue(ctx context.Context, msg entity.PushMessage) error {
	m, err := EncodePushMessage(localTopic, msg)
	if err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- m:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop 停止接收新消息，等待已入队的消息处理完
func (q *LocalPushQueue) Stop() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()
	q.wg.Wait()
}
