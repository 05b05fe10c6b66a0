package queue

import (
	"context"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/internal/modules/notification/infrastructure/mq"
)

// KafkaPushQueue 推送消息写入 kafka，由 PushConsumer 消费
type KafkaPushQueue struct {
	publisher mq.Publisher
	topic     string
}

func NewKafkaPushQueue(publisher mq.Publisher, topic string) repository.PushQueue {
	return &KafkaPushQueue{publisher: publisher, topic: topic}
}

func (q *KafkaPushQueue) Enqueue(ctx context.Context, msg entity.PushMessage) error {
	m, err := EncodePushMessage(q.topic, msg)
	if err != nil {
		return err
	}
	_, err = q.publisher.Publish(ctx, m)
	return err
}
