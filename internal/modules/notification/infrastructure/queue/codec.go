package queue

import (
	"encoding/json"
	"errors"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/infrastructure/mq"
)

const headerKind = "kind"

const kindPush = "push"

func EncodePushMessage(topic string, msg entity.PushMessage) (mq.Message, error) {
	value, err := json.Marshal(msg)
	if err != nil {
		return mq.Message{}, err
	}
	return mq.Message{
		Topic:   topic,
		Key:     []byte(msg.Key()),
		Value:   value,
		Headers: map[string]string{headerKind: kindPush},
	}, nil
}

func DecodePushMessage(m mq.Message) (entity.PushMessage, error) {
	var msg entity.PushMessage
	if len(m.Value) == 0 {
		return msg, errors.New("empty push message")
	}
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return msg, err
	}
	if msg.To == "" {
		return msg, errors.New("push message has no recipient")
	}
	return msg, nil
}
