package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxPayloadLen payload_json 列宽
const MaxPayloadLen = 64

var ErrPayloadTooLong = errors.New("notification payload exceeds column width")

// Payload 通知的结构化载荷。每种通知类型一个具体类型，
// 序列化只走 EncodePayload，保证同一语义只有一种字节表示。
type Payload interface {
	NotificationType() string
	isPayload()
}

type TicketOpenPayload struct {
	PerformanceID int64 `json:"performance_id"`
}

type FavoriteD1Payload struct {
	PerformanceID int64 `json:"performance_id"`
}

type NewPerformancePayload struct {
	PerformanceID int64 `json:"performance_id"`
}

// GenericPayload 评论/回复等非调度类通知
type GenericPayload struct {
	Type   string
	Fields map[string]interface{}
}

func (TicketOpenPayload) NotificationType() string     { return TypeTicketOpen }
func (FavoriteD1Payload) NotificationType() string     { return TypeFavoritePerformanceD1 }
func (NewPerformancePayload) NotificationType() string { return TypeNewPerformanceByArtist }
func (p GenericPayload) NotificationType() string      { return p.Type }

func (TicketOpenPayload) isPayload()     {}
func (FavoriteD1Payload) isPayload()     {}
func (NewPerformancePayload) isPayload() {}
func (GenericPayload) isPayload()        {}

// EncodePayload 紧凑 JSON，结构体按字段顺序、map 按 key 排序输出
func EncodePayload(p Payload) (string, error) {
	if p == nil {
		return "", errors.New("payload is nil")
	}
	var (
		raw []byte
		err error
	)
	switch v := p.(type) {
	case GenericPayload:
		if len(v.Fields) == 0 {
			return "", nil
		}
		raw, err = json.Marshal(v.Fields)
	default:
		raw, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	if len(raw) > MaxPayloadLen {
		return "", ErrPayloadTooLong
	}
	return string(raw), nil
}

// DecodePerformanceID 从调度类通知的 payload 里取演出 id
func DecodePerformanceID(payloadJSON string) (int64, error) {
	var v struct {
		PerformanceID int64 `json:"performance_id"`
	}
	if err := json.Unmarshal([]byte(payloadJSON), &v); err != nil {
		return 0, err
	}
	return v.PerformanceID, nil
}

// NewNotification 按 payload 构造一条未读通知
func NewNotification(userID int64, p Payload, title, body, link string) (*Notification, error) {
	key, err := EncodePayload(p)
	if err != nil {
		return nil, err
	}
	n := &Notification{
		UserID: userID,
		Type:   p.NotificationType(),
		Title:  title,
		Body:   body,
	}
	if link != "" {
		n.LinkURL = &link
	}
	if key != "" {
		n.PayloadJSON = &key
	}
	return n, nil
}
