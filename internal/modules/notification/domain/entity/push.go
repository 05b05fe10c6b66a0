package entity

import "strconv"

// PushMessage 发往推送网关的一条消息
type PushMessage struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data"`
	Sound string                 `json:"sound,omitempty"`
}

// NewPushMessage 推送 data 带上通知 id、类型和跳转链接，客户端据此路由
func NewPushMessage(token string, n *Notification) PushMessage {
	data := map[string]interface{}{
		"notification_id": n.ID,
		"type":            n.Type,
	}
	if n.LinkURL != nil {
		data["link_url"] = *n.LinkURL
	}
	if n.PayloadJSON != nil {
		if pid, err := DecodePerformanceID(*n.PayloadJSON); err == nil && pid > 0 {
			data["performance_id"] = pid
		}
	}
	return PushMessage{
		To:    token,
		Title: n.Title,
		Body:  n.Body,
		Data:  data,
		Sound: "default",
	}
}

// Key 消息分区键，同一设备的推送落同一分区
func (m PushMessage) Key() string {
	if m.To != "" {
		return m.To
	}
	if v, ok := m.Data["notification_id"].(int64); ok {
		return strconv.FormatInt(v, 10)
	}
	return ""
}

const (
	DeliveryStatusOK    = "ok"
	DeliveryStatusError = "error"
)

// DeliveryResult 推送网关对单条消息的回执
type DeliveryResult struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}
