package entity

import "time"

const (
	TypeNewPerformanceByArtist = "new_performance_by_artist"
	TypeTicketOpen             = "ticket_open"
	TypeFavoritePerformanceD1  = "favorite_performance_d1"
	TypeComment                = "COMMENT"
	TypeReply                  = "REPLY"
)

// Notification 站内通知；(user_id, type, payload_json) 唯一，用于去重
type Notification struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:uq_notification_user_type_payload,priority:1;index:ix_notification_user_created,priority:1" json:"user_id"`
	Type        string    `gorm:"column:type;type:varchar(32);not null;uniqueIndex:uq_notification_user_type_payload,priority:2" json:"type"`
	Title       string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Body        string    `gorm:"column:body;type:text;not null" json:"body"`
	LinkURL     *string   `gorm:"column:link_url;type:varchar(300)" json:"link_url"`
	PayloadJSON *string   `gorm:"column:payload_json;type:varchar(64);uniqueIndex:uq_notification_user_type_payload,priority:3" json:"payload_json"`
	IsRead      bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index:ix_notification_user_created,priority:2" json:"created_at"`
}

func (Notification) TableName() string {
	return "notification"
}

// PayloadKey 去重键，没有 payload 时为空串
func (n *Notification) PayloadKey() string {
	if n == nil || n.PayloadJSON == nil {
		return ""
	}
	return *n.PayloadJSON
}
