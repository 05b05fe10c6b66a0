package entity

import "time"

// User 通知相关的用户字段；账号/OAuth 由外部系统维护
type User struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Nickname     string    `gorm:"column:nickname;type:varchar(50);not null;default:''" json:"nickname"`
	AlarmEnabled bool      `gorm:"column:alarm_enabled;not null;default:false" json:"alarm_enabled"`
	PushToken    *string   `gorm:"column:push_token;type:varchar(255)" json:"push_token,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

// CanReceivePush 打开了推送且登记过设备 token
func (u *User) CanReceivePush() bool {
	return u != nil && u.AlarmEnabled && u.PushToken != nil && *u.PushToken != ""
}
