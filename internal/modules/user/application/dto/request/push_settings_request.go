package request

type PushSettingsRequest struct {
	// 空字符串视为注销设备
	PushToken    *string `json:"push_token" binding:"omitempty,max=255"`
	AlarmEnabled *bool   `json:"alarm_enabled" binding:"required"`
}
