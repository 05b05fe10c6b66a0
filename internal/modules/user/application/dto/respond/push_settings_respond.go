package respond

type PushSettingsRespond struct {
	UserID       int64   `json:"user_id"`
	PushToken    *string `json:"push_token"`
	AlarmEnabled bool    `json:"alarm_enabled"`
}
