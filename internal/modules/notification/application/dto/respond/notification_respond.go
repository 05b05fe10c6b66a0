package respond

type NotificationItem struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	LinkURL     *string `json:"link_url"`
	PayloadJSON *string `json:"payload_json"`
	IsRead      bool    `json:"is_read"`
	CreatedAt   string  `json:"created_at"`
}

type UnreadCountRespond struct {
	Count int64 `json:"count"`
}
