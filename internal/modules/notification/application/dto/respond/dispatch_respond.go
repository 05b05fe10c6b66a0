package respond

type DispatchRespond struct {
	CreatedTicketOpen int `json:"created_ticket_open"`
	CreatedFavoriteD1 int `json:"created_favorite_d1"`
}

type NotifyRespond struct {
	Created int    `json:"created"`
	Message string `json:"message,omitempty"`
}

type ReconcileRespond struct {
	ScannedPerformances  int `json:"scanned_performances"`
	CreatedNotifications int `json:"created_notifications"`
}
