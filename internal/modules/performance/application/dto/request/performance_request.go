package request

type CreatePerformanceRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	VenueID *int64 `json:"venue_id"`
	// 2006-01-02
	Date string `json:"date" binding:"required"`
	// 15:04 或 15:04:05
	Time           string  `json:"time"`
	TicketOpenDate *string `json:"ticket_open_date"`
	TicketOpenTime *string `json:"ticket_open_time"`
	Price          int     `json:"price" binding:"gte=0"`
	ImageURL       string  `json:"image_url" binding:"max=500"`
	DetailURL      string  `json:"detail_url" binding:"max=500"`
	ArtistIDs      []int64 `json:"artist_ids"`
}
