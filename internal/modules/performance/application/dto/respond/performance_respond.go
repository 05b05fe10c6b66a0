package respond

type PerformanceRespond struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	VenueID        *int64  `json:"venue_id,omitempty"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	TicketOpenDate *string `json:"ticket_open_date"`
	TicketOpenTime *string `json:"ticket_open_time"`
	Price          int     `json:"price"`
	ImageURL       string  `json:"image_url"`
	DetailURL      string  `json:"detail_url"`
	ArtistIDs      []int64 `json:"artist_ids"`
	CreatedAt      string  `json:"created_at"`
}
