package entity

import (
	"time"

	"gorm.io/datatypes"
)

type Performance struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title          string          `gorm:"column:title;type:varchar(200);not null" json:"title"`
	VenueID        *int64          `gorm:"column:venue_id;index" json:"venue_id,omitempty"`
	Date           datatypes.Date  `gorm:"column:date;not null" json:"date"`
	Time           datatypes.Time  `gorm:"column:time" json:"time"`
	TicketOpenDate *datatypes.Date `gorm:"column:ticket_open_date" json:"ticket_open_date,omitempty"`
	TicketOpenTime *datatypes.Time `gorm:"column:ticket_open_time" json:"ticket_open_time,omitempty"`
	Price          int             `gorm:"column:price;not null;default:0" json:"price"`
	ImageURL       string          `gorm:"column:image_url;type:varchar(500);not null;default:''" json:"image_url"`
	DetailURL      string          `gorm:"column:detail_url;type:varchar(500);not null;default:''" json:"detail_url"`
	CreatedAt      time.Time       `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Performance) TableName() string {
	return "performance"
}

// DateValue 演出日期；日期列只取年月日
func (p *Performance) DateValue() *time.Time {
	if p == nil {
		return nil
	}
	t := time.Time(p.Date)
	if t.IsZero() {
		return nil
	}
	return &t
}

// TicketOpenDateValue 未公布开票日期时返回 nil
func (p *Performance) TicketOpenDateValue() *time.Time {
	if p == nil || p.TicketOpenDate == nil {
		return nil
	}
	t := time.Time(*p.TicketOpenDate)
	if t.IsZero() {
		return nil
	}
	return &t
}

type PerformanceArtist struct {
	PerformanceID int64 `gorm:"column:performance_id;primaryKey;autoIncrement:false"`
	ArtistID      int64 `gorm:"column:artist_id;primaryKey;autoIncrement:false;index"`
}

func (PerformanceArtist) TableName() string {
	return "performance_artist"
}
