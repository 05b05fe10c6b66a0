package entity

import "time"

const (
	// 提醒类型
	AlertTypePerformance = "performance"
	AlertTypeTicketOpen  = "ticket_open"
	AlertTypeArtist      = "artist"
)

// UserPerformanceTicketAlarm 演出提醒（type=performance）
type UserPerformanceTicketAlarm struct {
	UserID        int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	PerformanceID int64     `gorm:"column:performance_id;primaryKey;autoIncrement:false;index"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (UserPerformanceTicketAlarm) TableName() string {
	return "user_performance_ticketalarm"
}

// UserPerformanceOpenAlarm 开票提醒（type=ticket_open），开票调度扫描这张表
type UserPerformanceOpenAlarm struct {
	UserID        int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	PerformanceID int64     `gorm:"column:performance_id;primaryKey;autoIncrement:false;index"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (UserPerformanceOpenAlarm) TableName() string {
	return "user_performance_open_alarm"
}

// UserArtistTicketAlarm 关注艺人的新演出提醒
type UserArtistTicketAlarm struct {
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	ArtistID  int64     `gorm:"column:artist_id;primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (UserArtistTicketAlarm) TableName() string {
	return "user_artist_ticketalarm"
}

type UserFavoritePerformance struct {
	UserID        int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	PerformanceID int64     `gorm:"column:performance_id;primaryKey;autoIncrement:false;index"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (UserFavoritePerformance) TableName() string {
	return "user_favorite_performance"
}

type UserFavoriteArtist struct {
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	ArtistID  int64     `gorm:"column:artist_id;primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (UserFavoriteArtist) TableName() string {
	return "user_favorite_artist"
}

// Models 供迁移使用
func Models() []interface{} {
	return []interface{}{
		&UserPerformanceTicketAlarm{},
		&UserPerformanceOpenAlarm{},
		&UserArtistTicketAlarm{},
		&UserFavoritePerformance{},
		&UserFavoriteArtist{},
	}
}

const (
	LikeTypePerformance = "performance"
	LikeTypeArtist      = "artist"
)

// Subscription 提醒/收藏关系行，主键 (user_id, ref_id)
type Subscription interface {
	TableName() string
}

// NewAlert 按提醒类型选表，未知类型返回 false
func NewAlert(alertType string, userID, refID int64, now time.Time) (Subscription, bool) {
	switch alertType {
	case AlertTypePerformance:
		return &UserPerformanceTicketAlarm{UserID: userID, PerformanceID: refID, CreatedAt: now}, true
	case AlertTypeTicketOpen:
		return &UserPerformanceOpenAlarm{UserID: userID, PerformanceID: refID, CreatedAt: now}, true
	case AlertTypeArtist:
		return &UserArtistTicketAlarm{UserID: userID, ArtistID: refID, CreatedAt: now}, true
	}
	return nil, false
}

func NewLike(likeType string, userID, refID int64, now time.Time) (Subscription, bool) {
	switch likeType {
	case LikeTypePerformance:
		return &UserFavoritePerformance{UserID: userID, PerformanceID: refID, CreatedAt: now}, true
	case LikeTypeArtist:
		return &UserFavoriteArtist{UserID: userID, ArtistID: refID, CreatedAt: now}, true
	}
	return nil, false
}

// RefersToPerformance ref_id 指向演出时需要校验演出存在
func RefersToPerformance(kind string) bool {
	return kind == AlertTypePerformance || kind == AlertTypeTicketOpen
}
