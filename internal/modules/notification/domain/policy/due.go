package policy

import "time"

const (
	DefaultTimezone = "Asia/Seoul"
	DefaultLeadDays = 1
	DefaultDueHour  = 12
)

// DuePolicy 计算提醒的到期时刻：目标日期前 LeadDays 天的 DueHour 点（服务时区）
type DuePolicy struct {
	Location *time.Location
	LeadDays int
	DueHour  int
}

// LoadLocation 时区数据缺失时退化为固定 UTC+9
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

func New(timezone string, leadDays, dueHour int) DuePolicy {
	return DuePolicy{
		Location: LoadLocation(timezone),
		LeadDays: leadDays,
		DueHour:  dueHour,
	}
}

func Default() DuePolicy {
	return New(DefaultTimezone, DefaultLeadDays, DefaultDueHour)
}

// DueAt 只使用 date 的年月日
func (p DuePolicy) DueAt(date time.Time) time.Time {
	loc := p.Location
	if loc == nil {
		loc = LoadLocation(DefaultTimezone)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d-p.LeadDays, p.DueHour, 0, 0, 0, loc)
}

// IsDue 没有日期的永远不到期；比较的是时刻而不是墙上时间
func (p DuePolicy) IsDue(date *time.Time, now time.Time) bool {
	if date == nil || date.IsZero() {
		return false
	}
	return !now.Before(p.DueAt(*date))
}
