package entity

import "time"

// Edge 用户与演出之间的一条订阅关系
type Edge struct {
	UserID        int64
	PerformanceID int64
}

// PerformanceSnapshot 调度只需要的演出字段
type PerformanceSnapshot struct {
	ID             int64
	Title          string
	Date           *time.Time
	TicketOpenDate *time.Time
	CreatedAt      time.Time
}

// PushTarget 可以接收推送的用户
type PushTarget struct {
	UserID int64
	Token  string
}
