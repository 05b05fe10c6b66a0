package repository

import (
	"context"
	"time"

	"Gigbell/internal/modules/notification/domain/entity"
)

// EligibilityReader 读取订阅关系，只读
type EligibilityReader interface {
	ListTicketOpenAlarms(ctx context.Context) ([]entity.Edge, error)
	ListFavoritePerformances(ctx context.Context) ([]entity.Edge, error)
	// ListArtistFollowers 收藏或订阅了任一艺人的用户，去重
	ListArtistFollowers(ctx context.Context, artistIDs []int64) ([]int64, error)
}

type PerformanceReader interface {
	// GetPerformance 不存在返回 nil, nil
	GetPerformance(ctx context.Context, id int64) (*entity.PerformanceSnapshot, error)
	ListPerformanceIDsCreatedSince(ctx context.Context, since time.Time) ([]int64, error)
	ListArtistIDs(ctx context.Context, performanceID int64) ([]int64, error)
}

type RecipientReader interface {
	// ListPushTargets 过滤出打开推送且有 token 的用户
	ListPushTargets(ctx context.Context, userIDs []int64) ([]entity.PushTarget, error)
}
