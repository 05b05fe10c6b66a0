package request

// TargetRequest 提醒和收藏共用
type TargetRequest struct {
	Type  string `json:"type" binding:"required"`
	RefID int64  `json:"refId" binding:"required,gt=0"`
}

type TargetQuery struct {
	Type string `form:"type" binding:"required"`
}
