package request

type DispatchDueRequest struct {
	// RFC3339，留空用当前时间
	Now string `form:"now"`
}

type ReconcileRequest struct {
	Hours int `form:"hours"`
}

type ForceNewPerformanceRequest struct {
	PerfID    int64  `form:"perf_id" binding:"required"`
	ArtistIDs string `form:"artist_ids"`
}
