package handler

import (
	"time"

	"Gigbell/internal/modules/notification/application/dto/request"
	"Gigbell/internal/modules/notification/application/service"
	"Gigbell/pkg/back"
	"Gigbell/pkg/util"
	"Gigbell/pkg/xerr"
	"Gigbell/pkg/zlog"

	"github.com/gin-gonic/gin"
)

// AdminHandler 手动触发调度，供运维和测试使用
type AdminHandler struct {
	svc service.DispatchService
}

func NewAdminHandler(svc service.DispatchService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) DispatchDue(c *gin.Context) {
	var req request.DispatchDueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	var now *time.Time
	if req.Now != "" {
		t, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			back.Error(c, xerr.BadRequest, "invalid now, expect RFC3339")
			return
		}
		now = &t
	}
	data, err := h.svc.Dispatch(c.Request.Context(), now)
	back.RawResult(c, data, err)
}

func (h *AdminHandler) Reconcile(c *gin.Context) {
	var req request.ReconcileRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Reconcile(c.Request.Context(), req.Hours)
	back.RawResult(c, data, err)
}

func (h *AdminHandler) ForceNewPerformance(c *gin.Context) {
	var req request.ForceNewPerformanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	artistIDs, err := util.ParseInt64List(req.ArtistIDs)
	if err != nil {
		back.Error(c, xerr.BadRequest, "invalid artist_ids")
		return
	}
	data, err := h.svc.NotifyOnNewPerformance(c.Request.Context(), req.PerfID, artistIDs)
	back.RawResult(c, data, err)
}
