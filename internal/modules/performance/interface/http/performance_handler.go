package handler

import (
	"strconv"

	"Gigbell/internal/modules/performance/application/dto/request"
	"Gigbell/internal/modules/performance/application/service"
	"Gigbell/pkg/back"
	"Gigbell/pkg/xerr"
	"Gigbell/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type PerformanceHandler struct {
	svc service.PerformanceService
}

func NewPerformanceHandler(svc service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{svc: svc}
}

func (h *PerformanceHandler) Create(c *gin.Context) {
	var req request.CreatePerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Create(c.Request.Context(), req)
	back.Result(c, data, err)
}

func (h *PerformanceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Get(c.Request.Context(), id)
	back.Result(c, data, err)
}
