package handler

import (
	"strconv"

	"Gigbell/internal/middleware/jwt"
	"Gigbell/internal/modules/alert/application/dto/request"
	"Gigbell/internal/modules/alert/application/service"
	"Gigbell/pkg/back"
	"Gigbell/pkg/xerr"
	"Gigbell/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	svc service.SubscriptionService
}

func NewSubscriptionHandler(svc service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

func (h *SubscriptionHandler) CreateAlert(c *gin.Context) {
	var req request.TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.CreateAlert(c.Request.Context(), jwt.UserID(c), req)
	back.Result(c, data, err)
}

func (h *SubscriptionHandler) DeleteAlert(c *gin.Context) {
	refID, q, ok := bindTarget(c)
	if !ok {
		return
	}
	data, err := h.svc.DeleteAlert(c.Request.Context(), jwt.UserID(c), q.Type, refID)
	back.Result(c, data, err)
}

func (h *SubscriptionHandler) Like(c *gin.Context) {
	var req request.TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Like(c.Request.Context(), jwt.UserID(c), req)
	back.Result(c, data, err)
}

func (h *SubscriptionHandler) Unlike(c *gin.Context) {
	refID, q, ok := bindTarget(c)
	if !ok {
		return
	}
	data, err := h.svc.Unlike(c.Request.Context(), jwt.UserID(c), q.Type, refID)
	back.Result(c, data, err)
}

func bindTarget(c *gin.Context) (int64, request.TargetQuery, bool) {
	var q request.TargetQuery
	refID, err := strconv.ParseInt(c.Param("ref_id"), 10, 64)
	if err != nil || refID <= 0 {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return 0, q, false
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return 0, q, false
	}
	return refID, q, true
}
