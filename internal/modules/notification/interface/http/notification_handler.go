package handler

import (
	"strconv"

	"Gigbell/internal/middleware/jwt"
	"Gigbell/internal/modules/notification/application/service"
	"Gigbell/pkg/back"
	"Gigbell/pkg/xerr"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	data, err := h.svc.List(c.Request.Context(), jwt.UserID(c))
	back.Result(c, data, err)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	data, err := h.svc.UnreadCount(c.Request.Context(), jwt.UserID(c))
	back.Result(c, data, err)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.svc.MarkRead(c.Request.Context(), jwt.UserID(c), id)
	back.Result(c, nil, err)
}

func (h *NotificationHandler) Remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.svc.Remove(c.Request.Context(), jwt.UserID(c), id)
	back.Result(c, nil, err)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return 0, false
	}
	return id, true
}
