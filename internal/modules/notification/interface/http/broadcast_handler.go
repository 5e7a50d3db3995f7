package http

import (
	"AeroComply/internal/modules/notification/application/dto/request"
	"AeroComply/internal/modules/notification/application/service"
	"AeroComply/pkg/back"
	"AeroComply/pkg/xerr"

	"github.com/gin-gonic/gin"
)

type BroadcastHandler struct {
	svc service.DeliveryService
}

func NewBroadcastHandler(svc service.DeliveryService) *BroadcastHandler {
	return &BroadcastHandler{svc: svc}
}

// Broadcast POST /realtime/broadcast
func (h *BroadcastHandler) Broadcast(c *gin.Context) {
	var req request.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Broadcast(c.Request.Context(), req)
	back.Result(c, data, err)
}

func (h *BroadcastHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/realtime/broadcast", h.Broadcast)
}
