package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/service"
)

type LogsHandler struct{ svc service.ActivityService }

func NewLogsHandler(svc service.ActivityService) *LogsHandler {
	return &LogsHandler{svc: svc}
}

// Query GET /v1/logs
func (h *LogsHandler) Query(c *gin.Context) {
	var q dto.LogQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.Query(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
