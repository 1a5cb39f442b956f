package crontask

import (
	"github.com/cybaemtech/site-core/internal/pkg/cron"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the background scheduler for inspection and manual runs.
type Handler struct {
	scheduler *cron.Scheduler
}

func NewHandler(scheduler *cron.Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/cron", authMW)
	g.GET("", h.list)
	g.POST("/:name/run", h.run)
}

func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.scheduler.List())
}

func (h *Handler) run(c *gin.Context) {
	name := c.Param("name")
	if err := h.scheduler.Run(c.Request.Context(), name); err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.OKMessage(c, "Job "+name+" triggered")
}
