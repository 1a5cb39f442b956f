package health

import (
	"time"

	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db      *gorm.DB
	started time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, started: time.Now()}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	status := "ok"
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = "degraded"
	}

	response.OK(c, gin.H{
		"status":   status,
		"database": err == nil,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}
