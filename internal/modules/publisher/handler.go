package publisher

import (
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/blog-admin", authMW)
	g.POST("/regenerate-all", h.regenerateAll)
	g.GET("/files", h.listFiles)
	g.DELETE("/files", h.clearFiles)
}

func (h *Handler) regenerateAll(c *gin.Context) {
	result, err := h.svc.GenerateAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) listFiles(c *gin.Context) {
	files, err := h.svc.ListFiles()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"files": files, "count": len(files)})
}

func (h *Handler) clearFiles(c *gin.Context) {
	removed, err := h.svc.ClearFiles()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"removed": removed})
}
