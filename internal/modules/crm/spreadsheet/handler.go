package spreadsheet

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guardMW gin.HandlerFunc) {
	g := rg.Group("/spreadsheet-configs", guardMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("", h.update)
	g.DELETE("", h.remove)
	g.POST("/:id/sync", h.sync)
}

func (h *Handler) list(c *gin.Context) {
	if id, ok := queryID(c); ok {
		config, err := h.svc.Get(id)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.OK(c, config)
		return
	}

	configs, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, configs)
}

func (h *Handler) create(c *gin.Context) {
	var dto UpsertConfigDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(dto.Name) == "" || strings.TrimSpace(dto.URL) == "" {
		response.BadRequest(c, "name and url are required")
		return
	}

	config, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, config)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}
	var dto UpsertConfigDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	config, err := h.svc.Update(id, &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, config)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}
	if err := h.svc.Delete(id); err != nil {
		h.fail(c, err)
		return
	}
	response.OKMessage(c, "Spreadsheet config deleted")
}

func (h *Handler) sync(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "id is required")
		return
	}

	result, err := h.svc.Sync(c.Request.Context(), uint(id))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, errNotFound) {
		response.NotFound(c, "Spreadsheet config not found")
		return
	}
	response.InternalError(c, err)
}

func queryID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
