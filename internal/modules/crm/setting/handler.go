package setting

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
	g := rg.Group("/crm-settings")
	g.GET("", h.list)
	g.POST("", guardMW, h.create)
	g.PUT("", guardMW, h.update)
	g.DELETE("", guardMW, h.remove)
}

func (h *Handler) list(c *gin.Context) {
	grouped, err := h.svc.List(strings.TrimSpace(c.Query("type")))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, grouped)
}

func (h *Handler) create(c *gin.Context) {
	var dto UpsertSettingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(dto.SettingType) == "" || strings.TrimSpace(dto.SettingValue) == "" {
		response.BadRequest(c, "setting_type and setting_value are required")
		return
	}

	row, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, row)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}
	var dto UpsertSettingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	row, err := h.svc.Update(id, &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, row)
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
	response.OKMessage(c, "Setting deactivated")
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, errNotFound) {
		response.NotFound(c, "Setting not found")
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
