package activity

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
	g := rg.Group("/crm-activities", guardMW)
	g.GET("", h.list)
	g.POST("", h.create)
}

func (h *Handler) list(c *gin.Context) {
	leadID, ok := queryLeadID(c)
	if !ok {
		response.BadRequest(c, "lead_id is required")
		return
	}

	activities, err := h.svc.ListByLead(leadID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, activities)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateActivityDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.LeadID == 0 {
		response.BadRequest(c, "lead_id is required")
		return
	}
	if strings.TrimSpace(dto.ActivityType) == "" {
		response.BadRequest(c, "activity_type is required")
		return
	}

	row, err := h.svc.Create(&dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, row)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, errLeadNotFound) {
		response.NotFound(c, "Lead not found")
		return
	}
	response.InternalError(c, err)
}

func queryLeadID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Query("lead_id"))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
