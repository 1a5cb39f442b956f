package lead

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cybaemtech/site-core/internal/modules/notify"
	"github.com/cybaemtech/site-core/internal/pkg/pagination"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc      *Service
	notifier *notify.Service
}

func NewHandler(svc *Service, notifier *notify.Service) *Handler {
	return &Handler{svc: svc, notifier: notifier}
}

// RegisterRoutes mounts the unified lead resource. The legacy frontend still
// calls /crm-leads and /simple-leads, so those stay as aliases of /leads.
// POST is open (the public contact form submits here); everything else runs
// behind guardMW.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guardMW gin.HandlerFunc) {
	for _, path := range []string{"/leads", "/crm-leads", "/simple-leads"} {
		g := rg.Group(path)
		g.POST("", h.create)
		g.GET("", guardMW, h.list)
		g.PUT("", guardMW, h.update)
		g.DELETE("", guardMW, h.remove)
	}
	rg.POST("/leads/import", guardMW, h.importSheet)
}

func (h *Handler) list(c *gin.Context) {
	if id, ok := queryID(c); ok {
		lead, err := h.svc.Get(id)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.OK(c, lead)
		return
	}

	includeJunk, _ := strconv.ParseBool(c.DefaultQuery("include_junk", "false"))
	leads, page, err := h.svc.List(pagination.FromContext(c), ListFilter{
		Status:      strings.TrimSpace(c.Query("status")),
		Search:      strings.TrimSpace(c.Query("search")),
		IncludeJunk: includeJunk,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, leads, page)
}

func (h *Handler) create(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.svc.Create(ResolveFields(raw))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.notifier.Dispatch(notify.EventLeadCaptured, map[string]string{
		"Name": lead.FullName, "Email": lead.Email, "Company": lead.CompanyName,
	})
	response.Created(c, lead)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lead, err := h.svc.Update(id, ResolveFields(raw))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, lead)
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
	response.OKMessage(c, "Lead deleted")
}

func (h *Handler) importSheet(c *gin.Context) {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.URL) == "" {
		response.BadRequest(c, "A spreadsheet url is required")
		return
	}

	result, err := h.svc.ImportFromURL(c.Request.Context(), body.URL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var dup *DuplicateError
	switch {
	case errors.Is(err, errNotFound):
		response.NotFound(c, "Lead not found")
	case errors.Is(err, errMissingContact):
		response.BadRequest(c, "A name, email or phone is required")
	case errors.As(err, &dup):
		response.Conflict(c, dup.Error())
	default:
		response.InternalError(c, err)
	}
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
