package application

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/job-application", h.submit)

	g := rg.Group("/job-applications", authMW)
	g.GET("", h.list)
	g.PUT("", h.updateStatus)
	g.DELETE("", h.remove)
}

func (h *Handler) submit(c *gin.Context) {
	dto := SubmitDTO{
		JobID:     strings.TrimSpace(c.PostForm("job_id")),
		JobTitle:  strings.TrimSpace(c.PostForm("job_title")),
		FullName:  strings.TrimSpace(c.PostForm("full_name")),
		Email:     strings.TrimSpace(c.PostForm("email")),
		Phone:     strings.TrimSpace(c.PostForm("phone")),
		CoverNote: strings.TrimSpace(c.PostForm("cover_note")),
		SourceURL: strings.TrimSpace(c.PostForm("source_url")),
	}
	if dto.FullName == "" || dto.Email == "" {
		response.BadRequest(c, "full_name and email are required")
		return
	}

	resume, err := c.FormFile("resume")
	if err != nil {
		response.BadRequest(c, "A resume file is required")
		return
	}

	app, err := h.svc.Submit(&dto, resume)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.notifier.Dispatch(notify.EventApplicationReceived, map[string]string{
		"Name": app.FullName, "Email": app.Email, "Position": app.JobTitle,
		"Resume": app.ResumeName,
	})
	response.Created(c, app)
}

func (h *Handler) list(c *gin.Context) {
	if id, ok := queryID(c); ok {
		app, err := h.svc.Get(id)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.OK(c, app)
		return
	}

	apps, page, err := h.svc.List(pagination.FromContext(c), strings.TrimSpace(c.Query("status")))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, apps, page)
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Status) == "" {
		response.BadRequest(c, "status is required")
		return
	}

	app, err := h.svc.UpdateStatus(id, strings.TrimSpace(body.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, app)
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
	response.OKMessage(c, "Application deleted")
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequestCode(c, verr.Code, verr.Message)
	case errors.Is(err, errNotFound):
		response.NotFound(c, "Application not found")
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
