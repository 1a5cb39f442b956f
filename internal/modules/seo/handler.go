package seo

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/seo-metatags")
	g.GET("", h.get)
	g.POST("", authMW, h.upsert)
	g.DELETE("", authMW, h.remove)
}

func (h *Handler) get(c *gin.Context) {
	blogID, ok := queryBlogID(c)
	if !ok {
		response.BadRequest(c, "blog_id is required")
		return
	}

	blog, seo, err := h.svc.Get(blogID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, Effective(seo, blog))
}

func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertSeoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.blogID() == 0 {
		response.BadRequest(c, "blog_post_id is required")
		return
	}

	row, err := h.svc.Upsert(&dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, row)
}

func (h *Handler) remove(c *gin.Context) {
	blogID, ok := queryBlogID(c)
	if !ok {
		response.BadRequest(c, "blog_id is required")
		return
	}
	if err := h.svc.Delete(blogID); err != nil {
		h.fail(c, err)
		return
	}
	response.OKMessage(c, "SEO metatags deleted")
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errBlogNotFound):
		response.NotFound(c, "Blog not found")
	case errors.Is(err, errSeoNotFound):
		response.NotFound(c, "SEO metatags not found")
	default:
		response.InternalError(c, err)
	}
}

func queryBlogID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Query("blog_id"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("blog_post_id"))
	}
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
