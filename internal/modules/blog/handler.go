package blog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/modules/notify"
	"github.com/cybaemtech/site-core/internal/pkg/pagination"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StaticPublisher regenerates/deletes the pre-rendered HTML for posts.
// Implemented by the publisher module.
type StaticPublisher interface {
	GenerateBlogHTML(id uint) error
	DeleteBlogHTML(slug string) error
}

type Handler struct {
	svc       *Service
	publisher StaticPublisher
	notifier  *notify.Service
	log       *zap.Logger
}

func NewHandler(svc *Service, publisher StaticPublisher, notifier *notify.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, publisher: publisher, notifier: notifier, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	admin := rg.Group("/blogs", authMW)
	admin.GET("", h.list)
	admin.POST("", h.create)
	admin.PUT("", h.update)
	admin.DELETE("", h.remove)

	pub := rg.Group("/public-blogs")
	pub.GET("", h.publicList)
}

func (h *Handler) list(c *gin.Context) {
	if id, ok := queryID(c); ok {
		post, err := h.svc.Get(id)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.OK(c, post)
		return
	}

	posts, page, err := h.svc.List(pagination.FromContext(c), ListFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, page)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateBlogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(dto.Title) == "" {
		response.BadRequest(c, "Title is required")
		return
	}

	post, err := h.svc.Create(&dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.afterMutation(post, notify.EventBlogCreated)
	response.Created(c, post)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}
	var dto UpdateBlogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.svc.Update(id, &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.afterMutation(post, notify.EventBlogUpdated)
	response.OK(c, post)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}

	post, err := h.svc.Delete(id)
	if err != nil {
		h.fail(c, err)
		return
	}

	// the row is gone, so cleanup works off the slug captured by Delete
	go func() {
		if err := h.publisher.DeleteBlogHTML(post.Slug); err != nil {
			h.log.Warn("static cleanup failed", zap.String("slug", post.Slug), zap.Error(err))
		}
	}()
	h.notifier.Dispatch(notify.EventBlogDeleted, map[string]string{
		"Title": post.Title, "Slug": post.Slug,
	})
	response.OKMessage(c, "Blog deleted")
}

// publicList serves published posts. ?slug= selects one; action=view also
// increments the view counter.
func (h *Handler) publicList(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))
	if slug == "" {
		posts, err := h.svc.ListPublished()
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.OK(c, posts)
		return
	}

	post, err := h.svc.GetBySlug(slug, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.Query("action") == "view" {
		if err := h.svc.IncrementViews(post.ID); err != nil {
			h.log.Warn("view count update failed", zap.Uint("blog_id", post.ID), zap.Error(err))
		} else {
			post.Views++
		}
	}
	response.OK(c, post)
}

// afterMutation runs the best-effort side effects of a create/update: static
// HTML regeneration and the admin notification. Failures only get logged.
func (h *Handler) afterMutation(post *models.BlogPost, event notify.Event) {
	go func() {
		if err := h.publisher.GenerateBlogHTML(post.ID); err != nil {
			h.log.Warn("static generation failed", zap.Uint("blog_id", post.ID), zap.Error(err))
		}
	}()
	h.notifier.Dispatch(event, map[string]string{
		"Title": post.Title, "Slug": post.Slug, "Status": post.Status,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotFound):
		response.NotFound(c, "Blog not found")
	case errors.Is(err, errSlugTaken):
		response.Conflict(c, "slug already in use")
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
