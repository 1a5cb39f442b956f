package user

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cybaemtech/site-core/internal/middleware"
	"github.com/cybaemtech/site-core/internal/modules/notify"
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

// RegisterRoutes mounts user management. The whole group requires a super
// admin session; the legacy client addresses rows via ?id=.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, superAdminMW gin.HandlerFunc) {
	g := rg.Group("/users-admin", authMW, superAdminMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("", h.update)
	g.DELETE("", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	if id, ok := queryID(c); ok {
		u, err := h.svc.Get(id)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.OK(c, u)
		return
	}

	users, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, users)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(dto.Username) == "" || strings.TrimSpace(dto.Email) == "" || dto.Password == "" {
		response.BadRequest(c, "Username, email and password are required")
		return
	}

	u, err := h.svc.Create(&dto, middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.notifier.Dispatch(notify.EventUserCreated, map[string]string{
		"Username": u.Username, "Email": u.Email, "Role": u.Role,
	})
	response.Created(c, u)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	u, err := h.svc.Update(id, &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.notifier.Dispatch(notify.EventUserUpdated, map[string]string{
		"Username": u.Username, "Email": u.Email, "Role": u.Role, "Status": u.Status,
	})
	response.OK(c, u)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		response.BadRequest(c, "id is required")
		return
	}

	u, err := h.svc.Get(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Delete(id, middleware.CurrentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	h.notifier.Dispatch(notify.EventUserDeleted, map[string]string{
		"Username": u.Username, "Email": u.Email,
	})
	response.OKMessage(c, "User deleted")
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, errBuiltinImmutable):
		response.Forbidden(c, "The built-in admin account cannot be modified or deleted")
	case errors.Is(err, errLastSuperAdmin):
		response.Forbidden(c, "Cannot remove the last super admin")
	case errors.Is(err, errSelfDelete):
		response.Forbidden(c, "You cannot delete your own account")
	case errors.Is(err, errInvalidRole):
		response.BadRequest(c, "Role must be one of super_admin, admin, user")
	case errors.Is(err, errInvalidPermissions):
		response.BadRequest(c, "Permissions contain an unknown module")
	case errors.Is(err, errDuplicateUser):
		response.Conflict(c, "Username or email already exists")
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
