package auth

import (
	"errors"
	"strings"

	"github.com/cybaemtech/site-core/internal/middleware"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	a.POST("/login", h.login)
	a.GET("/check", authMW, h.check)
	a.POST("/logout", authMW, h.logout)
	a.POST("/change-password", authMW, h.changePassword)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(dto.Username) == "" || dto.Password == "" {
		response.BadRequest(c, "Username and password are required")
		return
	}

	token, user, err := h.svc.Login(dto.Username, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCredentials):
			response.Unauthorized(c, "Invalid credentials")
		case errors.Is(err, errAccountDisabled):
			response.Unauthorized(c, "Account is disabled")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"token": token, "user": toUserInfo(user)})
}

func (h *Handler) check(c *gin.Context) {
	user, err := h.svc.Check(middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	if err != nil {
		if errors.Is(err, errSessionInvalid) {
			response.Unauthorized(c, "Session is no longer valid")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"authenticated": true, "user": toUserInfo(user)})
}

func (h *Handler) logout(c *gin.Context) {
	h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	response.OKMessage(c, "Logged out")
}

func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.CurrentPassword == "" || dto.NewPassword == "" {
		response.BadRequest(c, "Current and new password are required")
		return
	}
	if len(dto.NewPassword) < 8 {
		response.BadRequest(c, "New password must be at least 8 characters")
		return
	}

	err := h.svc.ChangePassword(middleware.CurrentUserID(c), middleware.CurrentSessionID(c), dto.CurrentPassword, dto.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, errWrongPassword):
			response.Unauthorized(c, "Current password is incorrect")
		case errors.Is(err, errSamePassword):
			response.BadRequest(c, "New password must differ from the current one")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OKMessage(c, "Password updated")
}
