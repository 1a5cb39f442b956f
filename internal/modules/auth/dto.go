package auth

import "github.com/cybaemtech/site-core/internal/models"

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// userInfo is the sanitized account shape returned to the admin panel.
type userInfo struct {
	ID          uint               `json:"id"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	Permissions models.StringSlice `json:"permissions"`
}

func toUserInfo(u *models.AdminUser) userInfo {
	return userInfo{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}
