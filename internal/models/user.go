package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleUser       = "user"

	StatusActive   = "active"
	StatusDisabled = "disabled"

	// BuiltinAdminID is the protected built-in account. It can never be
	// modified or deleted through the API.
	BuiltinAdminID uint = 1
)

// permissionModules is the closed set of admin panel modules a user can be
// granted access to.
var permissionModules = []string{
	"dashboard", "blogs", "leads", "seo", "users", "applications", "settings",
}

// AdminUser is an admin panel account.
type AdminUser struct {
	Base
	Username    string      `json:"username"    gorm:"uniqueIndex;not null"`
	Email       string      `json:"email"       gorm:"uniqueIndex;not null"`
	Password    string      `json:"-"           gorm:"not null"`
	Role        string      `json:"role"        gorm:"default:user"`
	Permissions StringSlice `json:"permissions" gorm:"type:text;serializer:json"`
	Status      string      `json:"status"      gorm:"default:active"`
	LastLogin   *time.Time  `json:"last_login"`
	CreatedBy   *uint       `json:"created_by"`
}

func (AdminUser) TableName() string { return "admin_users" }

func (u *AdminUser) IsSuperAdmin() bool { return u.Role == RoleSuperAdmin }
func (u *AdminUser) IsActive() bool     { return u.Status == StatusActive }
func (u *AdminUser) IsBuiltin() bool    { return u.ID == BuiltinAdminID }

// UserSession is a server-side login session referenced by the JWT.
type UserSession struct {
	ID         string     `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     uint       `json:"user_id"     gorm:"index;not null"`
	IP         string     `json:"ip"`
	UserAgent  string     `json:"user_agent"  gorm:"type:text"`
	CreatedAt  time.Time  `json:"created_at"`
	LastActive time.Time  `json:"last_active"`
	ExpiresAt  time.Time  `json:"expires_at"  gorm:"index"`
	RevokedAt  *time.Time `json:"revoked_at"`
}

func (UserSession) TableName() string { return "user_sessions" }

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// ValidPermissions reports whether every entry names a known module.
func ValidPermissions(perms []string) bool {
	for _, perm := range perms {
		known := false
		for _, module := range permissionModules {
			if perm == module {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}

// AllPermissions returns the full module list, for seeding the built-in admin.
func AllPermissions() StringSlice {
	out := make(StringSlice, len(permissionModules))
	copy(out, permissionModules)
	return out
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies plain against the stored bcrypt hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
