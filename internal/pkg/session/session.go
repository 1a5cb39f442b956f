package session

import (
	"strings"
	"time"

	"github.com/cybaemtech/site-core/internal/models"
	jwtpkg "github.com/cybaemtech/site-core/internal/pkg/jwt"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultTTL = 30 * 24 * time.Hour

// Issue creates a DB session row and signs a JWT bound to it.
func Issue(db *gorm.DB, userID uint, ip, ua string, ttl time.Duration) (string, *models.UserSession, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	s := &models.UserSession{
		ID:         uuid.New().String(),
		UserID:     userID,
		IP:         strings.TrimSpace(ip),
		UserAgent:  strings.TrimSpace(ua),
		LastActive: now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.Create(s).Error; err != nil {
		return "", nil, err
	}

	token, err := jwtpkg.Sign(userID, s.ID, ttl)
	if err != nil {
		_ = db.Delete(s).Error
		return "", nil, err
	}
	return token, s, nil
}

// IsActive reports whether the session is current: not revoked, not expired.
func IsActive(db *gorm.DB, userID uint, sessionID string) (bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return false, nil
	}

	var count int64
	err := db.Model(&models.UserSession{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, userID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Touch updates the session's last-active timestamp, best effort.
func Touch(db *gorm.DB, userID uint, sessionID string) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return
	}
	_ = db.Model(&models.UserSession{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, userID, time.Now()).
		Update("last_active", time.Now()).Error
}

// Revoke marks one session as revoked.
func Revoke(db *gorm.DB, userID uint, sessionID string) error {
	now := time.Now()
	res := db.Model(&models.UserSession{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL", sessionID, userID).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RevokeAll revokes every active session of a user, e.g. after a password
// change or account removal.
func RevokeAll(db *gorm.DB, userID uint) error {
	now := time.Now()
	return db.Model(&models.UserSession{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).Error
}
