package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/cybaemtech/site-core/internal/models"
	sessionpkg "github.com/cybaemtech/site-core/internal/pkg/session"
	"gorm.io/gorm"
)

var (
	// errInvalidCredentials covers both unknown username and wrong password,
	// deliberately indistinguishable to the caller.
	errInvalidCredentials = errors.New("invalid credentials")
	errAccountDisabled    = errors.New("account disabled")
	errSessionInvalid     = errors.New("session invalid")
	errWrongPassword      = errors.New("current password incorrect")
	errSamePassword       = errors.New("new password must differ")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies the credentials and issues a session-bound token.
func (s *Service) Login(username, password, ip, ua string) (string, *models.AdminUser, error) {
	var u models.AdminUser
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}
	if !models.CheckPassword(u.Password, password) {
		return "", nil, errInvalidCredentials
	}
	if !u.IsActive() {
		return "", nil, errAccountDisabled
	}

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	_ = s.db.Model(&u).Update("last_login", &now).Error
	u.LastLogin = &now
	return token, &u, nil
}

// Check re-validates the authenticated user against storage. A vanished or
// disabled account revokes the session on the spot.
func (s *Service) Check(userID uint, sessionID string) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := s.db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = sessionpkg.Revoke(s.db, userID, sessionID)
			return nil, errSessionInvalid
		}
		return nil, err
	}
	if !u.IsActive() {
		_ = sessionpkg.Revoke(s.db, userID, sessionID)
		return nil, errSessionInvalid
	}
	return &u, nil
}

// Logout revokes the session unconditionally.
func (s *Service) Logout(userID uint, sessionID string) {
	_ = sessionpkg.Revoke(s.db, userID, sessionID)
}

// ChangePassword re-verifies the current password before rotating it.
// Other active sessions of the user are revoked.
func (s *Service) ChangePassword(userID uint, sessionID, current, next string) error {
	var u models.AdminUser
	if err := s.db.First(&u, userID).Error; err != nil {
		return err
	}
	if !models.CheckPassword(u.Password, current) {
		return errWrongPassword
	}
	if current == next {
		return errSamePassword
	}

	hash, err := models.HashPassword(next)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&u).Update("password", hash).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.UserSession{}).
			Where("user_id = ? AND id <> ? AND revoked_at IS NULL", userID, sessionID).
			Update("revoked_at", &now).Error
	})
}
