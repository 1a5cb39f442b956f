package user

import (
	"errors"
	"strings"
	"time"

	"github.com/cybaemtech/site-core/internal/models"
	"gorm.io/gorm"
)

var (
	errNotFound           = errors.New("user not found")
	errBuiltinImmutable   = errors.New("built-in account cannot be modified")
	errLastSuperAdmin     = errors.New("last super admin")
	errSelfDelete         = errors.New("cannot delete own account")
	errInvalidRole        = errors.New("invalid role")
	errInvalidPermissions = errors.New("invalid permissions")
	errDuplicateUser      = errors.New("username or email already exists")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.AdminUser, error) {
	var users []models.AdminUser
	return users, s.db.Order("id ASC").Find(&users).Error
}

func (s *Service) Get(id uint) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) Create(dto *CreateUserDTO, createdBy uint) (*models.AdminUser, error) {
	role := strings.TrimSpace(dto.Role)
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, errInvalidRole
	}
	if !models.ValidPermissions(dto.Permissions) {
		return nil, errInvalidPermissions
	}
	status := strings.TrimSpace(dto.Status)
	if status == "" {
		status = models.StatusActive
	}

	var count int64
	if err := s.db.Model(&models.AdminUser{}).
		Where("username = ? OR email = ?", dto.Username, strings.ToLower(dto.Email)).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errDuplicateUser
	}

	hash, err := models.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	u := models.AdminUser{
		Username:    strings.TrimSpace(dto.Username),
		Email:       strings.ToLower(strings.TrimSpace(dto.Email)),
		Password:    hash,
		Role:        role,
		Permissions: dto.Permissions,
		Status:      status,
		CreatedBy:   &createdBy,
	}
	return &u, s.db.Create(&u).Error
}

func (s *Service) Update(id uint, dto *UpdateUserDTO) (*models.AdminUser, error) {
	if id == models.BuiltinAdminID {
		return nil, errBuiltinImmutable
	}

	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if dto.Role != nil && !models.ValidRole(*dto.Role) {
		return nil, errInvalidRole
	}
	if dto.Permissions != nil && !models.ValidPermissions(*dto.Permissions) {
		return nil, errInvalidPermissions
	}

	demoting := dto.Role != nil && *dto.Role != models.RoleSuperAdmin
	disabling := dto.Status != nil && *dto.Status != models.StatusActive
	if u.IsSuperAdmin() && (demoting || disabling) {
		last, err := s.isLastSuperAdmin(id)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, errLastSuperAdmin
		}
	}

	if dto.Username != nil || dto.Email != nil {
		username := u.Username
		if dto.Username != nil {
			username = strings.TrimSpace(*dto.Username)
		}
		email := u.Email
		if dto.Email != nil {
			email = strings.ToLower(strings.TrimSpace(*dto.Email))
		}
		var count int64
		if err := s.db.Model(&models.AdminUser{}).
			Where("(username = ? OR email = ?) AND id <> ?", username, email, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errDuplicateUser
		}
	}

	updates := map[string]interface{}{}
	if dto.Username != nil {
		updates["username"] = strings.TrimSpace(*dto.Username)
	}
	if dto.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*dto.Email))
	}
	if dto.Role != nil {
		updates["role"] = *dto.Role
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}
	if dto.Permissions != nil {
		u.Permissions = *dto.Permissions
		if err := s.db.Model(u).Select("permissions").Updates(u).Error; err != nil {
			return nil, err
		}
	}
	if dto.Password != nil && *dto.Password != "" {
		hash, err := models.HashPassword(*dto.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := s.db.Model(u).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s *Service) Delete(id, callerID uint) error {
	if id == models.BuiltinAdminID {
		return errBuiltinImmutable
	}
	if id == callerID {
		return errSelfDelete
	}

	u, err := s.Get(id)
	if err != nil {
		return err
	}
	if u.IsSuperAdmin() {
		last, err := s.isLastSuperAdmin(id)
		if err != nil {
			return err
		}
		if last {
			return errLastSuperAdmin
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.AdminUser{}, id).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.UserSession{}).
			Where("user_id = ? AND revoked_at IS NULL", id).
			Update("revoked_at", &now).Error
	})
}

// isLastSuperAdmin reports whether no other super admin exists besides id.
func (s *Service) isLastSuperAdmin(id uint) (bool, error) {
	var others int64
	err := s.db.Model(&models.AdminUser{}).
		Where("role = ? AND id <> ?", models.RoleSuperAdmin, id).
		Count(&others).Error
	return others == 0, err
}
