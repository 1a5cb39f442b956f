package setting

import (
	"errors"
	"strings"

	"github.com/cybaemtech/site-core/internal/models"
	"gorm.io/gorm"
)

var errNotFound = errors.New("setting not found")

type UpsertSettingDTO struct {
	SettingType  string `json:"setting_type"`
	SettingValue string `json:"setting_value"`
	DisplayOrder int    `json:"display_order"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns active settings grouped by type, ordered for display.
func (s *Service) List(settingType string) (map[string][]models.CrmSetting, error) {
	query := s.db.Where("is_active = ?", true).
		Order("setting_type ASC, display_order ASC, id ASC")
	if settingType != "" {
		query = query.Where("setting_type = ?", settingType)
	}

	var rows []models.CrmSetting
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.CrmSetting)
	for _, row := range rows {
		grouped[row.SettingType] = append(grouped[row.SettingType], row)
	}
	return grouped, nil
}

func (s *Service) Create(dto *UpsertSettingDTO) (*models.CrmSetting, error) {
	row := models.CrmSetting{
		SettingType:  strings.TrimSpace(dto.SettingType),
		SettingValue: strings.TrimSpace(dto.SettingValue),
		DisplayOrder: dto.DisplayOrder,
		IsActive:     true,
	}
	return &row, s.db.Create(&row).Error
}

func (s *Service) Update(id uint, dto *UpsertSettingDTO) (*models.CrmSetting, error) {
	var row models.CrmSetting
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(dto.SettingType) != "" {
		updates["setting_type"] = strings.TrimSpace(dto.SettingType)
	}
	if strings.TrimSpace(dto.SettingValue) != "" {
		updates["setting_value"] = strings.TrimSpace(dto.SettingValue)
	}
	updates["display_order"] = dto.DisplayOrder

	if err := s.db.Model(&row).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete is soft: the row is deactivated, not removed, so historical leads
// keep referencing a known value.
func (s *Service) Delete(id uint) error {
	res := s.db.Model(&models.CrmSetting{}).Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}
