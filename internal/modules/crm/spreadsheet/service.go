package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/modules/crm/lead"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errNotFound = errors.New("spreadsheet config not found")

type UpsertConfigDTO struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	IsActive     *bool  `json:"is_active"`
	SyncInterval *int   `json:"sync_interval"`
	AutoSync     *bool  `json:"auto_sync"`
}

// SyncOutcome is the result of importing one configured sheet.
type SyncOutcome struct {
	ConfigID uint               `json:"config_id"`
	Name     string             `json:"name"`
	Result   *lead.ImportResult `json:"result,omitempty"`
	Error    string             `json:"error,omitempty"`
}

type Service struct {
	db    *gorm.DB
	leads *lead.Service
	log   *zap.Logger
}

func NewService(db *gorm.DB, leads *lead.Service, log *zap.Logger) *Service {
	return &Service{db: db, leads: leads, log: log}
}

func (s *Service) List() ([]models.SpreadsheetConfig, error) {
	var configs []models.SpreadsheetConfig
	return configs, s.db.Order("id ASC").Find(&configs).Error
}

func (s *Service) Get(id uint) (*models.SpreadsheetConfig, error) {
	var config models.SpreadsheetConfig
	if err := s.db.First(&config, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &config, nil
}

func (s *Service) Create(dto *UpsertConfigDTO) (*models.SpreadsheetConfig, error) {
	config := models.SpreadsheetConfig{
		Name:         strings.TrimSpace(dto.Name),
		URL:          strings.TrimSpace(dto.URL),
		IsActive:     true,
		SyncInterval: 60,
	}
	if dto.IsActive != nil {
		config.IsActive = *dto.IsActive
	}
	if dto.SyncInterval != nil && *dto.SyncInterval > 0 {
		config.SyncInterval = *dto.SyncInterval
	}
	if dto.AutoSync != nil {
		config.AutoSync = *dto.AutoSync
	}
	return &config, s.db.Create(&config).Error
}

func (s *Service) Update(id uint, dto *UpsertConfigDTO) (*models.SpreadsheetConfig, error) {
	config, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if strings.TrimSpace(dto.Name) != "" {
		updates["name"] = strings.TrimSpace(dto.Name)
	}
	if strings.TrimSpace(dto.URL) != "" {
		updates["url"] = strings.TrimSpace(dto.URL)
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.SyncInterval != nil && *dto.SyncInterval > 0 {
		updates["sync_interval"] = *dto.SyncInterval
	}
	if dto.AutoSync != nil {
		updates["auto_sync"] = *dto.AutoSync
	}

	if len(updates) > 0 {
		if err := s.db.Model(config).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return config, nil
}

func (s *Service) Delete(id uint) error {
	res := s.db.Delete(&models.SpreadsheetConfig{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}

// Sync imports the configured sheet now and stamps last_synced.
func (s *Service) Sync(ctx context.Context, id uint) (*lead.ImportResult, error) {
	config, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	result, err := s.leads.ImportFromURL(ctx, config.URL)
	if err != nil {
		return nil, fmt.Errorf("sync %q: %w", config.Name, err)
	}

	now := time.Now()
	if err := s.db.Model(config).Update("last_synced", now).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// RunAutoSync imports every active auto_sync config whose interval has
// elapsed since its last sync. Per-config failures are logged and reported
// in the outcome, never fatal to the run.
func (s *Service) RunAutoSync(ctx context.Context) ([]SyncOutcome, error) {
	var configs []models.SpreadsheetConfig
	err := s.db.Where("is_active = ? AND auto_sync = ?", true, true).
		Order("id ASC").Find(&configs).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var outcomes []SyncOutcome
	for _, config := range configs {
		if !syncDue(&config, now) {
			continue
		}
		outcome := SyncOutcome{ConfigID: config.ID, Name: config.Name}
		result, err := s.Sync(ctx, config.ID)
		if err != nil {
			outcome.Error = err.Error()
			s.log.Warn("spreadsheet auto sync failed",
				zap.Uint("config_id", config.ID),
				zap.String("name", config.Name),
				zap.Error(err))
		} else {
			outcome.Result = result
			s.log.Info("spreadsheet auto sync finished",
				zap.Uint("config_id", config.ID),
				zap.String("name", config.Name),
				zap.Int("imported", result.Imported),
				zap.Int("duplicates", result.Duplicates),
				zap.Int("failed", result.Failed))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func syncDue(config *models.SpreadsheetConfig, now time.Time) bool {
	if config.LastSynced == nil {
		return true
	}
	interval := time.Duration(config.SyncInterval) * time.Minute
	return now.Sub(*config.LastSynced) >= interval
}
