package database

import (
	"fmt"

	"github.com/cybaemtech/site-core/internal/config"
	"github.com/cybaemtech/site-core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance.
var DB *gorm.DB

// Connect opens the configured database and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	db, err := openDB(cfg, resolveLogLevel(cfg))
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		if err := seedDefaults(db); err != nil {
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}

	DB = db
	return db, nil
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}

func openDB(cfg *config.AppConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	dsn := cfg.Database.DSNValue()

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		dialector = mysql.New(mysql.Config{DSN: dsn, DefaultStringSize: 191})
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// Migrate runs GORM auto-migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AdminUser{},
		&models.UserSession{},
		&models.BlogPost{},
		&models.SeoMetatag{},
		&models.Lead{},
		&models.CrmActivity{},
		&models.CrmSetting{},
		&models.SpreadsheetConfig{},
		&models.JobApplication{},
	)
}

// seedDefaults creates the built-in super admin (row id 1) and the baseline
// CRM dropdown values on a fresh database.
func seedDefaults(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.AdminUser{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		hash, err := models.HashPassword("changeme")
		if err != nil {
			return err
		}
		admin := models.AdminUser{
			Username:    "admin",
			Email:       "admin@cybaemtech.com",
			Password:    hash,
			Role:        models.RoleSuperAdmin,
			Permissions: models.AllPermissions(),
			Status:      models.StatusActive,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	}

	defaults := []models.CrmSetting{
		{SettingType: "lead_status", SettingValue: "new", DisplayOrder: 1, IsActive: true},
		{SettingType: "lead_status", SettingValue: "contacted", DisplayOrder: 2, IsActive: true},
		{SettingType: "lead_status", SettingValue: "qualified", DisplayOrder: 3, IsActive: true},
		{SettingType: "lead_status", SettingValue: "closed", DisplayOrder: 4, IsActive: true},
		{SettingType: "lead_source", SettingValue: "website", DisplayOrder: 1, IsActive: true},
		{SettingType: "lead_source", SettingValue: "spreadsheet", DisplayOrder: 2, IsActive: true},
		{SettingType: "lead_source", SettingValue: "referral", DisplayOrder: 3, IsActive: true},
	}
	for _, setting := range defaults {
		var count int64
		if err := db.Model(&models.CrmSetting{}).
			Where("setting_type = ? AND setting_value = ?", setting.SettingType, setting.SettingValue).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&setting).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
