package models

import "time"

// Lead is a sales prospect captured from the contact form, the CRM panel or
// a spreadsheet import. Phone is stored normalized (no p:/+ prefix).
type Lead struct {
	Base
	FullName          string     `json:"full_name"`
	Email             string     `json:"email"              gorm:"index"`
	Phone             string     `json:"phone"              gorm:"index"`
	CompanyName       string     `json:"company_name"`
	Message           string     `json:"message"            gorm:"type:text"`
	LeadStatus        string     `json:"lead_status"        gorm:"default:new;index"`
	LeadSource        string     `json:"lead_source"`
	LeadQuality       string     `json:"lead_quality"`
	LeadOwner         string     `json:"lead_owner"`
	ExpectedDealValue float64    `json:"expected_deal_value" gorm:"default:0"`
	Probability       int        `json:"probability"         gorm:"default:0"`
	NextFollowUp      *time.Time `json:"next_follow_up"`
	LastContactAt     *time.Time `json:"last_contact_at"`
	IsJunk            bool       `json:"is_junk"             gorm:"default:false;index"`
}

func (Lead) TableName() string { return "leads" }

// CrmActivity is a logged interaction with a lead.
type CrmActivity struct {
	Base
	LeadID       uint       `json:"lead_id"       gorm:"index;not null"`
	ActivityType string     `json:"activity_type"`
	ActivityDate *time.Time `json:"activity_date"`
	Summary      string     `json:"summary"       gorm:"type:text"`
	NextStep     string     `json:"next_step"`
	CreatedBy    string     `json:"created_by"`
}

func (CrmActivity) TableName() string { return "crm_activities" }

// CrmSetting is a configurable dropdown value (lead_status, lead_source, ...).
// Deletion is soft, via is_active.
type CrmSetting struct {
	Base
	SettingType  string `json:"setting_type"  gorm:"index;not null"`
	SettingValue string `json:"setting_value" gorm:"not null"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
	IsActive     bool   `json:"is_active"     gorm:"default:true"`
}

func (CrmSetting) TableName() string { return "crm_settings" }

// SpreadsheetConfig is a CSV import source. SyncInterval is in minutes.
type SpreadsheetConfig struct {
	Base
	Name         string     `json:"name"          gorm:"not null"`
	URL          string     `json:"url"           gorm:"not null"`
	IsActive     bool       `json:"is_active"     gorm:"default:true"`
	SyncInterval int        `json:"sync_interval" gorm:"default:60"`
	AutoSync     bool       `json:"auto_sync"     gorm:"default:false"`
	LastSynced   *time.Time `json:"last_synced"`
}

func (SpreadsheetConfig) TableName() string { return "spreadsheet_configs" }
