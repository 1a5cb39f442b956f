package activity

import (
	"errors"
	"time"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/modules/crm/lead"
	"gorm.io/gorm"
)

var errLeadNotFound = errors.New("lead not found")

type CreateActivityDTO struct {
	LeadID       uint       `json:"lead_id"`
	ActivityType string     `json:"activity_type"`
	ActivityDate *time.Time `json:"activity_date"`
	Summary      string     `json:"summary"`
	NextStep     string     `json:"next_step"`
	CreatedBy    string     `json:"created_by"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) ListByLead(leadID uint) ([]models.CrmActivity, error) {
	if err := s.requireLead(s.db, leadID); err != nil {
		return nil, err
	}
	var activities []models.CrmActivity
	return activities, s.db.Where("lead_id = ?", leadID).
		Order("activity_date DESC, created_at DESC").Find(&activities).Error
}

// Create logs an activity and bumps the parent lead's last_contact_at in
// the same transaction.
func (s *Service) Create(dto *CreateActivityDTO) (*models.CrmActivity, error) {
	now := time.Now()
	when := dto.ActivityDate
	if when == nil {
		when = &now
	}

	row := models.CrmActivity{
		LeadID:       dto.LeadID,
		ActivityType: dto.ActivityType,
		ActivityDate: when,
		Summary:      dto.Summary,
		NextStep:     dto.NextStep,
		CreatedBy:    dto.CreatedBy,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.requireLead(tx, dto.LeadID); err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return lead.TouchLastContact(tx, dto.LeadID, *when)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) requireLead(tx *gorm.DB, leadID uint) error {
	var count int64
	if err := tx.Model(&models.Lead{}).Where("id = ?", leadID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errLeadNotFound
	}
	return nil
}
