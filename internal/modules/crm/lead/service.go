package lead

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/pkg/pagination"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	errNotFound       = errors.New("lead not found")
	errMissingContact = errors.New("a name, email or phone is required")
)

// DuplicateError reports which field of an existing lead blocked an insert.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a lead with this %s already exists: %s", e.Field, e.Value)
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) DB() *gorm.DB { return s.db }

type ListFilter struct {
	Status      string
	Search      string
	IncludeJunk bool
}

func (s *Service) List(q pagination.Query, filter ListFilter) ([]models.Lead, response.Pagination, error) {
	query := s.db.Model(&models.Lead{}).Order("created_at DESC")
	if !filter.IncludeJunk {
		query = query.Where("is_junk = ?", false)
	}
	if filter.Status != "" {
		query = query.Where("lead_status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ? OR company_name LIKE ?", like, like, like)
	}

	var leads []models.Lead
	page, err := pagination.Paginate(query, q, &leads)
	return leads, page, err
}

func (s *Service) Get(id uint) (*models.Lead, error) {
	var lead models.Lead
	if err := s.db.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// Create inserts a lead from canonical fields (see ResolveFields). An
// existing lead with the same lowercased email or normalized phone blocks
// the insert with a DuplicateError naming the conflicting field.
func (s *Service) Create(fields map[string]interface{}) (*models.Lead, error) {
	lead := buildLead(fields)
	if lead.FullName == "" && lead.Email == "" && lead.Phone == "" {
		return nil, errMissingContact
	}

	if dup, err := s.findDuplicate(lead.Email, lead.Phone); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, dup
	}

	if lead.LeadStatus == "" {
		lead.LeadStatus = "new"
	}
	return lead, s.db.Create(lead).Error
}

// Update patches a lead with canonical fields. Unknown columns were already
// dropped during alias resolution.
func (s *Service) Update(id uint, fields map[string]interface{}) (*models.Lead, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	updates := leadColumnValues(fields)
	if len(updates) > 0 {
		if err := s.db.Model(&models.Lead{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s *Service) Delete(id uint) error {
	res := s.db.Delete(&models.Lead{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}

// MarkJunk flips the junk flag without deleting the row.
func (s *Service) MarkJunk(id uint, junk bool) (*models.Lead, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Lead{}).Where("id = ?", id).
		Update("is_junk", junk).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *Service) findDuplicate(email, phone string) (*DuplicateError, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = NormalizePhone(phone)

	if email != "" {
		var count int64
		if err := s.db.Model(&models.Lead{}).
			Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return &DuplicateError{Field: "email", Value: email}, nil
		}
	}
	if phone != "" {
		var count int64
		if err := s.db.Model(&models.Lead{}).
			Where("phone = ?", phone).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return &DuplicateError{Field: "phone", Value: phone}, nil
		}
	}
	return nil, nil
}

// buildLead maps canonical fields onto a Lead row, normalizing the phone.
func buildLead(fields map[string]interface{}) *models.Lead {
	lead := &models.Lead{
		FullName:          asString(fields["full_name"]),
		Email:             strings.TrimSpace(asString(fields["email"])),
		Phone:             NormalizePhone(asString(fields["phone"])),
		CompanyName:       asString(fields["company_name"]),
		Message:           asString(fields["message"]),
		LeadStatus:        asString(fields["lead_status"]),
		LeadSource:        asString(fields["lead_source"]),
		LeadQuality:       asString(fields["lead_quality"]),
		LeadOwner:         asString(fields["lead_owner"]),
		ExpectedDealValue: asFloat(fields["expected_deal_value"]),
		Probability:       asInt(fields["probability"]),
		IsJunk:            asBool(fields["is_junk"]),
	}
	lead.FullName = strings.TrimSpace(lead.FullName)
	return lead
}

// leadColumnValues converts canonical fields to a column update map.
func leadColumnValues(fields map[string]interface{}) map[string]interface{} {
	updates := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		switch key {
		case "phone":
			updates[key] = NormalizePhone(asString(value))
		case "email":
			updates[key] = strings.TrimSpace(asString(value))
		case "expected_deal_value":
			updates[key] = asFloat(value)
		case "probability":
			updates[key] = asInt(value)
		case "is_junk":
			updates[key] = asBool(value)
		default:
			updates[key] = asString(value)
		}
	}
	return updates
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func asFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f
	default:
		return 0
	}
}

func asInt(v interface{}) int {
	return int(asFloat(v))
}

func asBool(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(val))
		return b
	case float64:
		return val != 0
	default:
		return false
	}
}

// TouchLastContact bumps last_contact_at, used when an activity is logged.
func TouchLastContact(tx *gorm.DB, leadID uint, at time.Time) error {
	return tx.Model(&models.Lead{}).Where("id = ?", leadID).
		Update("last_contact_at", &at).Error
}
