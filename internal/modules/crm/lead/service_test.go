package lead

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cybaemtech/site-core/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Lead{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateLeadDefaults(t *testing.T) {
	svc := NewService(testDB(t))

	lead, err := svc.Create(map[string]interface{}{
		"full_name": "Asha Kulkarni",
		"email":     "asha@example.com",
		"phone":     "p:+919876543210",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.LeadStatus != "new" {
		t.Errorf("LeadStatus = %q, expected new", lead.LeadStatus)
	}
	if lead.Phone != "919876543210" {
		t.Errorf("Phone = %q, expected normalized 919876543210", lead.Phone)
	}
}

func TestCreateLeadMissingContact(t *testing.T) {
	svc := NewService(testDB(t))

	_, err := svc.Create(map[string]interface{}{"message": "no identity at all"})
	if !errors.Is(err, errMissingContact) {
		t.Fatalf("Create = %v, expected errMissingContact", err)
	}
}

func TestCreateLeadDuplicateEmail(t *testing.T) {
	svc := NewService(testDB(t))

	if _, err := svc.Create(map[string]interface{}{
		"full_name": "First", "email": "Dup@Example.com",
	}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := svc.Create(map[string]interface{}{
		"full_name": "Second", "email": "dup@example.COM",
	})
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("second Create = %v, expected DuplicateError", err)
	}
	if dup.Field != "email" {
		t.Errorf("DuplicateError.Field = %q, expected email", dup.Field)
	}

	var count int64
	svc.DB().Model(&models.Lead{}).Count(&count)
	if count != 1 {
		t.Errorf("lead count = %d, expected 1 (duplicate must not insert)", count)
	}
}

func TestCreateLeadDuplicatePhone(t *testing.T) {
	svc := NewService(testDB(t))

	if _, err := svc.Create(map[string]interface{}{
		"full_name": "First", "phone": "+919876543210",
	}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := svc.Create(map[string]interface{}{
		"full_name": "Second", "phone": "p:919876543210",
	})
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("second Create = %v, expected DuplicateError", err)
	}
	if dup.Field != "phone" {
		t.Errorf("DuplicateError.Field = %q, expected phone", dup.Field)
	}
}

func TestMarkJunkKeepsRow(t *testing.T) {
	svc := NewService(testDB(t))

	lead, err := svc.Create(map[string]interface{}{"full_name": "Spammy", "email": "spam@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.MarkJunk(lead.ID, true)
	if err != nil {
		t.Fatalf("MarkJunk: %v", err)
	}
	if !updated.IsJunk {
		t.Error("IsJunk = false after MarkJunk(true)")
	}
	if _, err := svc.Get(lead.ID); err != nil {
		t.Errorf("Get after MarkJunk: %v", err)
	}
}
