package application

import (
	"errors"
	"fmt"
	"mime/multipart"
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
	if err := db.AutoMigrate(&models.JobApplication{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.JobApplication{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestSubmitRejectsOversizedResume(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, t.TempDir())

	resume := &multipart.FileHeader{Filename: "resume.pdf", Size: 11 << 20}
	_, err := svc.Submit(&SubmitDTO{FullName: "Asha", Email: "asha@example.com"}, resume)

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Code != "FILE_TOO_LARGE" {
		t.Fatalf("Submit = %v, expected FILE_TOO_LARGE validation error", err)
	}
	if n := countRows(t, db); n != 0 {
		t.Errorf("rows = %d, expected 0 after rejected upload", n)
	}
}

func TestSubmitRejectsUnknownFileType(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, t.TempDir())

	for _, name := range []string{"resume.exe", "resume.html", "resume", "resume.pdf.sh"} {
		resume := &multipart.FileHeader{Filename: name, Size: 1024}
		_, err := svc.Submit(&SubmitDTO{FullName: "Asha", Email: "asha@example.com"}, resume)

		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Code != "INVALID_FILE_TYPE" {
			t.Errorf("Submit(%q) = %v, expected INVALID_FILE_TYPE", name, err)
		}
	}
	if n := countRows(t, db); n != 0 {
		t.Errorf("rows = %d, expected 0 after rejected uploads", n)
	}
}

func TestSubmitSizeCheckedBeforeType(t *testing.T) {
	svc := NewService(testDB(t), t.TempDir())

	// oversized AND wrong type: size must win, matching the order the
	// frontend reports errors in
	resume := &multipart.FileHeader{Filename: "resume.exe", Size: 11 << 20}
	_, err := svc.Submit(&SubmitDTO{FullName: "A", Email: "a@example.com"}, resume)

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Code != "FILE_TOO_LARGE" {
		t.Fatalf("Submit = %v, expected FILE_TOO_LARGE to take precedence", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, t.TempDir())

	app := models.JobApplication{FullName: "Asha", Email: "asha@example.com", Status: models.ApplicationStatusReceived}
	if err := db.Create(&app).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := svc.UpdateStatus(app.ID, "shortlisted")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != "shortlisted" {
		t.Errorf("Status = %q, expected shortlisted", updated.Status)
	}

	if _, err := svc.UpdateStatus(999, "rejected"); !errors.Is(err, errNotFound) {
		t.Errorf("UpdateStatus unknown id = %v, expected errNotFound", err)
	}
}
