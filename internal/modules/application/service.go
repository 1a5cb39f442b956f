package application

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cybaemtech/site-core/internal/models"
	"github.com/cybaemtech/site-core/internal/pkg/pagination"
	"github.com/cybaemtech/site-core/internal/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxResumeSize = 10 << 20 // 10 MiB

var (
	errNotFound = errors.New("application not found")

	// ValidationError carries the machine code the careers form switches on.
	errFileTooLarge    = &ValidationError{Code: "FILE_TOO_LARGE", Message: "Resume must be 10MB or smaller"}
	errInvalidFileType = &ValidationError{Code: "INVALID_FILE_TYPE", Message: "Resume must be a PDF or Word document"}
)

type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// allowedResumeTypes maps accepted extensions to their canonical MIME type.
var allowedResumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type SubmitDTO struct {
	JobID     string
	JobTitle  string
	FullName  string
	Email     string
	Phone     string
	CoverNote string
	SourceURL string
}

type Service struct {
	db        *gorm.DB
	uploadDir string
}

func NewService(db *gorm.DB, uploadDir string) *Service {
	return &Service{db: db, uploadDir: uploadDir}
}

// Submit validates the resume, stores it under a collision-proof name and
// records the application. Validation rejects before anything is persisted.
func (s *Service) Submit(dto *SubmitDTO, resume *multipart.FileHeader) (*models.JobApplication, error) {
	if resume.Size > MaxResumeSize {
		return nil, errFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(resume.Filename))
	mimeType, ok := allowedResumeTypes[ext]
	if !ok {
		return nil, errInvalidFileType
	}

	storedName := uuid.New().String() + ext
	storedPath := filepath.Join(s.uploadDir, storedName)
	if err := s.saveResume(resume, storedPath); err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	app := models.JobApplication{
		JobID:      dto.JobID,
		JobTitle:   dto.JobTitle,
		FullName:   dto.FullName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		CoverNote:  dto.CoverNote,
		ResumePath: storedPath,
		ResumeName: filepath.Base(resume.Filename),
		ResumeMime: mimeType,
		ResumeSize: resume.Size,
		SourceURL:  dto.SourceURL,
		Status:     models.ApplicationStatusReceived,
	}
	if err := s.db.Create(&app).Error; err != nil {
		os.Remove(storedPath)
		return nil, err
	}
	return &app, nil
}

func (s *Service) saveResume(resume *multipart.FileHeader, dst string) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return err
	}
	src, err := resume.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func (s *Service) List(q pagination.Query, status string) ([]models.JobApplication, response.Pagination, error) {
	query := s.db.Model(&models.JobApplication{}).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var apps []models.JobApplication
	page, err := pagination.Paginate(query, q, &apps)
	return apps, page, err
}

func (s *Service) Get(id uint) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := s.db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (s *Service) UpdateStatus(id uint, status string) (*models.JobApplication, error) {
	app, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(app).Update("status", status).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// Delete removes the row and the stored resume. A missing file on disk is
// not an error.
func (s *Service) Delete(id uint) error {
	app, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(app).Error; err != nil {
		return err
	}
	if app.ResumePath != "" {
		if err := os.Remove(app.ResumePath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
