package models

const ApplicationStatusReceived = "received"

// JobApplication is a careers submission with an uploaded resume.
type JobApplication struct {
	Base
	JobID      string `json:"job_id"`
	JobTitle   string `json:"job_title"`
	FullName   string `json:"full_name"   gorm:"not null"`
	Email      string `json:"email"       gorm:"not null"`
	Phone      string `json:"phone"`
	CoverNote  string `json:"cover_note"  gorm:"type:text"`
	ResumePath string `json:"resume_path"`
	ResumeName string `json:"resume_name"`
	ResumeMime string `json:"resume_mime"`
	ResumeSize int64  `json:"resume_size"`
	SourceURL  string `json:"source_url"`
	Status     string `json:"status"      gorm:"default:received"`
}

func (JobApplication) TableName() string { return "job_applications" }
