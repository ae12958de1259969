package models

import (
	"time"

	"github.com/google/uuid"
)

type ResumeStatus string

const (
	StatusPending    ResumeStatus = "pending"
	StatusProcessing ResumeStatus = "processing"
	StatusCompleted  ResumeStatus = "completed"
	StatusFailed     ResumeStatus = "failed"
)

// Resume is an uploaded résumé file and, once processed, its extracted text.
type Resume struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           string       `gorm:"type:text;not null;index" json:"user_id"`
	Filename         string       `gorm:"type:text" json:"filename"`
	OriginalFileName string       `gorm:"type:text" json:"original_filename"`
	FileType         string       `gorm:"type:text" json:"file_type"`
	FilePath         string       `gorm:"type:text" json:"-"`
	FileSize         int64        `json:"file_size"`
	Status           ResumeStatus `gorm:"not null;default:'pending'" json:"status"`
	RawText          *string      `gorm:"type:text" json:"raw_text,omitempty"`
	WordCount        int          `json:"word_count"`
	ErrorMessage     *string      `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}

// Text returns the extracted text, or "" while the résumé is not processed.
func (r *Resume) Text() string {
	if r.RawText == nil {
		return ""
	}
	return *r.RawText
}
