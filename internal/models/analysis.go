package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/resume-ats/internal/ats"
)

// Analysis is a stored AnalysisResult. Rows are written once and never updated.
type Analysis struct {
	ID              uuid.UUID                                `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          string                                   `gorm:"type:text;not null;index:idx_analyses_user_created,priority:1" json:"user_id"`
	ResumeID        *uuid.UUID                               `gorm:"type:uuid" json:"resume_id,omitempty"`
	JobID           *uuid.UUID                               `gorm:"type:uuid" json:"job_id,omitempty"`
	JobTitle        string                                   `gorm:"type:text" json:"job_title"`
	CompanyName     string                                   `gorm:"type:text" json:"company_name"`
	JobDescription  string                                   `gorm:"type:text" json:"job_description"`
	ResumeText      string                                   `gorm:"type:text" json:"-"`
	ATSScore        int                                      `gorm:"not null" json:"ats_score"`
	StrongKeywords  datatypes.JSONSlice[string]              `json:"strong_keywords"`
	MissingKeywords datatypes.JSONSlice[string]              `json:"missing_keywords"`
	Suggestions     datatypes.JSONSlice[string]              `json:"suggestions"`
	Detailed        datatypes.JSONType[ats.DetailedAnalysis] `gorm:"column:detailed_analysis" json:"detailed_analysis"`
	CreatedAt       time.Time                                `gorm:"type:timestamp;default:now();index:idx_analyses_user_created,priority:2" json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// NewAnalysis builds the record for an engine result.
func NewAnalysis(userID string, res *ats.AnalysisResult) *Analysis {
	return &Analysis{
		UserID:          userID,
		ATSScore:        res.ATSScore,
		StrongKeywords:  res.StrongKeywords,
		MissingKeywords: res.MissingKeywords,
		Suggestions:     res.Suggestions,
		Detailed:        datatypes.NewJSONType(res.Detailed),
	}
}
