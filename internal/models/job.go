package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/resume-ats/internal/ats"
)

// Job is a posting that résumés can be analyzed and matched against.
type Job struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PostedBy        string                      `gorm:"type:text;index" json:"posted_by"`
	Title           string                      `gorm:"type:text;not null" json:"title"`
	CompanyName     string                      `gorm:"type:text" json:"company_name"`
	Location        string                      `gorm:"type:text" json:"location"`
	Description     string                      `gorm:"type:text;not null" json:"description"`
	RequiredSkills  datatypes.JSONSlice[string] `json:"required_skills"`
	PreferredSkills datatypes.JSONSlice[string] `json:"preferred_skills"`
	ExperienceLevel string                      `gorm:"type:text" json:"experience_level"`
	IsActive        bool                        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time                   `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// JobDescription converts the posting into engine input.
func (j *Job) JobDescription() ats.JobDescription {
	return ats.JobDescription{
		Title:           j.Title,
		Text:            j.Description,
		RequiredSkills:  j.RequiredSkills,
		PreferredSkills: j.PreferredSkills,
		ExperienceLevel: j.ExperienceLevel,
	}
}

// Apply copies the non-empty fields of req onto the posting.
func (j *Job) Apply(req *CreateJobRequest) {
	if req.Title != "" {
		j.Title = req.Title
	}
	if req.CompanyName != "" {
		j.CompanyName = req.CompanyName
	}
	if req.Location != "" {
		j.Location = req.Location
	}
	if req.Description != "" {
		j.Description = req.Description
	}
	if req.RequiredSkills != nil {
		j.RequiredSkills = req.RequiredSkills
	}
	if req.PreferredSkills != nil {
		j.PreferredSkills = req.PreferredSkills
	}
	if req.ExperienceLevel != "" {
		j.ExperienceLevel = req.ExperienceLevel
	}
}
