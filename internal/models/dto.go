package models

import (
	"time"

	"alfredoptarigan/resume-ats/internal/ats"
)

type UploadResponse struct {
	ID           string       `json:"id"`
	Filename     string       `json:"filename"`
	OriginalName string       `json:"original_name"`
	FileType     string       `json:"file_type"`
	Status       ResumeStatus `json:"status"`
}

// AnalyzeRequest carries either a stored résumé or raw résumé text, and either a
// stored job or an inline job description. Inline fields override the job's.
type AnalyzeRequest struct {
	ResumeID        string   `json:"resume_id"`
	ResumeText      string   `json:"resume_text"`
	JobID           string   `json:"job_id"`
	JobDescription  string   `json:"job_description"`
	JobTitle        string   `json:"job_title"`
	CompanyName     string   `json:"company_name"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	ExperienceLevel string   `json:"experience_level"`
}

type CreateJobRequest struct {
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	ExperienceLevel string   `json:"experience_level"`
}

// JobMatch is one recommended posting for a résumé.
type JobMatch struct {
	JobID           string   `json:"job_id"`
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	ATSScore        int      `json:"ats_score"`
	SemanticScore   *float32 `json:"semantic_score,omitempty"`
	StrongKeywords  []string `json:"strong_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

type MatchResponse struct {
	ResumeID string     `json:"resume_id"`
	Matches  []JobMatch `json:"matches"`
}

// PairMatch is the full engine result for one résumé against one job.
type PairMatch struct {
	ResumeID        string               `json:"resume_id"`
	JobID           string               `json:"job_id"`
	Title           string               `json:"title"`
	CompanyName     string               `json:"company_name"`
	ATSScore        int                  `json:"ats_score"`
	StrongKeywords  []string             `json:"strong_keywords"`
	MissingKeywords []string             `json:"missing_keywords"`
	Suggestions     []string             `json:"suggestions"`
	Detailed        ats.DetailedAnalysis `json:"detailed_analysis"`
}

// CandidateMatch is one of the caller's résumés scored against a job.
type CandidateMatch struct {
	ResumeID         string   `json:"resume_id"`
	OriginalFileName string   `json:"original_filename"`
	ATSScore         int      `json:"ats_score"`
	StrongKeywords   []string `json:"strong_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
}

type CandidatesResponse struct {
	JobID      string           `json:"job_id"`
	Candidates []CandidateMatch `json:"candidates"`
}

type CoachingResponse struct {
	AnalysisID string          `json:"analysis_id"`
	ATSScore   int             `json:"ats_score"`
	Coaching   *CoachingReport `json:"coaching"`
}

// AnalysisSummary is the list view of an analysis.
type AnalysisSummary struct {
	ID          string               `json:"id"`
	JobTitle    string               `json:"job_title"`
	CompanyName string               `json:"company_name"`
	ATSScore    int                  `json:"ats_score"`
	Detailed    ats.DetailedAnalysis `json:"detailed_analysis"`
	CreatedAt   time.Time            `json:"created_at"`
}

func (a *Analysis) Summary() AnalysisSummary {
	return AnalysisSummary{
		ID:          a.ID.String(),
		JobTitle:    a.JobTitle,
		CompanyName: a.CompanyName,
		ATSScore:    a.ATSScore,
		Detailed:    a.Detailed.Data(),
		CreatedAt:   a.CreatedAt,
	}
}

// CoachingReport is the LLM narrative built on top of a stored analysis.
type CoachingReport struct {
	Summary         string          `json:"summary"`
	PriorityActions []string        `json:"priority_actions"`
	BulletRewrites  []BulletRewrite `json:"bullet_rewrites"`
}

type BulletRewrite struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
}
