package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/ats"
	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
)

// ErrResumeNotReady is returned when a stored résumé has no extracted text yet.
var ErrResumeNotReady = errors.New("resume is not processed yet")

// AnalysisService runs the scoring engine and stores its results per user.
type AnalysisService interface {
	Analyze(ctx context.Context, userID string, req *models.AnalyzeRequest) (*models.Analysis, error)
	Get(userID string, id uuid.UUID) (*models.Analysis, error)
	List(userID string) ([]models.Analysis, error)
	Delete(userID string, id uuid.UUID) error
	Export(userID string, w io.Writer) error
}

type analysisService struct {
	analyzer     *ats.Analyzer
	analysisRepo repositories.AnalysisRepository
	resumeRepo   repositories.ResumeRepository
	jobRepo      repositories.JobRepository
}

func NewAnalysisService(
	analyzer *ats.Analyzer,
	analysisRepo repositories.AnalysisRepository,
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
) AnalysisService {
	return &analysisService{
		analyzer:     analyzer,
		analysisRepo: analysisRepo,
		resumeRepo:   resumeRepo,
		jobRepo:      jobRepo,
	}
}

func (s *analysisService) Analyze(ctx context.Context, userID string, req *models.AnalyzeRequest) (*models.Analysis, error) {
	resumeText, resumeID, err := s.resolveResume(userID, req)
	if err != nil {
		return nil, err
	}
	job, jobID, company, err := s.resolveJob(req)
	if err != nil {
		return nil, err
	}

	res, err := s.analyzer.Analyze(resumeText, job)
	if err != nil {
		return nil, err
	}

	record := models.NewAnalysis(userID, res)
	record.ResumeID = resumeID
	record.JobID = jobID
	record.JobTitle = job.Title
	record.CompanyName = company
	record.JobDescription = job.Text
	record.ResumeText = resumeText

	if err := s.analysisRepo.Create(record); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "✅ analysis stored",
		"analysis_id", record.ID, "user_id", userID, "ats_score", record.ATSScore,
		"strong", len(res.StrongKeywords), "missing", len(res.MissingKeywords))
	return record, nil
}

func (s *analysisService) resolveResume(userID string, req *models.AnalyzeRequest) (string, *uuid.UUID, error) {
	if req.ResumeID == "" {
		if strings.TrimSpace(req.ResumeText) == "" {
			return "", nil, fmt.Errorf("%w: resume_id or resume_text is required", ats.ErrInvalidInput)
		}
		return req.ResumeText, nil, nil
	}

	id, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid resume_id", ats.ErrInvalidInput)
	}
	resume, err := s.resumeRepo.FindForUser(userID, id)
	if err != nil {
		return "", nil, err
	}
	if resume.Status != models.StatusCompleted {
		return "", nil, fmt.Errorf("%w: status is %s", ErrResumeNotReady, resume.Status)
	}
	return resume.Text(), &resume.ID, nil
}

// resolveJob merges a stored job with inline request fields. Non-empty inline
// fields take precedence.
func (s *analysisService) resolveJob(req *models.AnalyzeRequest) (ats.JobDescription, *uuid.UUID, string, error) {
	var job ats.JobDescription
	var jobID *uuid.UUID
	company := req.CompanyName

	if req.JobID != "" {
		id, err := uuid.Parse(req.JobID)
		if err != nil {
			return job, nil, "", fmt.Errorf("%w: invalid job_id", ats.ErrInvalidInput)
		}
		stored, err := s.jobRepo.FindByID(id)
		if err != nil {
			return job, nil, "", err
		}
		job = stored.JobDescription()
		jobID = &stored.ID
		if company == "" {
			company = stored.CompanyName
		}
	}

	if req.JobDescription != "" {
		job.Text = req.JobDescription
	}
	if req.JobTitle != "" {
		job.Title = req.JobTitle
	}
	if len(req.RequiredSkills) > 0 {
		job.RequiredSkills = req.RequiredSkills
	}
	if len(req.PreferredSkills) > 0 {
		job.PreferredSkills = req.PreferredSkills
	}
	if req.ExperienceLevel != "" {
		job.ExperienceLevel = req.ExperienceLevel
	}
	return job, jobID, company, nil
}

func (s *analysisService) Get(userID string, id uuid.UUID) (*models.Analysis, error) {
	return s.analysisRepo.FindForUser(userID, id)
}

func (s *analysisService) List(userID string) ([]models.Analysis, error) {
	return s.analysisRepo.ListByUser(userID)
}

func (s *analysisService) Delete(userID string, id uuid.UUID) error {
	return s.analysisRepo.Delete(userID, id)
}

func (s *analysisService) Export(userID string, w io.Writer) error {
	analyses, err := s.analysisRepo.ListByUser(userID)
	if err != nil {
		return err
	}
	return ExportAnalyses(analyses, w)
}
