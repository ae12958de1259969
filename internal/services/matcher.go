package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/ats"
	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
)

// Matcher pairs stored résumés with job postings.
type Matcher interface {
	// Match recommends active jobs for one résumé.
	Match(ctx context.Context, userID string, resumeID uuid.UUID, limit int) (*models.MatchResponse, error)
	// MatchJob scores one résumé against one active job.
	MatchJob(ctx context.Context, userID string, resumeID, jobID uuid.UUID) (*models.PairMatch, error)
	// RankCandidates scores the caller's completed résumés against one active job.
	RankCandidates(ctx context.Context, userID string, jobID uuid.UUID, limit int) (*models.CandidatesResponse, error)
}

type matcher struct {
	analyzer   *ats.Analyzer
	resumeRepo repositories.ResumeRepository
	jobRepo    repositories.JobRepository
	index      JobIndex
	candidates int
}

// NewMatcher builds a Matcher. index may be nil, in which case every active job
// up to the candidate limit is scored.
func NewMatcher(
	analyzer *ats.Analyzer,
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobRepository,
	index JobIndex,
	candidates int,
) Matcher {
	return &matcher{
		analyzer:   analyzer,
		resumeRepo: resumeRepo,
		jobRepo:    jobRepo,
		index:      index,
		candidates: candidates,
	}
}

func (m *matcher) Match(ctx context.Context, userID string, resumeID uuid.UUID, limit int) (*models.MatchResponse, error) {
	resume, err := m.readyResume(userID, resumeID)
	if err != nil {
		return nil, err
	}

	jobs, semantic, err := m.candidateJobs(ctx, resume.Text())
	if err != nil {
		return nil, err
	}

	matches := make([]models.JobMatch, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		res, err := m.analyzer.Analyze(resume.Text(), job.JobDescription())
		if err != nil {
			if errors.Is(err, ats.ErrEmptyKeywordSet) || errors.Is(err, ats.ErrInputTooLarge) {
				slog.DebugContext(ctx, "skipping job", "job_id", job.ID, "error", err)
				continue
			}
			return nil, err
		}
		match := models.JobMatch{
			JobID:           job.ID.String(),
			Title:           job.Title,
			CompanyName:     job.CompanyName,
			ATSScore:        res.ATSScore,
			StrongKeywords:  res.StrongKeywords,
			MissingKeywords: res.MissingKeywords,
		}
		if s, ok := semantic[job.ID]; ok {
			match.SemanticScore = &s
		}
		matches = append(matches, match)
	}

	slices.SortStableFunc(matches, func(a, b models.JobMatch) int {
		if c := cmp.Compare(b.ATSScore, a.ATSScore); c != 0 {
			return c
		}
		return cmp.Compare(semanticOf(b), semanticOf(a))
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return &models.MatchResponse{ResumeID: resume.ID.String(), Matches: matches}, nil
}

func (m *matcher) MatchJob(ctx context.Context, userID string, resumeID, jobID uuid.UUID) (*models.PairMatch, error) {
	resume, err := m.readyResume(userID, resumeID)
	if err != nil {
		return nil, err
	}
	job, err := m.activeJob(jobID)
	if err != nil {
		return nil, err
	}

	res, err := m.analyzer.Analyze(resume.Text(), job.JobDescription())
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "✅ resume matched", "resume_id", resume.ID, "job_id", job.ID, "ats_score", res.ATSScore)

	return &models.PairMatch{
		ResumeID:        resume.ID.String(),
		JobID:           job.ID.String(),
		Title:           job.Title,
		CompanyName:     job.CompanyName,
		ATSScore:        res.ATSScore,
		StrongKeywords:  res.StrongKeywords,
		MissingKeywords: res.MissingKeywords,
		Suggestions:     res.Suggestions,
		Detailed:        res.Detailed,
	}, nil
}

func (m *matcher) RankCandidates(ctx context.Context, userID string, jobID uuid.UUID, limit int) (*models.CandidatesResponse, error) {
	job, err := m.activeJob(jobID)
	if err != nil {
		return nil, err
	}
	resumes, err := m.resumeRepo.ListCompleted(userID, m.candidates)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.CandidateMatch, 0, len(resumes))
	for i := range resumes {
		r := &resumes[i]
		res, err := m.analyzer.Analyze(r.Text(), job.JobDescription())
		if err != nil {
			if errors.Is(err, ats.ErrEmptyKeywordSet) {
				return nil, err
			}
			if errors.Is(err, ats.ErrInvalidInput) || errors.Is(err, ats.ErrInputTooLarge) {
				slog.DebugContext(ctx, "skipping resume", "resume_id", r.ID, "error", err)
				continue
			}
			return nil, err
		}
		candidates = append(candidates, models.CandidateMatch{
			ResumeID:         r.ID.String(),
			OriginalFileName: r.OriginalFileName,
			ATSScore:         res.ATSScore,
			StrongKeywords:   res.StrongKeywords,
			MissingKeywords:  res.MissingKeywords,
		})
	}

	slices.SortStableFunc(candidates, func(a, b models.CandidateMatch) int {
		return cmp.Compare(b.ATSScore, a.ATSScore)
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return &models.CandidatesResponse{JobID: job.ID.String(), Candidates: candidates}, nil
}

func (m *matcher) readyResume(userID string, resumeID uuid.UUID) (*models.Resume, error) {
	resume, err := m.resumeRepo.FindForUser(userID, resumeID)
	if err != nil {
		return nil, err
	}
	if resume.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrResumeNotReady, resume.Status)
	}
	return resume, nil
}

// activeJob hides deactivated postings behind ErrNotFound.
func (m *matcher) activeJob(id uuid.UUID) (*models.Job, error) {
	job, err := m.jobRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, fmt.Errorf("job %s: %w", id, repositories.ErrNotFound)
	}
	return job, nil
}

// candidateJobs recalls jobs through the vector index when available and falls
// back to the newest active jobs otherwise.
func (m *matcher) candidateJobs(ctx context.Context, resumeText string) ([]models.Job, map[uuid.UUID]float32, error) {
	if m.index != nil {
		hits, err := m.index.SearchJobs(ctx, resumeText, m.candidates)
		if err == nil {
			ids := make([]uuid.UUID, len(hits))
			scores := make(map[uuid.UUID]float32, len(hits))
			for i, h := range hits {
				ids[i] = h.JobID
				scores[h.JobID] = h.Score
			}
			jobs, err := m.jobRepo.FindByIDs(ids)
			if err != nil {
				return nil, nil, err
			}
			if len(jobs) > 0 {
				return jobs, scores, nil
			}
		} else {
			slog.WarnContext(ctx, "⚠️ semantic job search failed, falling back to recent jobs", "error", err)
		}
	}

	jobs, err := m.jobRepo.ListActive(m.candidates)
	if err != nil {
		return nil, nil, err
	}
	return jobs, nil, nil
}

func semanticOf(m models.JobMatch) float32 {
	if m.SemanticScore == nil {
		return 0
	}
	return *m.SemanticScore
}
