package services

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
)

type fakeResumeRepo struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*models.Resume
	textErr error
}

func newFakeResumeRepo(resumes ...*models.Resume) *fakeResumeRepo {
	r := &fakeResumeRepo{resumes: make(map[uuid.UUID]*models.Resume)}
	for _, res := range resumes {
		r.resumes[res.ID] = res
	}
	return r
}

func (r *fakeResumeRepo) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	r.resumes[resume.ID] = resume
	return nil
}

func (r *fakeResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeResumeRepo) FindForUser(userID string, id uuid.UUID) (*models.Resume, error) {
	res, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if res.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return res, nil
}

func (r *fakeResumeRepo) ListByUser(userID string) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, res := range r.resumes {
		if res.UserID == userID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *fakeResumeRepo) ListCompleted(userID string, limit int) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, res := range r.resumes {
		if res.UserID == userID && res.Status == models.StatusCompleted && (limit <= 0 || len(out) < limit) {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *fakeResumeRepo) Delete(userID string, id uuid.UUID) error {
	if _, err := r.FindForUser(userID, id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resumes, id)
	return nil
}

func (r *fakeResumeRepo) UpdateStatus(id uuid.UUID, status models.ResumeStatus) error {
	return r.with(id, func(res *models.Resume) { res.Status = status })
}

func (r *fakeResumeRepo) UpdateText(id uuid.UUID, text string, wordCount int) error {
	if r.textErr != nil {
		return r.textErr
	}
	return r.with(id, func(res *models.Resume) {
		res.Status = models.StatusCompleted
		res.RawText = &text
		res.WordCount = wordCount
	})
}

func (r *fakeResumeRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.with(id, func(res *models.Resume) {
		res.Status = models.StatusFailed
		res.ErrorMessage = &errorMsg
	})
}

func (r *fakeResumeRepo) FindPending(limit int) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, res := range r.resumes {
		if res.Status == models.StatusPending && len(out) < limit {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *fakeResumeRepo) with(id uuid.UUID, fn func(*models.Resume)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	fn(res)
	return nil
}

func (r *fakeResumeRepo) get(id uuid.UUID) models.Resume {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.resumes[id]
}

type fakeJobRepo struct {
	jobs []models.Job
}

func (r *fakeJobRepo) Create(job *models.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	r.jobs = append(r.jobs, *job)
	return nil
}

func (r *fakeJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			j := r.jobs[i]
			return &j, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeJobRepo) FindByIDs(ids []uuid.UUID) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.IsActive && slices.Contains(ids, j.ID) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListActive(limit int) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.IsActive && (limit <= 0 || len(out) < limit) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListByPoster(userID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.PostedBy == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) FindForPoster(userID string, id uuid.UUID) (*models.Job, error) {
	j, err := r.FindByID(id)
	if err != nil || j.PostedBy != userID {
		return nil, repositories.ErrNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) Update(job *models.Job) error {
	for i := range r.jobs {
		if r.jobs[i].ID == job.ID {
			r.jobs[i] = *job
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeJobRepo) Deactivate(userID string, id uuid.UUID) error {
	for i := range r.jobs {
		if r.jobs[i].ID == id && r.jobs[i].PostedBy == userID {
			r.jobs[i].IsActive = false
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeAnalysisRepo struct {
	analyses []*models.Analysis
}

func (r *fakeAnalysisRepo) Create(a *models.Analysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.analyses = append(r.analyses, a)
	return nil
}

func (r *fakeAnalysisRepo) FindForUser(userID string, id uuid.UUID) (*models.Analysis, error) {
	for _, a := range r.analyses {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAnalysisRepo) ListByUser(userID string) ([]models.Analysis, error) {
	var out []models.Analysis
	for _, a := range r.analyses {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnalysisRepo) Delete(userID string, id uuid.UUID) error {
	for i, a := range r.analyses {
		if a.ID == id && a.UserID == userID {
			r.analyses = slices.Delete(r.analyses, i, i+1)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// fakeEmbedder derives a vector from the text length.
type fakeEmbedder struct {
	calls int
	err   error
}

func (e *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []float32{float32(len(text)), 1}, nil
}

type fakeStore struct {
	chunks  []JobChunk
	deleted []string
	hits    []ChunkHit
	limit   int
	err     error
}

func (s *fakeStore) InitCollection(context.Context) error { return nil }

func (s *fakeStore) Upsert(_ context.Context, chunks []JobChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunk and vector count differ")
	}
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *fakeStore) Search(_ context.Context, _ []float32, limit int) ([]ChunkHit, error) {
	s.limit = limit
	return s.hits, s.err
}

func (s *fakeStore) DeleteJob(_ context.Context, jobID string) error {
	s.deleted = append(s.deleted, jobID)
	s.chunks = slices.DeleteFunc(s.chunks, func(c JobChunk) bool { return c.JobID == jobID })
	return nil
}

type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (g *fakeGenerator) GenerateTextWithRetry(_ context.Context, prompt string, _ float32, _ int) (string, error) {
	g.prompt = prompt
	return g.response, g.err
}

type fakeIndex struct {
	hits []JobCandidate
	err  error
}

func (x *fakeIndex) IndexJob(context.Context, *models.Job) error { return nil }
func (x *fakeIndex) RemoveJob(context.Context, uuid.UUID) error { return nil }
func (x *fakeIndex) SearchJobs(context.Context, string, int) ([]JobCandidate, error) {
	return x.hits, x.err
}

func completedResume(userID, text string) *models.Resume {
	return &models.Resume{
		ID:       uuid.New(),
		UserID:   userID,
		Filename: "cv.txt",
		Status:   models.StatusCompleted,
		RawText:  &text,
	}
}
