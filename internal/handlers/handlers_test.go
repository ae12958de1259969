package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ats/internal/ats"
	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
	"alfredoptarigan/resume-ats/internal/services"
)

type memResumes struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.Resume
}

func (r *memResumes) Create(res *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[res.ID] = *res
	return nil
}

func (r *memResumes) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &res, nil
}

func (r *memResumes) FindForUser(userID string, id uuid.UUID) (*models.Resume, error) {
	res, err := r.FindByID(id)
	if err != nil || res.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return res, nil
}

func (r *memResumes) ListByUser(userID string) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Resume{}
	for _, res := range r.byID {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memResumes) ListCompleted(userID string, _ int) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Resume
	for _, res := range r.byID {
		if res.UserID == userID && res.Status == models.StatusCompleted {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memResumes) Delete(userID string, id uuid.UUID) error {
	if _, err := r.FindForUser(userID, id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memResumes) UpdateStatus(uuid.UUID, models.ResumeStatus) error { return nil }
func (r *memResumes) UpdateText(uuid.UUID, string, int) error { return nil }
func (r *memResumes) UpdateError(uuid.UUID, string) error { return nil }
func (r *memResumes) FindPending(int) ([]models.Resume, error) { return nil, nil }

type memJobs struct {
	jobs []models.Job
}

func (r *memJobs) Create(job *models.Job) error {
	r.jobs = append(r.jobs, *job)
	return nil
}

func (r *memJobs) FindByID(id uuid.UUID) (*models.Job, error) {
	for _, j := range r.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memJobs) FindByIDs([]uuid.UUID) ([]models.Job, error) { return nil, nil }

func (r *memJobs) ListActive(int) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.IsActive {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *memJobs) ListByPoster(userID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.PostedBy == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *memJobs) FindForPoster(userID string, id uuid.UUID) (*models.Job, error) {
	j, err := r.FindByID(id)
	if err != nil || j.PostedBy != userID {
		return nil, repositories.ErrNotFound
	}
	return j, nil
}

func (r *memJobs) Update(job *models.Job) error {
	for i := range r.jobs {
		if r.jobs[i].ID == job.ID {
			r.jobs[i] = *job
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memJobs) Deactivate(userID string, id uuid.UUID) error {
	for i := range r.jobs {
		if r.jobs[i].ID == id && r.jobs[i].PostedBy == userID {
			r.jobs[i].IsActive = false
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memAnalyses struct {
	analyses []models.Analysis
}

func (r *memAnalyses) Create(a *models.Analysis) error {
	a.ID = uuid.New()
	r.analyses = append(r.analyses, *a)
	return nil
}

func (r *memAnalyses) FindForUser(userID string, id uuid.UUID) (*models.Analysis, error) {
	for _, a := range r.analyses {
		if a.ID == id && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memAnalyses) ListByUser(userID string) ([]models.Analysis, error) {
	var out []models.Analysis
	for _, a := range r.analyses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAnalyses) Delete(userID string, id uuid.UUID) error {
	for i, a := range r.analyses {
		if a.ID == id && a.UserID == userID {
			r.analyses = slices.Delete(r.analyses, i, i+1)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type recordingWorker struct {
	enqueued []uuid.UUID
}

func (w *recordingWorker) Start(context.Context) {}
func (w *recordingWorker) Stop() {}
func (w *recordingWorker) Enqueue(id uuid.UUID) { w.enqueued = append(w.enqueued, id) }

type testServer struct {
	app      *fiber.App
	resumes  *memResumes
	jobs     *memJobs
	analyses *memAnalyses
	worker   *recordingWorker
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	analyzer := ats.NewAnalyzer(ats.Options{MaxInputRunes: 2000})
	resumes := &memResumes{byID: make(map[uuid.UUID]models.Resume)}
	jobs := &memJobs{}
	analyses := &memAnalyses{}
	worker := &recordingWorker{}
	storage := services.NewStorageService(t.TempDir())

	matcher := services.NewMatcher(analyzer, resumes, jobs, nil, 50)

	app := fiber.New()
	Register(app,
		NewResumeHandler(resumes, storage, worker, matcher, 1024, 10),
		NewAnalysisHandler(services.NewAnalysisService(analyzer, analyses, resumes, jobs), nil),
		NewJobHandler(jobs, nil),
		NewMatchingHandler(matcher, 10),
	)
	return &testServer{app: app, resumes: resumes, jobs: jobs, analyses: analyses, worker: worker}
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) && len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp, out
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(UserHeader, "u1")
	return req
}

func TestHealthAndAuth(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body["error"], UserHeader)
}

func TestCreateAnalysis(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/analyses", models.AnalyzeRequest{
		ResumeText:     "Built Python services",
		JobDescription: "We need Python and SQL.",
		RequiredSkills: []string{"Python", "SQL"},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "u1", body["user_id"])
	assert.Contains(t, body, "ats_score")
	assert.Contains(t, body, "detailed_analysis")
	assert.NotContains(t, body, "resume_text")
	require.Len(t, s.analyses.analyses, 1)

	id := s.analyses.analyses[0].ID.String()
	resp, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/analyses/"+id, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := jsonRequest(http.MethodGet, "/api/v1/analyses/"+id, nil)
	req.Header.Set(UserHeader, "someone-else")
	resp, _ = s.do(t, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/analyses", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}

func TestCreateAnalysisErrorStatuses(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		req  models.AnalyzeRequest
		want int
	}{
		{"no resume", models.AnalyzeRequest{JobDescription: "Go"}, http.StatusBadRequest},
		{"blank resume text", models.AnalyzeRequest{ResumeText: "  ", JobDescription: "Go"}, http.StatusBadRequest},
		{"empty job", models.AnalyzeRequest{ResumeText: "Go developer"}, http.StatusUnprocessableEntity},
		{"job without keywords", models.AnalyzeRequest{ResumeText: "Go developer", JobDescription: "The team will help you."}, http.StatusUnprocessableEntity},
		{"resume too large", models.AnalyzeRequest{ResumeText: strings.Repeat("go ", 1000), JobDescription: "Go"}, http.StatusRequestEntityTooLarge},
		{"unknown resume", models.AnalyzeRequest{ResumeID: uuid.NewString(), JobDescription: "Go"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/analyses", tt.req))
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}

	resp, _ := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader("{")))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(UserHeader, "u1")
	resp, _ = s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResumeNotReady(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()
	s.resumes.byID[id] = models.Resume{ID: id, UserID: "u1", Status: models.StatusProcessing}

	resp, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/analyses", models.AnalyzeRequest{
		ResumeID: id.String(), JobDescription: "Go",
	}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/resumes/"+id.String()+"/matches", nil))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/resumes/"+id.String()+"/matches?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCoachingUnavailable(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(t, jsonRequest(http.MethodGet, "/api/v1/analyses/"+uuid.NewString()+"/coaching", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestExportAnalyses(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(t, jsonRequest(http.MethodGet, "/api/v1/analyses/export", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
}

func TestCreateJob(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/jobs", models.CreateJobRequest{Description: "Go"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "title is required", body["error"])

	resp, body = s.do(t, jsonRequest(http.MethodPost, "/api/v1/jobs", models.CreateJobRequest{
		Title:          "Backend Engineer",
		Description:    "Go services on Kubernetes.",
		RequiredSkills: []string{"Go"},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, body["indexed"])
	require.Len(t, s.jobs.jobs, 1)
	assert.Equal(t, "u1", s.jobs.jobs[0].PostedBy)

	resp, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/jobs/"+s.jobs.jobs[0].ID.String(), nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/jobs/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteAnalysis(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/analyses", models.AnalyzeRequest{
		ResumeText:     "Built Python services",
		JobDescription: "We need Python and SQL.",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, s.analyses.analyses, 1)
	target := "/api/v1/analyses/" + s.analyses.analyses[0].ID.String()

	req := jsonRequest(http.MethodDelete, target, nil)
	req.Header.Set(UserHeader, "someone-else")
	resp, _ = s.do(t, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Len(t, s.analyses.analyses, 1)

	resp, _ = s.do(t, jsonRequest(http.MethodDelete, target, nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, s.analyses.analyses)

	resp, _ = s.do(t, jsonRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, jsonRequest(http.MethodDelete, target, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func createJob(t *testing.T, s *testServer, req models.CreateJobRequest) string {
	t.Helper()
	resp, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/jobs", req))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return s.jobs.jobs[len(s.jobs.jobs)-1].ID.String()
}

func TestUpdateAndDeactivateJob(t *testing.T) {
	s := newTestServer(t)
	id := createJob(t, s, models.CreateJobRequest{
		Title:          "Backend Engineer",
		Description:    "Go services on Kubernetes.",
		RequiredSkills: []string{"Go"},
	})
	target := "/api/v1/jobs/" + id

	req := jsonRequest(http.MethodPut, target, models.CreateJobRequest{Title: "Hijacked"})
	req.Header.Set(UserHeader, "someone-else")
	resp, _ := s.do(t, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := s.do(t, jsonRequest(http.MethodPut, target, models.CreateJobRequest{
		Title:          "Senior Backend Engineer",
		RequiredSkills: []string{"Go", "Kafka"},
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["indexed"])
	assert.Equal(t, "Senior Backend Engineer", s.jobs.jobs[0].Title)
	assert.Equal(t, "Go services on Kubernetes.", s.jobs.jobs[0].Description)
	assert.Equal(t, []string{"Go", "Kafka"}, []string(s.jobs.jobs[0].RequiredSkills))

	req = jsonRequest(http.MethodDelete, target, nil)
	req.Header.Set(UserHeader, "someone-else")
	resp, _ = s.do(t, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.True(t, s.jobs.jobs[0].IsActive)

	resp, _ = s.do(t, jsonRequest(http.MethodDelete, target, nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.False(t, s.jobs.jobs[0].IsActive)

	resp, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/jobs", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["total"])

	resp, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/jobs/my/posted", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])

	req = jsonRequest(http.MethodGet, "/api/v1/jobs/my/posted", nil)
	req.Header.Set(UserHeader, "someone-else")
	_, body = s.do(t, req)
	assert.EqualValues(t, 0, body["total"])

	resp, _ = s.do(t, jsonRequest(http.MethodPut, "/api/v1/jobs/not-a-uuid", models.CreateJobRequest{}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMatchingRoutes(t *testing.T) {
	s := newTestServer(t)
	jobID := createJob(t, s, models.CreateJobRequest{
		Title:          "Backend Engineer",
		Description:    "Go services on Kubernetes.",
		RequiredSkills: []string{"Go", "Kubernetes"},
	})
	text := "Jane Doe\njane@example.com\n\nSkills\nGo, Kubernetes, PostgreSQL"
	resumeID := uuid.New()
	s.resumes.byID[resumeID] = models.Resume{ID: resumeID, UserID: "u1", Status: models.StatusCompleted, RawText: &text}
	pendingID := uuid.New()
	s.resumes.byID[pendingID] = models.Resume{ID: pendingID, UserID: "u1", Status: models.StatusPending}

	resp, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/matching/resume/"+resumeID.String()+"/job/"+jobID, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, jobID, body["job_id"])
	assert.Contains(t, body, "detailed_analysis")
	assert.Contains(t, body, "suggestions")

	resp, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/matching/job/"+jobID+"/candidates", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	candidates, ok := body["candidates"].([]any)
	require.True(t, ok)
	require.Len(t, candidates, 1)
	assert.Equal(t, resumeID.String(), candidates[0].(map[string]any)["resume_id"])

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"resume not ready", http.MethodPost, "/api/v1/matching/resume/" + pendingID.String() + "/job/" + jobID, http.StatusConflict},
		{"unknown job", http.MethodPost, "/api/v1/matching/resume/" + resumeID.String() + "/job/" + uuid.NewString(), http.StatusNotFound},
		{"bad resume id", http.MethodPost, "/api/v1/matching/resume/nope/job/" + jobID, http.StatusBadRequest},
		{"bad job id", http.MethodPost, "/api/v1/matching/resume/" + resumeID.String() + "/job/nope", http.StatusBadRequest},
		{"candidates bad limit", http.MethodGet, "/api/v1/matching/job/" + jobID + "/candidates?limit=0", http.StatusBadRequest},
		{"candidates unknown job", http.MethodGet, "/api/v1/matching/job/" + uuid.NewString() + "/candidates", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := s.do(t, jsonRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp, _ = s.do(t, jsonRequest(http.MethodDelete, "/api/v1/jobs/"+jobID, nil))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/matching/resume/"+resumeID.String()+"/job/"+jobID, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(UserHeader, "u1")
	return req
}

func TestUploadResume(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, uploadRequest(t, "cv.txt", "Jane Doe\nGo engineer"))
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "txt", body["file_type"])
	assert.Equal(t, "pending", body["status"])
	require.Len(t, s.worker.enqueued, 1)
	assert.Equal(t, body["id"], s.worker.enqueued[0].String())

	resp, _ = s.do(t, uploadRequest(t, "cv.exe", "MZ"))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	resp, _ = s.do(t, uploadRequest(t, "cv.txt", strings.Repeat("x", 2048)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, _ = s.do(t, jsonRequest(http.MethodDelete, "/api/v1/resumes/"+s.worker.enqueued[0].String(), nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, s.resumes.byID)
}
