package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/models"
)

// JobCandidate is a job recalled by semantic search, with its best chunk score.
type JobCandidate struct {
	JobID uuid.UUID
	Score float32
}

// JobIndex keeps job postings searchable by résumé similarity.
type JobIndex interface {
	IndexJob(ctx context.Context, job *models.Job) error
	RemoveJob(ctx context.Context, jobID uuid.UUID) error
	SearchJobs(ctx context.Context, resumeText string, limit int) ([]JobCandidate, error)
}

type jobIndex struct {
	embedder Embedder
	store    VectorStore
	chunker  TextChunker
}

func NewJobIndex(embedder Embedder, store VectorStore, chunker TextChunker) JobIndex {
	return &jobIndex{embedder: embedder, store: store, chunker: chunker}
}

// JobDocument renders the searchable text of a posting.
func JobDocument(job *models.Job) string {
	var b strings.Builder
	b.WriteString(job.Title)
	if job.CompanyName != "" {
		b.WriteString(" at ")
		b.WriteString(job.CompanyName)
	}
	b.WriteString("\n\n")
	if len(job.RequiredSkills) > 0 {
		b.WriteString("Required skills: " + strings.Join(job.RequiredSkills, ", ") + "\n")
	}
	if len(job.PreferredSkills) > 0 {
		b.WriteString("Preferred skills: " + strings.Join(job.PreferredSkills, ", ") + "\n")
	}
	if job.ExperienceLevel != "" {
		b.WriteString("Experience level: " + job.ExperienceLevel + "\n")
	}
	b.WriteString("\n")
	b.WriteString(job.Description)
	return b.String()
}

// IndexJob replaces every stored chunk of the job.
func (x *jobIndex) IndexJob(ctx context.Context, job *models.Job) error {
	chunks := x.chunker.ChunkText(JobDocument(job), DefaultChunkSize, DefaultChunkOverlap)
	if err := x.store.DeleteJob(ctx, job.ID.String()); err != nil {
		return err
	}

	items := make([]JobChunk, 0, len(chunks))
	vectors := make([][]float32, 0, len(chunks))
	for i, text := range chunks {
		vec, err := x.embedder.GenerateEmbedding(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of job %s: %w", i, job.ID, err)
		}
		items = append(items, JobChunk{
			PointID: chunkPointID(job.ID, i),
			JobID:   job.ID.String(),
			Index:   i,
			Title:   job.Title,
			Text:    text,
		})
		vectors = append(vectors, vec)
	}
	return x.store.Upsert(ctx, items, vectors)
}

func (x *jobIndex) RemoveJob(ctx context.Context, jobID uuid.UUID) error {
	return x.store.DeleteJob(ctx, jobID.String())
}

// SearchJobs returns up to limit distinct jobs ordered by best chunk score.
func (x *jobIndex) SearchJobs(ctx context.Context, resumeText string, limit int) ([]JobCandidate, error) {
	vec, err := x.embedder.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed resume: %w", err)
	}

	// several chunks of one job can rank together
	hits, err := x.store.Search(ctx, vec, limit*3)
	if err != nil {
		return nil, err
	}

	best := make(map[uuid.UUID]float32)
	for _, h := range hits {
		id, err := uuid.Parse(h.JobID)
		if err != nil {
			continue
		}
		if s, ok := best[id]; !ok || h.Score > s {
			best[id] = h.Score
		}
	}

	out := make([]JobCandidate, 0, len(best))
	for id, s := range best {
		out = append(out, JobCandidate{JobID: id, Score: s})
	}
	slices.SortFunc(out, func(a, b JobCandidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.JobID.String(), b.JobID.String())
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// chunkPointID derives a stable point ID so reindexing overwrites in place.
func chunkPointID(jobID uuid.UUID, index int) string {
	return uuid.NewSHA1(jobID, []byte(strconv.Itoa(index))).String()
}
