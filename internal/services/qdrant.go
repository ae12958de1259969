package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

// embeddingSize matches text-embedding-004.
const embeddingSize = 768

// JobChunk is one embedded slice of a job posting.
type JobChunk struct {
	PointID string
	JobID   string
	Index   int
	Title   string
	Text    string
}

// ChunkHit is a search result from the vector store.
type ChunkHit struct {
	JobID string
	Score float32
	Text  string
}

// VectorStore persists job chunk embeddings.
type VectorStore interface {
	InitCollection(ctx context.Context) error
	Upsert(ctx context.Context, chunks []JobChunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, limit int) ([]ChunkHit, error)
	DeleteJob(ctx context.Context, jobID string) error
}

type qdrantStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantStore(urlStr, apiKey, collectionName string) (VectorStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC listens on 6334 unless the URL says otherwise
	port := 6334
	if p := parsed.Port(); p != "" && p != "6333" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     embeddingSize,
	}, nil
}

func (q *qdrantStore) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists\n", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

func (q *qdrantStore) Upsert(ctx context.Context, chunks []JobChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d != %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(chunks))
	for i, c := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(c.PointID),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"job_id":      c.JobID,
				"chunk_index": c.Index,
				"title":       c.Title,
				"text":        c.Text,
			}),
		}
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

func (q *qdrantStore) Search(ctx context.Context, vector []float32, limit int) ([]ChunkHit, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	hits := make([]ChunkHit, 0, len(points))
	for _, point := range points {
		hits = append(hits, ChunkHit{
			JobID: point.Payload["job_id"].GetStringValue(),
			Text:  point.Payload["text"].GetStringValue(),
			Score: point.Score,
		})
	}
	return hits, nil
}

func (q *qdrantStore) DeleteJob(ctx context.Context, jobID string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch("job_id", jobID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete job points: %w", err)
	}
	return nil
}
