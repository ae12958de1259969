package main

import (
	"context"
	"flag"
	"log"

	"alfredoptarigan/resume-ats/internal/config"
	"alfredoptarigan/resume-ats/internal/repositories"
	"alfredoptarigan/resume-ats/internal/services"
)

// Reindexes every active job posting into the vector store.
func main() {
	limit := flag.Int("limit", 0, "maximum number of jobs to index (0 = all)")
	flag.Parse()

	log.Println("🚀 Starting job ingestion...")

	cfg := config.Load()
	config.InitLogger(cfg.Log)
	ctx := context.Background()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, cfg.Worker.RetryInitialDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	store, err := services.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	if err := store.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	index := services.NewJobIndex(geminiService, store, services.NewTextChunker())

	jobs, err := repositories.NewJobRepository(db).ListActive(*limit)
	if err != nil {
		log.Fatalf("❌ Failed to load jobs: %v", err)
	}

	successCount, failCount := 0, 0
	for i := range jobs {
		job := &jobs[i]
		if err := index.IndexJob(ctx, job); err != nil {
			log.Printf("❌ %s (%s): %v", job.Title, job.ID, err)
			failCount++
			continue
		}
		log.Printf("✅ %s (%s)", job.Title, job.ID)
		successCount++
	}

	log.Printf("📊 Ingestion complete: %d succeeded, %d failed", successCount, failCount)
}
