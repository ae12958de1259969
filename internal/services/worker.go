package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats/internal/models"
	"alfredoptarigan/resume-ats/internal/repositories"
)

// pollBatchSize bounds how many pending résumés one poll picks up.
const pollBatchSize = 10

type Worker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(resumeID uuid.UUID)
}

// ResumeProcessor extracts the text of one uploaded résumé.
type ResumeProcessor interface {
	Process(ctx context.Context, resumeID uuid.UUID) error
}

type resumeProcessor struct {
	resumeRepo repositories.ResumeRepository
	extractor  TextExtractor
}

func NewResumeProcessor(resumeRepo repositories.ResumeRepository, extractor TextExtractor) ResumeProcessor {
	return &resumeProcessor{resumeRepo: resumeRepo, extractor: extractor}
}

// Process moves a résumé from pending through processing to completed or failed.
func (p *resumeProcessor) Process(ctx context.Context, resumeID uuid.UUID) error {
	resume, err := p.resumeRepo.FindByID(resumeID)
	if err != nil {
		return err
	}
	if resume.Status == models.StatusCompleted {
		return nil
	}
	if err := p.resumeRepo.UpdateStatus(resumeID, models.StatusProcessing); err != nil {
		return err
	}

	text, err := p.extractor.ExtractText(resume.FilePath)
	if err != nil {
		if uerr := p.resumeRepo.UpdateError(resumeID, err.Error()); uerr != nil {
			log.Printf("⚠️  Failed to record error for resume %s: %v\n", resumeID, uerr)
		}
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	if err := p.resumeRepo.UpdateText(resumeID, text, len(strings.Fields(text))); err != nil {
		if uerr := p.resumeRepo.UpdateError(resumeID, err.Error()); uerr != nil {
			log.Printf("⚠️  Failed to record error for resume %s: %v\n", resumeID, uerr)
		}
		return fmt.Errorf("failed to store resume text: %w", err)
	}
	return nil
}

type worker struct {
	resumeRepo   repositories.ResumeRepository
	processor    ResumeProcessor
	queue        chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once

	mu       sync.Mutex
	inFlight map[uuid.UUID]bool
}

func NewWorker(
	resumeRepo repositories.ResumeRepository,
	processor ResumeProcessor,
	concurrency int,
	queueSize int,
	pollInterval time.Duration,
) Worker {
	return &worker{
		resumeRepo:   resumeRepo,
		processor:    processor,
		queue:        make(chan uuid.UUID, max(queueSize, 1)),
		concurrency:  max(concurrency, 1),
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		inFlight:     make(map[uuid.UUID]bool),
	}
}

func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting resume worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processResumes(ctx, i+1)
	}

	if w.pollInterval > 0 {
		w.wg.Add(1)
		go w.pollPending(ctx)
	}

	log.Println("✅ Resume worker started successfully")
}

func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping resume worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Resume worker stopped")
	})
}

// Enqueue schedules a résumé unless it is already queued or running. It never
// blocks.
func (w *worker) Enqueue(resumeID uuid.UUID) {
	w.mu.Lock()
	if w.inFlight[resumeID] {
		w.mu.Unlock()
		return
	}
	w.inFlight[resumeID] = true
	w.mu.Unlock()

	select {
	case w.queue <- resumeID:
		log.Printf("📥 Resume %s enqueued\n", resumeID)
	case <-w.stopChan:
		w.done(resumeID)
		log.Printf("⚠️  Worker stopped, cannot enqueue resume %s\n", resumeID)
	default:
		// the poller picks it up once the queue drains
		w.done(resumeID)
		log.Printf("⚠️  Queue full, resume %s left pending\n", resumeID)
	}
}

func (w *worker) done(resumeID uuid.UUID) {
	w.mu.Lock()
	delete(w.inFlight, resumeID)
	w.mu.Unlock()
}

func (w *worker) processResumes(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case resumeID := <-w.queue:
			if err := w.processor.Process(ctx, resumeID); err != nil {
				log.Printf("❌ Worker #%d failed to process resume %s: %v\n", workerID, resumeID, err)
			} else {
				log.Printf("✅ Worker #%d processed resume %s\n", workerID, resumeID)
			}
			w.done(resumeID)
		}
	}
}

func (w *worker) pollPending(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.resumeRepo.FindPending(pollBatchSize)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending resumes: %v\n", err)
				continue
			}
			if len(pending) > 0 {
				log.Printf("📋 Found %d pending resumes\n", len(pending))
			}
			for _, r := range pending {
				w.Enqueue(r.ID)
			}
		}
	}
}
