package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-ats/internal/ats"
	"alfredoptarigan/resume-ats/internal/config"
	"alfredoptarigan/resume-ats/internal/handlers"
	"alfredoptarigan/resume-ats/internal/repositories"
	"alfredoptarigan/resume-ats/internal/services"
)

func main() {
	cfg := config.Load()
	config.InitLogger(cfg.Log)
	log.Println("✅ Config loaded successfully")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	resumeRepo := repositories.NewResumeRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	analyzer := ats.NewAnalyzer(ats.Options{MaxInputRunes: cfg.Analysis.MaxInputChars})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Gemini and Qdrant are optional: without them coaching is off and matching
	// scores the newest active jobs instead of recalling by similarity.
	var (
		jobIndex     services.JobIndex
		coachService services.CoachService
	)
	if cfg.Gemini.Enabled() {
		geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, cfg.Worker.RetryInitialDelay)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		coachService = services.NewCoachService(analysisRepo, geminiService, cfg.Worker.RetryMaxAttempts)
		log.Println("✅ Gemini AI initialized successfully")

		jobIndex, err = initJobIndex(ctx, cfg, geminiService)
		if err != nil {
			log.Printf("⚠️  Semantic job search disabled: %v", err)
		} else {
			log.Println("✅ Qdrant initialized successfully")
		}
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set: coaching and semantic job search disabled")
	}

	analysisService := services.NewAnalysisService(analyzer, analysisRepo, resumeRepo, jobRepo)
	matcher := services.NewMatcher(analyzer, resumeRepo, jobRepo, jobIndex, cfg.Matching.Candidates)
	log.Println("✅ Services initialized successfully")

	worker := services.NewWorker(
		resumeRepo,
		services.NewResumeProcessor(resumeRepo, services.NewTextExtractor()),
		cfg.Worker.Concurrency,
		cfg.Worker.QueueSize,
		cfg.Worker.PollInterval,
	)
	worker.Start(ctx)

	resumeHandler := handlers.NewResumeHandler(
		resumeRepo,
		storageService,
		worker,
		matcher,
		cfg.Storage.MaxFileSize,
		cfg.Matching.Limit,
	)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, coachService)
	jobHandler := handlers.NewJobHandler(jobRepo, jobIndex)
	matchingHandler := handlers.NewMatchingHandler(matcher, cfg.Matching.Limit)
	log.Println("✅ Handlers initialized")

	// BodyLimit leaves room for multipart overhead on top of the largest file.
	app := fiber.New(fiber.Config{
		AppName:      "Resume ATS API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + handlers.UserHeader,
	}))

	handlers.Register(app, resumeHandler, analysisHandler, jobHandler, matchingHandler)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume ATS API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resumes",
				"GET /api/v1/resumes/:id/matches",
				"POST /api/v1/analyses",
				"GET /api/v1/analyses",
				"GET /api/v1/analyses/export",
				"GET /api/v1/analyses/:id/coaching",
				"POST /api/v1/jobs",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func initJobIndex(ctx context.Context, cfg *config.Config, embedder services.Embedder) (services.JobIndex, error) {
	store, err := services.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return nil, err
	}
	if err := store.InitCollection(ctx); err != nil {
		return nil, err
	}
	return services.NewJobIndex(embedder, store, services.NewTextChunker()), nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
