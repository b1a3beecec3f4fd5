package main

import (
	"context"
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

	"hirelytics/backend/internal/config"
	"hirelytics/backend/internal/handlers"
	"hirelytics/backend/internal/repositories"
	"hirelytics/backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage and extraction
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	extractor := services.NewTextExtractor()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini. Without an API key the service runs in mock mode:
	// every analysis comes back from the deterministic fallback.
	var gemini services.GeminiService
	var backend services.TextGenerationBackend
	if cfg.Gemini.APIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set - running in mock mode")
	} else {
		gemini, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Gemini, running in mock mode: %v\n", err)
		} else {
			backend = gemini
			log.Println("✅ Gemini AI initialized successfully")
		}
	}

	// Initialize the CV vector index. Unavailability degrades similarity
	// search but never analysis.
	var indexer services.CandidateIndexer
	if gemini != nil {
		indexer, err = services.NewCandidateIndexer(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			gemini,
		)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant, similarity search disabled: %v\n", err)
			indexer = nil
		} else if err := indexer.InitCollection(); err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant collection, similarity search disabled: %v\n", err)
			indexer = nil
		} else {
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	// Initialize analyzer
	retryPolicy := services.NewRetryPolicy(cfg.Analysis.MaxAttempts, cfg.Analysis.BackoffBase)
	analyzer := services.NewAnalyzerService(backend, retryPolicy)
	log.Println("✅ Analyzer service initialized")

	// Initialize worker
	worker := services.NewWorker(
		candidateRepo,
		jobRepo,
		analyzer,
		indexer,
		cfg.Worker.Concurrency,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(storageService, extractor, cfg.Storage.MaxFileSize)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, candidateRepo)
	jobHandler := handlers.NewJobHandler(
		jobRepo,
		candidateRepo,
		storageService,
		extractor,
		worker,
		cfg.Storage.MaxFileSize,
	)
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, indexer)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hirelytics API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":        "healthy",
			"backend_ready": backend != nil,
			"time":          time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload-cv", uploadHandler.HandleUploadCV)
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Post("/jobs/:id/candidates", jobHandler.HandleAddCandidate)
	api.Get("/candidates/:id/similar", candidateHandler.HandleFindSimilar)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Hirelytics API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload-cv",
				"POST /api/v1/analyze",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"POST /api/v1/jobs/:id/candidates",
				"GET /api/v1/candidates/:id/similar",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
