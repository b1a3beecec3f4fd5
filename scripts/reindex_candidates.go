package main

import (
	"context"
	"log"

	"hirelytics/backend/internal/config"
	"hirelytics/backend/internal/models"
	"hirelytics/backend/internal/repositories"
	"hirelytics/backend/internal/services"
)

// Backfills the Qdrant CV index from the database, e.g. after the collection
// was dropped or the embedding model changed.
func main() {
	log.Println("🚀 Starting candidate reindex...")

	cfg := config.Load()

	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required for reindexing")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	gemini, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	indexer, err := services.NewCandidateIndexer(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		gemini,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := indexer.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)
	jobs, err := jobRepo.FindAllWithCandidates()
	if err != nil {
		log.Fatalf("❌ Failed to load jobs: %v", err)
	}

	ctx := context.Background()
	indexed, skipped := 0, 0

	for _, job := range jobs {
		for i := range job.Candidates {
			candidate := &job.Candidates[i]
			if candidate.Status != models.StatusCompleted || candidate.CVText == "" {
				skipped++
				continue
			}

			if err := indexer.IndexCandidate(ctx, candidate); err != nil {
				log.Printf("⚠️  Failed to index candidate %s: %v\n", candidate.ID, err)
				skipped++
				continue
			}

			indexed++
			log.Printf("✅ Indexed candidate %s (%s)\n", candidate.ID, candidate.Name)
		}
	}

	log.Printf("🎉 Reindex complete: %d indexed, %d skipped\n", indexed, skipped)
}
