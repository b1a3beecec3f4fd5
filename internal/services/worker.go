package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hirelytics/backend/internal/models"
	"hirelytics/backend/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueCandidate(candidateID uuid.UUID)
}

type worker struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	analyzer      AnalyzerService
	indexer       CandidateIndexer
	jobQueue      chan uuid.UUID
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewWorker(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	analyzer AnalyzerService,
	indexer CandidateIndexer,
	concurrency int,
) Worker {
	return &worker{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		analyzer:      analyzer,
		indexer:       indexer,
		jobQueue:      make(chan uuid.UUID, 100),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processCandidates(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingCandidates(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueCandidate implements Worker.
func (w *worker) EnqueueCandidate(candidateID uuid.UUID) {
	select {
	case w.jobQueue <- candidateID:
		log.Printf("📥 Candidate %s enqueued\n", candidateID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue candidate %s\n", candidateID)
	}
}

func (w *worker) processCandidates(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case candidateID := <-w.jobQueue:
			log.Printf("👷 Worker #%d analyzing candidate %s\n", workerID, candidateID)
			if err := w.analyzeCandidate(ctx, candidateID); err != nil {
				log.Printf("❌ Worker #%d failed on candidate %s: %v\n", workerID, candidateID, err)
			}
		}
	}
}

func (w *worker) analyzeCandidate(ctx context.Context, candidateID uuid.UUID) error {
	candidate, err := w.candidateRepo.FindByID(candidateID)
	if err != nil {
		return err
	}
	if candidate.Status == models.StatusCompleted {
		return nil
	}

	job, err := w.jobRepo.FindByID(candidate.JobID)
	if err != nil {
		return err
	}

	if err := w.candidateRepo.UpdateStatus(candidateID, models.StatusProcessing); err != nil {
		return err
	}

	// Never fails: degraded paths come back as mock results.
	result := w.analyzer.Analyze(ctx, job.Description, candidate.CVText, candidate.Name)

	if err := w.candidateRepo.SaveResult(candidateID, &result); err != nil {
		return err
	}
	log.Printf("✅ Candidate %s analyzed (mock=%v)\n", candidateID, result.IsMock)

	// Best-effort: the vector index never blocks the analysis pipeline.
	if w.indexer != nil {
		if err := w.indexer.IndexCandidate(ctx, candidate); err != nil {
			log.Printf("⚠️  Failed to index candidate %s: %v\n", candidateID, err)
		}
	}

	return nil
}

func (w *worker) pollPendingCandidates(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending candidates poller stopped")
			return
		case <-ticker.C:
			pending, err := w.candidateRepo.FindPending(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending candidates: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending candidates\n", len(pending))
			}

			for _, candidate := range pending {
				w.EnqueueCandidate(candidate.ID)
			}
		}
	}
}
