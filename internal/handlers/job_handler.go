package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelytics/backend/internal/models"
	"hirelytics/backend/internal/repositories"
	"hirelytics/backend/internal/services"
)

type JobHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	storage       services.StorageService
	extractor     services.TextExtractor
	worker        services.Worker
	normalizer    *services.ResponseNormalizer
	maxFileSize   int64
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	storage services.StorageService,
	extractor services.TextExtractor,
	worker services.Worker,
	maxFileSize int64,
) *JobHandler {
	return &JobHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		storage:       storage,
		extractor:     extractor,
		worker:        worker,
		normalizer:    services.NewResponseNormalizer(),
		maxFileSize:   maxFileSize,
	}
}

// HandleCreateJob handles POST /jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	job := &models.Job{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleListJobs handles GET /jobs: every job with the display projections of
// its analyzed candidates. Candidates without a stored result are skipped.
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAllWithCandidates()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	responses := make([]models.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, h.jobResponse(&job))
	}

	return c.JSON(fiber.Map{
		"jobs": responses,
	})
}

// HandleGetJob handles GET /jobs/:id
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByIDWithCandidates(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(h.jobResponse(job))
}

// HandleAddCandidate handles POST /jobs/:id/candidates: multipart with a
// "name" field and a "cv" file. The candidate is stored pending and handed to
// the worker for background analysis.
func (h *JobHandler) HandleAddCandidate(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	file, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no CV uploaded (expected multipart field 'cv')",
		})
	}
	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storage.SaveCV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	cvText, err := h.extractor.Extract(filePath)
	if err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract CV text: %v", err),
		})
	}

	candidate := &models.Candidate{
		ID:         uuid.New(),
		JobID:      jobID,
		Name:       name,
		CVFilename: filename,
		CVText:     cvText,
		Status:     models.StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		h.storage.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create candidate record",
		})
	}

	h.worker.EnqueueCandidate(candidate.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.CandidateResponse{
		ID:     candidate.ID.String(),
		Name:   candidate.Name,
		Status: string(candidate.Status),
	})
}

func (h *JobHandler) jobResponse(job *models.Job) models.JobResponse {
	return models.JobResponse{
		ID:             job.ID.String(),
		Title:          job.Title,
		Description:    job.Description,
		CandidateCount: len(job.Candidates),
		Results:        h.normalizer.ProjectAll(job.Candidates),
	}
}
