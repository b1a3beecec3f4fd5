package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelytics/backend/internal/models"
	"hirelytics/backend/internal/repositories"
	"hirelytics/backend/internal/services"
)

type AnalyzeHandler struct {
	analyzer      services.AnalyzerService
	candidateRepo repositories.CandidateRepository
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	candidateRepo repositories.CandidateRepository,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:      analyzer,
		candidateRepo: candidateRepo,
	}
}

// HandleAnalyze handles POST /analyze. The analysis itself never fails: once
// the request is well-formed the response is always a complete result, mock
// or real (availability over correctness for this call).
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.CandidateName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_name is required",
		})
	}
	if req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}
	if req.CVContent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv_content is required",
		})
	}

	result := h.analyzer.Analyze(c.Context(), req.JobDescription, req.CVContent, req.CandidateName)

	// Fire-and-forget persistence: a storage failure must not turn a
	// completed analysis into an error response.
	if req.CandidateID != "" {
		if candidateID, err := uuid.Parse(req.CandidateID); err == nil {
			if err := h.candidateRepo.SaveResult(candidateID, &result); err != nil {
				log.Printf("⚠️  Failed to persist analysis for candidate %s: %v\n", req.CandidateID, err)
			}
		} else {
			log.Printf("⚠️  Ignoring invalid candidate_id %q\n", req.CandidateID)
		}
	}

	return c.JSON(result)
}
