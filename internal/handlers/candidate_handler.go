package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelytics/backend/internal/models"
	"hirelytics/backend/internal/repositories"
	"hirelytics/backend/internal/services"
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
	indexer       services.CandidateIndexer
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	indexer services.CandidateIndexer,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		indexer:       indexer,
	}
}

// HandleFindSimilar handles GET /candidates/:id/similar?limit=5 — vector
// search over indexed CVs, excluding the candidate itself.
func (h *CandidateHandler) HandleFindSimilar(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	if h.indexer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Similarity search is unavailable",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	limit := 5
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}

	// Fetch one extra so the candidate itself can be filtered out.
	similar, err := h.indexer.FindSimilar(c.Context(), candidate.CVText, limit+1)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Similarity search failed",
		})
	}

	filtered := make([]models.SimilarCandidate, 0, len(similar))
	for _, match := range similar {
		if match.CandidateID == candidate.ID.String() {
			continue
		}
		filtered = append(filtered, match)
		if len(filtered) >= limit {
			break
		}
	}

	return c.JSON(fiber.Map{
		"candidate_id": candidate.ID.String(),
		"similar":      filtered,
	})
}
