package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"hirelytics/backend/internal/models"
)

// TextGenerationBackend performs one external generation call. Errors may
// carry a rate-limit classification (see IsRateLimited).
type TextGenerationBackend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalyzerService scores a candidate CV against a job description. Analyze
// never fails outward: every failure path terminates in a deterministic mock
// result carrying the originating error reason.
type AnalyzerService interface {
	Analyze(ctx context.Context, jobDescription, cvText, candidateName string) models.AnalysisResult
}

type analyzerService struct {
	backend    TextGenerationBackend
	retry      *RetryPolicy
	prompts    *PromptBuilder
	normalizer *ResponseNormalizer
	mock       *MockAnalyzer
}

// NewAnalyzerService builds the orchestrator. A nil backend puts the service
// in permanent mock mode.
func NewAnalyzerService(backend TextGenerationBackend, retry *RetryPolicy) AnalyzerService {
	return &analyzerService{
		backend:    backend,
		retry:      retry,
		prompts:    NewPromptBuilder(),
		normalizer: NewResponseNormalizer(),
		mock:       NewMockAnalyzer(),
	}
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, jobDescription, cvText, candidateName string) models.AnalysisResult {
	if a.backend == nil {
		return a.mock.Produce(candidateName, DefaultMockReason)
	}

	prompt := a.prompts.BuildAnalysisPrompt(jobDescription, cvText, candidateName)

	response, err := a.retry.Execute(ctx, func() (string, error) {
		return a.backend.Generate(ctx, prompt)
	})
	if err != nil {
		log.Printf("❌ Analysis failed for %s: %v\n", candidateName, err)
		if KindOf(err) == KindQuotaExhausted {
			return a.mock.Produce(candidateName, "quota exhausted")
		}
		return a.mock.Produce(candidateName, err.Error())
	}

	raw, err := parseAnalysisResponse(response)
	if err != nil {
		log.Printf("❌ Unparseable analysis response for %s: %v\n", candidateName, err)
		return a.mock.Produce(candidateName, err.Error())
	}

	log.Printf("✅ Analysis completed for %s\n", candidateName)
	return a.normalizer.Complete(raw, candidateName)
}

func parseAnalysisResponse(text string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(extractJSON(text)), &raw); err != nil {
		return nil, &AnalysisError{
			Kind: KindMalformedResponse,
			Err:  fmt.Errorf("failed to unmarshal analysis response: %w", err),
		}
	}
	return raw, nil
}

// extractJSON strips the markdown code fences models sometimes add despite
// instructions and trims to the outermost object boundaries.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
