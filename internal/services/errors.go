package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an analysis could not be completed by the AI
// backend. Every kind is absorbed by the analyzer and turned into a mock
// result; callers that care must inspect AnalysisResult.IsMock.
type ErrorKind string

const (
	KindBackendUnavailable ErrorKind = "backend_unavailable"
	KindQuotaExhausted     ErrorKind = "quota_exhausted"
	KindUpstreamFailure    ErrorKind = "upstream_failure"
	KindMalformedResponse  ErrorKind = "malformed_response"
)

type AnalysisError struct {
	Kind ErrorKind
	Err  error
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or an empty kind for errors that
// did not originate from the analysis pipeline.
func KindOf(err error) ErrorKind {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Kind
	}
	return ""
}

// IsRateLimited reports whether a backend error corresponds to quota or
// throttling rather than a hard failure. The generation API surfaces these as
// HTTP 429 / RESOURCE_EXHAUSTED, so the error text is inspected directly.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}
