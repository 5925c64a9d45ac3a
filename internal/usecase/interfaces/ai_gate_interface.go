package interfaces

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
)

type AnalysisInput struct {
	RequestType entities.RequestType
	ImageURLs   []string
	Text        string
}

// AnalysisResult is what the AI gate reports. Readable=false is a business outcome,
// not an error: the patient gets UserMessage and may resubmit.
type AnalysisResult struct {
	Readable    bool
	Summary     string
	RiskLevel   string
	UserMessage *string
	Extracted   map[string]any
}

// IAIGate analyses uploaded images before a request reaches a doctor.
type IAIGate interface {
	Analyze(ctx context.Context, in AnalysisInput) (AnalysisResult, error)
}
