// Package aigate adapts the external image-analysis service to interfaces.IAIGate.
package aigate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const degradedSummary = "automatic analysis unavailable; forwarded to manual review"

// DegradedAnalyzer is used when no analysis service is configured. Every request is
// treated as readable so that a doctor reviews it manually.
type DegradedAnalyzer struct {
	logger zerolog.Logger
}

var _ interfaces.IAIGate = (*DegradedAnalyzer)(nil)

func NewDegradedAnalyzer(logger zerolog.Logger) *DegradedAnalyzer {
	return &DegradedAnalyzer{logger: logger.With().Str("component", "aigate.degraded").Logger()}
}

func (a *DegradedAnalyzer) Analyze(_ context.Context, in interfaces.AnalysisInput) (interfaces.AnalysisResult, error) {
	a.logger.Warn().Str("request_type", string(in.RequestType)).Int("images", len(in.ImageURLs)).Msg("ai gate not configured; skipping analysis")
	return interfaces.AnalysisResult{Readable: true, Summary: degradedSummary}, nil
}

// HTTPAnalyzer posts the images to the analysis service and decodes its verdict.
type HTTPAnalyzer struct {
	url    string
	apiKey string
	client *http.Client
	logger zerolog.Logger
}

var _ interfaces.IAIGate = (*HTTPAnalyzer)(nil)

func NewHTTPAnalyzer(url, apiKey string, timeout time.Duration, logger zerolog.Logger) *HTTPAnalyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPAnalyzer{
		url:    strings.TrimSpace(url),
		apiKey: strings.TrimSpace(apiKey),
		client: &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "aigate.http").Logger(),
	}
}

// New picks the HTTP adapter when url is set, the degraded one otherwise.
func New(url, apiKey string, timeout time.Duration, logger zerolog.Logger) interfaces.IAIGate {
	if strings.TrimSpace(url) == "" {
		return NewDegradedAnalyzer(logger)
	}
	return NewHTTPAnalyzer(url, apiKey, timeout, logger)
}

type analyzeRequest struct {
	RequestType string   `json:"request_type"`
	ImageURLs   []string `json:"image_urls"`
	Text        string   `json:"text,omitempty"`
}

type analyzeResponse struct {
	Readable    *bool          `json:"readable"`
	Summary     string         `json:"summary"`
	RiskLevel   string         `json:"risk_level"`
	UserMessage *string        `json:"user_message"`
	Extracted   map[string]any `json:"extracted"`
}

var ErrMalformedResponse = errors.New("ai gate returned a malformed response")

func (a *HTTPAnalyzer) Analyze(ctx context.Context, in interfaces.AnalysisInput) (interfaces.AnalysisResult, error) {
	body, err := json.Marshal(analyzeRequest{RequestType: string(in.RequestType), ImageURLs: in.ImageURLs, Text: in.Text})
	if err != nil {
		return interfaces.AnalysisResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return interfaces.AnalysisResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn().Err(err).Msg("ai gate request failed")
		return interfaces.AnalysisResult{}, fmt.Errorf("ai gate request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return interfaces.AnalysisResult{}, fmt.Errorf("ai gate read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		a.logger.Warn().Int("status", resp.StatusCode).Msg("ai gate returned an error status")
		return interfaces.AnalysisResult{}, fmt.Errorf("ai gate status %d", resp.StatusCode)
	}

	var out analyzeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return interfaces.AnalysisResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Readable == nil {
		return interfaces.AnalysisResult{}, fmt.Errorf("%w: missing readable", ErrMalformedResponse)
	}
	a.logger.Info().
		Bool("readable", *out.Readable).
		Str("risk_level", out.RiskLevel).
		Dur("elapsed", time.Since(start)).
		Msg("ai gate analysis done")

	return interfaces.AnalysisResult{
		Readable:    *out.Readable,
		Summary:     out.Summary,
		RiskLevel:   out.RiskLevel,
		UserMessage: out.UserMessage,
		Extracted:   out.Extracted,
	}, nil
}
