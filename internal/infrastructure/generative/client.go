package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

const requestTimeout = 30 * time.Second

// NarrativeClient implements port.NarrativeGenerator against an external
// language model completion API. The model is instructed to answer with a
// JSON document matching insights.NarrativeReport.
type NarrativeClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewNarrativeClient creates a narrative client for the given completion
// endpoint.
func NewNarrativeClient(baseURL, apiKey string) *NarrativeClient {
	return &NarrativeClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// Generate asks the model for a narrative interpretation of the analysis.
func (c *NarrativeClient) Generate(ctx context.Context, summary model.AnalysisSummary, fraudReport *fraud.Report, carbonReport *insights.CarbonReport) (*insights.NarrativeReport, error) {
	prompt, err := buildPrompt(summary, fraudReport, carbonReport)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	body, err := json.Marshal(completionRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("narrative request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read narrative response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("narrative API returned status %d: %s", resp.StatusCode, respBody)
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode narrative response: %w", err)
	}

	var narrative insights.NarrativeReport
	if err := json.Unmarshal([]byte(stripCodeFences(completion.Text)), &narrative); err != nil {
		return nil, fmt.Errorf("narrative is not valid JSON: %w", err)
	}
	if narrative.ExecutiveSummary == "" {
		return nil, fmt.Errorf("narrative is missing an executive summary")
	}
	return &narrative, nil
}

func buildPrompt(summary model.AnalysisSummary, fraudReport *fraud.Report, carbonReport *insights.CarbonReport) (string, error) {
	data, err := json.Marshal(map[string]any{
		"summary":         summary,
		"fraud_analysis":  fraudReport,
		"carbon_analysis": carbonReport,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a personal finance analyst. Given the analysis results below, ")
	b.WriteString("respond with only a JSON object containing the keys ")
	b.WriteString(`"executive_summary" (string), "positive_insights" (array of strings), `)
	b.WriteString(`"areas_for_improvement" (array of strings) and "actionable_recommendations" (array of strings).`)
	b.WriteString("\n\nAnalysis results:\n")
	b.Write(data)
	return b.String(), nil
}

// stripCodeFences removes a surrounding markdown code fence, which models
// frequently add despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
