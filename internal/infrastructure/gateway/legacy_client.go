package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
)

const defaultTimeout = 10 * time.Second

// LegacyClient implements port.LegacyGateway against the HTTP facade of the
// mainframe-style batch processing system.
type LegacyClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewLegacyClient creates a legacy gateway client for the given base URL.
func NewLegacyClient(baseURL string) *LegacyClient {
	return &LegacyClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Process submits the batch to the gateway's /process endpoint and returns
// its raw JSON response.
func (c *LegacyClient) Process(ctx context.Context, batch []fraud.Transaction) (map[string]any, error) {
	records := make([]map[string]string, 0, len(batch))
	for _, tx := range batch {
		records = append(records, tx.AsMap())
	}

	body, err := json.Marshal(map[string]any{"transactions": records})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("legacy gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("legacy gateway returned status %d: %s", resp.StatusCode, respBody)
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return result, nil
}
