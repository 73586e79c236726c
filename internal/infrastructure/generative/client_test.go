package generative_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/generative"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func narrativeInput() (model.AnalysisSummary, *fraud.Report, *insights.CarbonReport) {
	return model.AnalysisSummary{
			TotalTransactions: 2,
			TotalAmount:       decimal.RequireFromString("104.50"),
		},
		&fraud.Report{FraudDetected: true, HighestRiskScore: 0.85, TransactionsAboveThreshold: 1},
		&insights.CarbonReport{TotalCarbonKg: decimal.RequireFromString("12.5")}
}

const narrativeJSON = `{
	"executive_summary": "Spending was stable this month.",
	"positive_insights": ["Income covered all expenses."],
	"areas_for_improvement": ["One transaction looks unusual."],
	"actionable_recommendations": ["Verify the flagged transfer."]
}`

func TestNarrativeClientGenerate(t *testing.T) {
	summary, fraudReport, carbonReport := narrativeInput()

	t.Run("sends the prompt and parses the narrative", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req struct {
				Prompt string `json:"prompt"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Contains(t, req.Prompt, "executive_summary")
			assert.Contains(t, req.Prompt, "fraud_analysis")

			json.NewEncoder(w).Encode(map[string]string{"text": narrativeJSON})
		}))
		defer srv.Close()

		client := generative.NewNarrativeClient(srv.URL, "test-key")
		narrative, err := client.Generate(context.Background(), summary, fraudReport, carbonReport)

		require.NoError(t, err)
		assert.Equal(t, "Spending was stable this month.", narrative.ExecutiveSummary)
		assert.Len(t, narrative.ActionableRecommendations, 1)
	})

	t.Run("strips markdown code fences from the completion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{
				"text": "```json\n" + narrativeJSON + "\n```",
			})
		}))
		defer srv.Close()

		client := generative.NewNarrativeClient(srv.URL, "test-key")
		narrative, err := client.Generate(context.Background(), summary, fraudReport, carbonReport)

		require.NoError(t, err)
		assert.Equal(t, "Spending was stable this month.", narrative.ExecutiveSummary)
	})

	t.Run("rejects completions that are not the expected JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"text": "I'm sorry, I can't help with that."})
		}))
		defer srv.Close()

		client := generative.NewNarrativeClient(srv.URL, "test-key")
		_, err := client.Generate(context.Background(), summary, fraudReport, carbonReport)
		assert.Error(t, err)
	})

	t.Run("rejects a narrative without an executive summary", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"text": `{"positive_insights": []}`})
		}))
		defer srv.Close()

		client := generative.NewNarrativeClient(srv.URL, "test-key")
		_, err := client.Generate(context.Background(), summary, fraudReport, carbonReport)
		assert.Error(t, err)
	})

	t.Run("non-200 responses are errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := generative.NewNarrativeClient(srv.URL, "test-key")
		_, err := client.Generate(context.Background(), summary, fraudReport, carbonReport)
		assert.Error(t, err)
	})
}

func TestStubNarratorGenerate(t *testing.T) {
	summary, fraudReport, carbonReport := narrativeInput()
	stub := generative.NewStubNarrator(testLogger())

	t.Run("always produces a complete narrative", func(t *testing.T) {
		narrative, err := stub.Generate(context.Background(), summary, fraudReport, carbonReport)

		require.NoError(t, err)
		assert.NotEmpty(t, narrative.ExecutiveSummary)
		assert.NotEmpty(t, narrative.AreasForImprovement)
		assert.NotEmpty(t, narrative.ActionableRecommendations)
	})

	t.Run("tolerates missing stage results", func(t *testing.T) {
		narrative, err := stub.Generate(context.Background(), summary, nil, nil)

		require.NoError(t, err)
		assert.NotEmpty(t, narrative.ExecutiveSummary)
	})
}
