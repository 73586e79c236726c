package insights

// NarrativeReport is the generative-AI summary merged into a financial
// analysis. The generator produces all four sections in one call.
type NarrativeReport struct {
	ExecutiveSummary          string   `json:"executive_summary"`
	PositiveInsights          []string `json:"positive_insights"`
	AreasForImprovement       []string `json:"areas_for_improvement"`
	ActionableRecommendations []string `json:"actionable_recommendations"`
}
