// Package insights contains the enrichment services that run alongside fraud
// analysis: carbon-footprint estimation, narrative report types, and the
// digital-twin Monte Carlo simulator.
package insights

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
)

// defaultCategory is used when a transaction carries no spending category.
const defaultCategory = "default"

// emissionFactors maps spending categories to kg CO2e per currency unit.
var emissionFactors = map[string]decimal.Decimal{
	"transport":     decimal.RequireFromString("0.35"),
	"food":          decimal.RequireFromString("0.25"),
	"shopping":      decimal.RequireFromString("0.20"),
	"utilities":     decimal.RequireFromString("0.55"),
	defaultCategory: decimal.RequireFromString("0.15"),
}

// CarbonReport is the carbon-footprint estimate for one transaction batch.
type CarbonReport struct {
	TotalCarbonKg       decimal.Decimal            `json:"total_carbon_kg"`
	BreakdownByCategory map[string]decimal.Decimal `json:"breakdown_by_category"`
}

// CalculateCarbonFootprint estimates emissions for a batch by applying a
// per-category factor to each transaction's absolute amount. A transaction
// whose amount cannot be parsed fails the whole calculation; the caller
// degrades by annotating the merged report.
func CalculateCarbonFootprint(batch []fraud.Transaction) (CarbonReport, error) {
	report := CarbonReport{
		TotalCarbonKg:       decimal.Zero,
		BreakdownByCategory: make(map[string]decimal.Decimal),
	}

	for i, tx := range batch {
		category := strings.ToLower(strings.TrimSpace(tx.Category))
		if category == "" {
			category = defaultCategory
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(tx.Amount))
		if err != nil {
			return CarbonReport{}, fmt.Errorf("carbon: transaction %d: invalid amount %q: %w", i, tx.Amount, err)
		}

		factor, ok := emissionFactors[category]
		if !ok {
			factor = emissionFactors[defaultCategory]
		}

		footprint := amount.Abs().Mul(factor)
		report.TotalCarbonKg = report.TotalCarbonKg.Add(footprint)

		if existing, ok := report.BreakdownByCategory[category]; ok {
			report.BreakdownByCategory[category] = existing.Add(footprint)
		} else {
			report.BreakdownByCategory[category] = footprint
		}
	}

	return report, nil
}
