package insights

import (
	"math"
	"math/rand"
	"sort"
)

// FinancialProfile parameterizes a digital-twin investment simulation.
type FinancialProfile struct {
	InitialCapital       float64 `json:"initial_capital"`
	MonthlyContribution  float64 `json:"monthly_contribution"`
	YearsToSimulate      int     `json:"years_to_simulate"`
	ExpectedAnnualReturn float64 `json:"expected_annual_return"`
	AnnualVolatility     float64 `json:"annual_volatility"`
	NumSimulations       int     `json:"num_simulations"`
}

// SimulationResult summarizes the distribution of final portfolio values
// across all simulation runs.
type SimulationResult struct {
	MeanValue    float64 `json:"mean_value"`
	MedianValue  float64 `json:"median_value"`
	StdDeviation float64 `json:"std_deviation"`
	Percentile5  float64 `json:"percentile_5"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	Percentile95 float64 `json:"percentile_95"`
}

// RunMonteCarloSimulation simulates yearly compounded investment returns
// with normally distributed annual performance. The caller supplies the
// random source so runs can be made reproducible.
func RunMonteCarloSimulation(profile FinancialProfile, rng *rand.Rand) SimulationResult {
	runs := profile.NumSimulations
	if runs <= 0 {
		runs = 10000
	}
	years := profile.YearsToSimulate
	if years <= 0 {
		years = 1
	}

	finalValues := make([]float64, runs)
	for i := 0; i < runs; i++ {
		value := profile.InitialCapital
		for y := 0; y < years; y++ {
			annualReturn := rng.NormFloat64()*profile.AnnualVolatility + profile.ExpectedAnnualReturn
			value += profile.MonthlyContribution * 12
			value *= 1 + annualReturn
		}
		finalValues[i] = value
	}

	sort.Float64s(finalValues)

	return SimulationResult{
		MeanValue:    mean(finalValues),
		MedianValue:  percentile(finalValues, 50),
		StdDeviation: stdDev(finalValues),
		Percentile5:  percentile(finalValues, 5),
		Percentile25: percentile(finalValues, 25),
		Percentile75: percentile(finalValues, 75),
		Percentile95: percentile(finalValues, 95),
	}
}

func mean(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

func stdDev(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	m := mean(sorted)
	var sum float64
	for _, v := range sorted {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(sorted)))
}

// percentile computes the p-th percentile of a sorted slice using linear
// interpolation between adjacent ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
