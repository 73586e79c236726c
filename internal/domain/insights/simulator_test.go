package insights

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProfile() FinancialProfile {
	return FinancialProfile{
		InitialCapital:       10000,
		MonthlyContribution:  500,
		YearsToSimulate:      10,
		ExpectedAnnualReturn: 0.07,
		AnnualVolatility:     0.15,
		NumSimulations:       2000,
	}
}

func TestRunMonteCarloSimulation(t *testing.T) {
	t.Run("is deterministic for a fixed seed", func(t *testing.T) {
		a := RunMonteCarloSimulation(testProfile(), rand.New(rand.NewSource(42)))
		b := RunMonteCarloSimulation(testProfile(), rand.New(rand.NewSource(42)))
		assert.Equal(t, a, b)
	})

	t.Run("percentiles are ordered", func(t *testing.T) {
		r := RunMonteCarloSimulation(testProfile(), rand.New(rand.NewSource(1)))

		assert.LessOrEqual(t, r.Percentile5, r.Percentile25)
		assert.LessOrEqual(t, r.Percentile25, r.MedianValue)
		assert.LessOrEqual(t, r.MedianValue, r.Percentile75)
		assert.LessOrEqual(t, r.Percentile75, r.Percentile95)
		assert.Greater(t, r.StdDeviation, 0.0)
	})

	t.Run("zero volatility collapses the distribution", func(t *testing.T) {
		profile := testProfile()
		profile.AnnualVolatility = 0
		profile.NumSimulations = 100

		r := RunMonteCarloSimulation(profile, rand.New(rand.NewSource(7)))

		assert.InDelta(t, r.MeanValue, r.MedianValue, 1e-6)
		assert.InDelta(t, 0, r.StdDeviation, 1e-6)
		assert.InDelta(t, r.Percentile5, r.Percentile95, 1e-6)
		assert.Greater(t, r.MeanValue, profile.InitialCapital)
	})

	t.Run("zero volatility matches compound growth exactly", func(t *testing.T) {
		profile := FinancialProfile{
			InitialCapital:       1000,
			MonthlyContribution:  0,
			YearsToSimulate:      2,
			ExpectedAnnualReturn: 0.10,
			AnnualVolatility:     0,
			NumSimulations:       10,
		}

		r := RunMonteCarloSimulation(profile, rand.New(rand.NewSource(3)))
		assert.InDelta(t, 1210, r.MeanValue, 1e-9)
	})

	t.Run("defaults guard invalid run counts and horizons", func(t *testing.T) {
		profile := testProfile()
		profile.NumSimulations = 0
		profile.YearsToSimulate = 0

		r := RunMonteCarloSimulation(profile, rand.New(rand.NewSource(9)))
		assert.Greater(t, r.MeanValue, 0.0)
	})
}

func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	assert.Equal(t, 10.0, percentile(sorted, 0))
	assert.Equal(t, 40.0, percentile(sorted, 100))
	assert.Equal(t, 25.0, percentile(sorted, 50))
	assert.InDelta(t, 11.5, percentile(sorted, 5), 1e-12)
	assert.Equal(t, 0.0, percentile(nil, 50))
	assert.Equal(t, 7.0, percentile([]float64{7}, 95))
}
