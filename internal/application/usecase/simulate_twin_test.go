package usecase_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/application/usecase"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

type mockTwinRepository struct {
	savedTwin *model.DigitalTwin
	twins     []*model.DigitalTwin
}

func (m *mockTwinRepository) Save(_ context.Context, twin *model.DigitalTwin) error {
	m.savedTwin = twin
	return nil
}

func (m *mockTwinRepository) FindByUserID(_ context.Context, _ uuid.UUID, _, _ int) ([]*model.DigitalTwin, error) {
	return m.twins, nil
}

func seededRng() func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewSource(42)) }
}

func twinProfile() insights.FinancialProfile {
	return insights.FinancialProfile{
		InitialCapital:       10000,
		MonthlyContribution:  250,
		YearsToSimulate:      20,
		ExpectedAnnualReturn: 0.06,
		AnnualVolatility:     0.12,
		NumSimulations:       500,
	}
}

func TestSimulateTwin_Execute(t *testing.T) {
	t.Run("runs the simulation and persists the twin", func(t *testing.T) {
		repo := &mockTwinRepository{}
		uc := usecase.NewSimulateTwin(repo, seededRng())

		resp, err := uc.Execute(context.Background(), dto.SimulateTwinRequest{
			UserID:  uuid.New(),
			Profile: twinProfile(),
		})

		require.NoError(t, err)
		assert.Greater(t, resp.Result.MeanValue, 0.0)
		assert.LessOrEqual(t, resp.Result.Percentile5, resp.Result.Percentile95)
		require.NotNil(t, repo.savedTwin)
		assert.Equal(t, resp.ID, repo.savedTwin.ID())
	})

	t.Run("identical requests with the same seed agree", func(t *testing.T) {
		uc := usecase.NewSimulateTwin(&mockTwinRepository{}, seededRng())
		req := dto.SimulateTwinRequest{UserID: uuid.New(), Profile: twinProfile()}

		a, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		b, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, a.Result, b.Result)
	})

	t.Run("rejects a non-positive horizon", func(t *testing.T) {
		uc := usecase.NewSimulateTwin(&mockTwinRepository{}, seededRng())
		profile := twinProfile()
		profile.YearsToSimulate = 0

		_, err := uc.Execute(context.Background(), dto.SimulateTwinRequest{UserID: uuid.New(), Profile: profile})
		assert.Error(t, err)
	})

	t.Run("rejects negative volatility", func(t *testing.T) {
		uc := usecase.NewSimulateTwin(&mockTwinRepository{}, seededRng())
		profile := twinProfile()
		profile.AnnualVolatility = -0.1

		_, err := uc.Execute(context.Background(), dto.SimulateTwinRequest{UserID: uuid.New(), Profile: profile})
		assert.Error(t, err)
	})
}

func TestListTwins_Execute(t *testing.T) {
	userID := uuid.New()
	twin, err := model.NewDigitalTwin(userID, twinProfile(), insights.SimulationResult{MeanValue: 100})
	require.NoError(t, err)

	uc := usecase.NewListTwins(&mockTwinRepository{twins: []*model.DigitalTwin{twin}})

	resp, err := uc.Execute(context.Background(), dto.GetHistoryRequest{UserID: userID})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, twin.ID(), resp[0].ID)
	assert.Equal(t, 100.0, resp[0].Result.MeanValue)
}
