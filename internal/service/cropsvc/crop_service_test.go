package cropsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camposoft/tambero/internal/catalog"
	"github.com/camposoft/tambero/internal/domain/models"
)

// stubWeather returns canned samples or a canned error.
type stubWeather struct {
	samples []models.WeatherSample
	err     error
}

func (s *stubWeather) Forecast(context.Context, float64, float64) ([]models.WeatherSample, error) {
	return s.samples, s.err
}

// stubRepo only implements the planting half used by this service.
type stubRepo struct {
	plantings []models.Planting
}

func (s *stubRepo) CreateBreedingRecord(_ context.Context, rec models.BreedingRecord) (models.BreedingRecord, error) {
	return rec, nil
}
func (s *stubRepo) UpdateBreedingRecord(context.Context, models.BreedingRecord) error { return nil }
func (s *stubRepo) GetBreedingRecord(context.Context, string) (models.BreedingRecord, error) {
	return models.BreedingRecord{}, nil
}
func (s *stubRepo) ListBreedingRecords(context.Context, string) ([]models.BreedingRecord, error) {
	return nil, nil
}
func (s *stubRepo) CreatePlanting(_ context.Context, planting models.Planting) (models.Planting, error) {
	planting.ID = "p1"
	s.plantings = append(s.plantings, planting)
	return planting, nil
}
func (s *stubRepo) ListPlantings(context.Context) ([]models.Planting, error) {
	return s.plantings, nil
}

func newTestService(t *testing.T, w *stubWeather) (*Service, *stubRepo) {
	t.Helper()
	c, err := catalog.New(catalog.DefaultSpecies())
	require.NoError(t, err)
	repo := &stubRepo{}
	return NewService(c, w, repo, nil), repo
}

func TestScheduleUsesExplicitAsOf(t *testing.T) {
	svc, _ := newTestService(t, &stubWeather{})
	planting := time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)

	entries := svc.Schedule("maize", planting, time.Date(2024, time.September, 18, 0, 0, 0, 0, time.UTC))
	require.Len(t, entries, 5)
	assert.Equal(t, models.StageActive, entries[0].Status)
	assert.Equal(t, models.StagePending, entries[1].Status)
}

func TestScheduleUnknownSpeciesIsEmpty(t *testing.T) {
	svc, _ := newTestService(t, &stubWeather{})

	entries := svc.Schedule("dragonfruit", time.Now(), time.Now())
	assert.Empty(t, entries)
}

func TestAssessForecastRisk(t *testing.T) {
	t.Run("scores fetched samples", func(t *testing.T) {
		svc, _ := newTestService(t, &stubWeather{samples: []models.WeatherSample{
			{Temperature: 2, Humidity: 60},
		}})

		assessment, err := svc.AssessForecastRisk(context.Background(), "maize", -34.6, -58.4)
		require.NoError(t, err)
		assert.Equal(t, models.RiskHigh, assessment.Level)
	})

	t.Run("wraps provider errors", func(t *testing.T) {
		svc, _ := newTestService(t, &stubWeather{err: errors.New("provider down")})

		_, err := svc.AssessForecastRisk(context.Background(), "maize", -34.6, -58.4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch forecast")
	})
}

func TestRegisterPlantingValidatesSpecies(t *testing.T) {
	svc, repo := newTestService(t, &stubWeather{})

	_, err := svc.RegisterPlanting(context.Background(), models.Planting{SpeciesID: "dragonfruit", PlotName: "north"})
	assert.ErrorIs(t, err, ErrUnknownSpecies)
	assert.Empty(t, repo.plantings)

	created, err := svc.RegisterPlanting(context.Background(), models.Planting{
		SpeciesID:    "maize",
		PlotName:     "north",
		PlantingDate: time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}
