package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camposoft/tambero/internal/catalog"
	"github.com/camposoft/tambero/internal/domain/models"
)

// Synthetic species with easy round numbers: temperature 10..30,
// humidity 40..80.
func testEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	c, err := catalog.New([]models.CropSpecies{{
		ID:          "test",
		DisplayName: "Test Crop",
		IdealConditions: models.IdealConditions{
			Temperature:      models.Range{Min: 10, Optimal: 20, Max: 30},
			Humidity:         models.Range{Min: 40, Optimal: 60, Max: 80},
			SeasonalRainfall: models.Range{Min: 300, Optimal: 450, Max: 600},
		},
		PhenologyStages: []models.PhenologyStageTemplate{{Name: "Growth", DurationDays: 30}},
	}})
	require.NoError(t, err)
	return New(c)
}

func sample(temp, hum float64) models.WeatherSample {
	return models.WeatherSample{Temperature: temp, Humidity: hum}
}

func factorNames(a models.RiskAssessment) []string {
	names := make([]string, 0, len(a.Factors))
	for _, f := range a.Factors {
		names = append(names, f.Factor)
	}
	return names
}

func TestEvaluateUnknownInputs(t *testing.T) {
	e := testEvaluator(t)

	t.Run("unknown species", func(t *testing.T) {
		a := e.Evaluate("dragonfruit", []models.WeatherSample{sample(20, 60)})
		assert.Equal(t, models.RiskUnknown, a.Level)
		assert.Empty(t, a.Factors)
		assert.NotNil(t, a.Factors)
	})

	t.Run("empty samples", func(t *testing.T) {
		a := e.Evaluate("test", nil)
		assert.Equal(t, models.RiskUnknown, a.Level)
		assert.Empty(t, a.Factors)
	})
}

func TestEvaluateIdealConditions(t *testing.T) {
	e := testEvaluator(t)

	a := e.Evaluate("test", []models.WeatherSample{sample(20, 60), sample(22, 58)})
	assert.Equal(t, models.RiskLow, a.Level)
	assert.Empty(t, a.Factors)
}

func TestTemperatureSeverityBands(t *testing.T) {
	e := testEvaluator(t)

	t.Run("six below minimum is high", func(t *testing.T) {
		a := e.Evaluate("test", []models.WeatherSample{sample(4, 60)})
		require.Len(t, a.Factors, 1)
		assert.Equal(t, "low temperature", a.Factors[0].Factor)
		assert.Equal(t, models.SeverityHigh, a.Factors[0].Severity)
		assert.Equal(t, models.RiskHigh, a.Level)
	})

	t.Run("four below minimum is moderate", func(t *testing.T) {
		a := e.Evaluate("test", []models.WeatherSample{sample(6, 60)})
		require.Len(t, a.Factors, 1)
		assert.Equal(t, "low temperature", a.Factors[0].Factor)
		assert.Equal(t, models.SeverityModerate, a.Factors[0].Severity)
		assert.Equal(t, models.RiskModerate, a.Level)
	})

	t.Run("exactly at minimum is clean", func(t *testing.T) {
		a := e.Evaluate("test", []models.WeatherSample{sample(10, 60)})
		assert.Empty(t, a.Factors)
		assert.Equal(t, models.RiskLow, a.Level)
	})

	t.Run("above maximum flags high temperature", func(t *testing.T) {
		a := e.Evaluate("test", []models.WeatherSample{sample(37, 60)})
		require.Len(t, a.Factors, 1)
		assert.Equal(t, "high temperature", a.Factors[0].Factor)
		assert.Equal(t, models.SeverityHigh, a.Factors[0].Severity)
	})
}

func TestHumidityUsesWiderBand(t *testing.T) {
	e := testEvaluator(t)

	t.Run("nine below minimum is moderate", func(t *testing.T) {
		a := e.Evaluate("test", []models.WeatherSample{sample(20, 31)})
		require.Len(t, a.Factors, 1)
		assert.Equal(t, "low humidity", a.Factors[0].Factor)
		assert.Equal(t, models.SeverityModerate, a.Factors[0].Severity)
	})

	t.Run("eleven below minimum is high", func(t *testing.T) {
		a := e.Evaluate("test", []models.WeatherSample{sample(20, 29)})
		require.Len(t, a.Factors, 1)
		assert.Equal(t, "low humidity", a.Factors[0].Factor)
		assert.Equal(t, models.SeverityHigh, a.Factors[0].Severity)
	})
}

func TestPrecipitationIsExistential(t *testing.T) {
	e := testEvaluator(t)

	samples := []models.WeatherSample{sample(20, 60), sample(20, 60)}
	samples[1].PrecipitationProb = 0.8

	a := e.Evaluate("test", samples)
	assert.Contains(t, factorNames(a), "high rain probability")
	assert.Equal(t, models.RiskModerate, a.Level)
}

func TestWindRuleSkippedWithoutData(t *testing.T) {
	e := testEvaluator(t)

	t.Run("no wind data means no wind factor", func(t *testing.T) {
		a := e.Evaluate("test", []models.WeatherSample{sample(20, 60)})
		assert.NotContains(t, factorNames(a), "strong wind")
	})

	t.Run("one gusty period flags strong wind", func(t *testing.T) {
		wind := 12.0
		s := sample(20, 60)
		s.WindSpeed = &wind

		a := e.Evaluate("test", []models.WeatherSample{sample(20, 60), s})
		assert.Contains(t, factorNames(a), "strong wind")
		assert.Equal(t, models.RiskModerate, a.Level)
	})
}

func TestLevelIsMonotonic(t *testing.T) {
	e := testEvaluator(t)

	rank := map[models.RiskLevel]int{
		models.RiskLow: 0, models.RiskModerate: 1, models.RiskHigh: 2,
	}

	base := []models.WeatherSample{sample(20, 60), sample(20, 60)}
	before := e.Evaluate("test", base)

	// Tripping an extra rule must never lower the verdict.
	tripped := append(append([]models.WeatherSample{}, base...), models.WeatherSample{
		Temperature: 20, Humidity: 60, PrecipitationProb: 0.9,
	})
	after := e.Evaluate("test", tripped)

	assert.GreaterOrEqual(t, rank[after.Level], rank[before.Level])
}

func TestModerateFactorNeverDowngradesHigh(t *testing.T) {
	e := testEvaluator(t)

	// Freezing average plus a rainy period: high from temperature must win.
	samples := []models.WeatherSample{sample(2, 60)}
	samples[0].PrecipitationProb = 0.9

	a := e.Evaluate("test", samples)
	require.Len(t, a.Factors, 2)
	assert.Equal(t, models.RiskHigh, a.Level)
}
