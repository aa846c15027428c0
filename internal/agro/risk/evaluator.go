// Package risk scores forecast conditions against a crop's ideal envelope
// and produces a verdict with the specific deviations found.
package risk

import (
	"fmt"

	"github.com/camposoft/tambero/internal/catalog"
	"github.com/camposoft/tambero/internal/domain/models"
)

const (
	// Deviation beyond which a temperature factor escalates to high severity.
	temperatureHighBand = 5.0
	// Same escalation band for humidity, which tolerates wider swings.
	humidityHighBand = 10.0
	// Any single period above this probability flags likely rain.
	rainProbabilityLimit = 0.7
	// Any single period above this speed (m/s) flags damaging wind.
	windSpeedLimit = 10.0
)

// Evaluator scores weather samples against the species catalog.
type Evaluator struct {
	catalog *catalog.Catalog
}

// New wires an evaluator over the provided catalog.
func New(c *catalog.Catalog) *Evaluator {
	return &Evaluator{catalog: c}
}

// Evaluate averages temperature and humidity over the samples, checks each
// rule against the species' ideal conditions and aggregates the worst
// severity found. An unknown species or an empty sample set yields an
// unknown verdict, never an error: both are normal displayable states.
func (e *Evaluator) Evaluate(speciesID string, samples []models.WeatherSample) models.RiskAssessment {
	sp, ok := e.catalog.Lookup(speciesID)
	if !ok || len(samples) == 0 {
		return models.RiskAssessment{Level: models.RiskUnknown, Factors: []models.RiskFactor{}}
	}

	var sumTemp, sumHum float64
	for _, s := range samples {
		sumTemp += s.Temperature
		sumHum += s.Humidity
	}
	avgTemp := sumTemp / float64(len(samples))
	avgHum := sumHum / float64(len(samples))

	ideal := sp.IdealConditions
	factors := make([]models.RiskFactor, 0, 4)

	if f, hit := envelopeFactor("temperature", avgTemp, ideal.Temperature, temperatureHighBand); hit {
		factors = append(factors, f)
	}
	if f, hit := envelopeFactor("humidity", avgHum, ideal.Humidity, humidityHighBand); hit {
		factors = append(factors, f)
	}

	// Rain and wind are existential checks: one bad period is enough.
	for _, s := range samples {
		if s.PrecipitationProb > rainProbabilityLimit {
			factors = append(factors, models.RiskFactor{
				Factor:      "high rain probability",
				Description: fmt.Sprintf("at least one period forecasts rain probability above %.0f%%", rainProbabilityLimit*100),
				Severity:    models.SeverityModerate,
			})
			break
		}
	}
	for _, s := range samples {
		if s.WindSpeed != nil && *s.WindSpeed > windSpeedLimit {
			factors = append(factors, models.RiskFactor{
				Factor:      "strong wind",
				Description: fmt.Sprintf("at least one period forecasts wind above %.0f m/s", windSpeedLimit),
				Severity:    models.SeverityModerate,
			})
			break
		}
	}

	return models.RiskAssessment{Level: overallLevel(factors), Factors: factors}
}

// envelopeFactor emits at most one factor for an average outside [min, max].
// Low and high are mutually exclusive since min never exceeds max.
func envelopeFactor(name string, avg float64, r models.Range, highBand float64) (models.RiskFactor, bool) {
	switch {
	case avg < r.Min:
		return deviationFactor("low "+name,
			fmt.Sprintf("average %s %.1f is below the ideal minimum %.1f", name, avg, r.Min),
			r.Min-avg, highBand), true
	case avg > r.Max:
		return deviationFactor("high "+name,
			fmt.Sprintf("average %s %.1f is above the ideal maximum %.1f", name, avg, r.Max),
			avg-r.Max, highBand), true
	default:
		return models.RiskFactor{}, false
	}
}

func deviationFactor(factor, description string, deviation, highBand float64) models.RiskFactor {
	severity := models.SeverityModerate
	if deviation > highBand {
		severity = models.SeverityHigh
	}
	return models.RiskFactor{Factor: factor, Description: description, Severity: severity}
}

// overallLevel is the worst severity across the factors, with low as the
// floor when nothing was flagged. A later moderate factor never downgrades
// an earlier high one.
func overallLevel(factors []models.RiskFactor) models.RiskLevel {
	level := models.RiskLow
	for _, f := range factors {
		if f.Severity == models.SeverityHigh {
			return models.RiskHigh
		}
		level = models.RiskModerate
	}
	return level
}
