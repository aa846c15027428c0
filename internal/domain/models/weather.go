package models

import "time"

// WeatherSample is one forecast period supplied by the weather provider.
// WindSpeed is a pointer because some providers omit wind data; the risk
// rules skip the wind check when it is absent.
type WeatherSample struct {
	Temperature       float64  `json:"temperature"`
	Humidity          float64  `json:"humidity"`
	PrecipitationProb float64  `json:"precipitation_probability"`
	WindSpeed         *float64 `json:"wind_speed,omitempty"`
}

// Severity grades an individual risk factor.
type Severity string

const (
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// RiskLevel is the overall verdict for a crop under the sampled conditions.
type RiskLevel string

const (
	RiskUnknown  RiskLevel = "unknown"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// RiskFactor names one specific deviation from the crop's ideal envelope.
type RiskFactor struct {
	Factor      string   `json:"factor"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// RiskAssessment is the verdict produced by the risk evaluator. Level is
// unknown only when the crop is unrecognized or no samples were provided.
type RiskAssessment struct {
	Level   RiskLevel    `json:"level"`
	Factors []RiskFactor `json:"factors"`
}

// RiskAlert is one finding of the daily sweep, pushed to the shared ledger.
type RiskAlert struct {
	Date       time.Time      `json:"date"`
	PlotName   string         `json:"plot_name"`
	SpeciesID  string         `json:"species_id"`
	Assessment RiskAssessment `json:"assessment"`
}
