package models

import "time"

// Range describes the ideal numeric envelope for one growing condition.
// Values share the same unit within a field (°C, %, mm).
type Range struct {
	Min     float64 `json:"min"`
	Optimal float64 `json:"optimal"`
	Max     float64 `json:"max"`
}

// IdealConditions groups the envelopes a crop prefers over its cycle.
type IdealConditions struct {
	Temperature      Range `json:"temperature"`
	Humidity         Range `json:"humidity"`
	SeasonalRainfall Range `json:"seasonal_rainfall"`
}

// PhenologyStageTemplate describes one developmental period of a crop.
// The order of templates within a species is significant and fixed.
type PhenologyStageTemplate struct {
	Name         string `json:"name"`
	DurationDays int    `json:"duration_days"`
	Critical     bool   `json:"critical"`
}

// CropSpecies is immutable reference data describing one cultivable crop.
type CropSpecies struct {
	ID                string                   `json:"id"`
	DisplayName       string                   `json:"display_name"`
	IdealSeasonMonths []time.Month             `json:"ideal_season_months"`
	IdealConditions   IdealConditions          `json:"ideal_conditions"`
	PhenologyStages   []PhenologyStageTemplate `json:"phenology_stages"`
}

// StageStatus classifies a schedule entry relative to a reference date.
type StageStatus string

const (
	StagePending   StageStatus = "pending"
	StageActive    StageStatus = "active"
	StageCompleted StageStatus = "completed"
)

// ScheduleEntry is one stage of a crop's timeline, derived from the planting
// date at read time and never persisted. Stages are contiguous: each entry
// starts exactly where the previous one ends.
type ScheduleEntry struct {
	StageName    string      `json:"stage_name"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	DurationDays int         `json:"duration_days"`
	Critical     bool        `json:"critical"`
	Status       StageStatus `json:"status"`
}
