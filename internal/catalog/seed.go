package catalog

import (
	"time"

	"github.com/camposoft/tambero/internal/domain/models"
)

// DefaultSpecies returns the built-in species table. Durations and envelopes
// come from the agronomy sheets maintained by the farm's advisor; season
// months assume a southern-hemisphere calendar.
func DefaultSpecies() []models.CropSpecies {
	return []models.CropSpecies{
		{
			ID:                "maize",
			DisplayName:       "Maize",
			IdealSeasonMonths: []time.Month{time.September, time.October, time.November, time.December},
			IdealConditions: models.IdealConditions{
				Temperature:      models.Range{Min: 18, Optimal: 25, Max: 32},
				Humidity:         models.Range{Min: 40, Optimal: 60, Max: 80},
				SeasonalRainfall: models.Range{Min: 500, Optimal: 650, Max: 800},
			},
			PhenologyStages: []models.PhenologyStageTemplate{
				{Name: "Emergence", DurationDays: 7},
				{Name: "Vegetative Growth", DurationDays: 30},
				{Name: "Flowering", DurationDays: 15, Critical: true},
				{Name: "Grain Filling", DurationDays: 35, Critical: true},
				{Name: "Maturation", DurationDays: 25},
			},
		},
		{
			ID:                "wheat",
			DisplayName:       "Wheat",
			IdealSeasonMonths: []time.Month{time.May, time.June, time.July},
			IdealConditions: models.IdealConditions{
				Temperature:      models.Range{Min: 10, Optimal: 18, Max: 24},
				Humidity:         models.Range{Min: 35, Optimal: 55, Max: 75},
				SeasonalRainfall: models.Range{Min: 350, Optimal: 450, Max: 600},
			},
			PhenologyStages: []models.PhenologyStageTemplate{
				{Name: "Emergence", DurationDays: 10},
				{Name: "Tillering", DurationDays: 25},
				{Name: "Stem Elongation", DurationDays: 20},
				{Name: "Heading", DurationDays: 15, Critical: true},
				{Name: "Grain Filling", DurationDays: 30, Critical: true},
				{Name: "Maturation", DurationDays: 20},
			},
		},
		{
			ID:                "soybean",
			DisplayName:       "Soybean",
			IdealSeasonMonths: []time.Month{time.October, time.November, time.December},
			IdealConditions: models.IdealConditions{
				Temperature:      models.Range{Min: 20, Optimal: 27, Max: 33},
				Humidity:         models.Range{Min: 50, Optimal: 65, Max: 85},
				SeasonalRainfall: models.Range{Min: 450, Optimal: 600, Max: 700},
			},
			PhenologyStages: []models.PhenologyStageTemplate{
				{Name: "Emergence", DurationDays: 8},
				{Name: "Vegetative Growth", DurationDays: 35},
				{Name: "Flowering", DurationDays: 20, Critical: true},
				{Name: "Pod Development", DurationDays: 30, Critical: true},
				{Name: "Maturation", DurationDays: 20},
			},
		},
		{
			ID:                "potato",
			DisplayName:       "Potato",
			IdealSeasonMonths: []time.Month{time.February, time.March, time.August, time.September},
			IdealConditions: models.IdealConditions{
				Temperature:      models.Range{Min: 10, Optimal: 17, Max: 25},
				Humidity:         models.Range{Min: 60, Optimal: 75, Max: 90},
				SeasonalRainfall: models.Range{Min: 400, Optimal: 550, Max: 700},
			},
			PhenologyStages: []models.PhenologyStageTemplate{
				{Name: "Sprouting", DurationDays: 15},
				{Name: "Vegetative Growth", DurationDays: 30},
				{Name: "Tuber Initiation", DurationDays: 15, Critical: true},
				{Name: "Tuber Bulking", DurationDays: 45, Critical: true},
				{Name: "Maturation", DurationDays: 15},
			},
		},
	}
}
