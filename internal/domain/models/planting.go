package models

import "time"

// Planting registers a sown plot so the daily sweep can score its forecast.
type Planting struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	SpeciesID    string    `bson:"species_id" json:"species_id"`
	PlotName     string    `bson:"plot_name" json:"plot_name"`
	PlantingDate time.Time `bson:"planting_date" json:"planting_date"`
	Latitude     float64   `bson:"latitude" json:"latitude"`
	Longitude    float64   `bson:"longitude" json:"longitude"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
