// Package cropsvc orchestrates the crop catalog, the phenology scheduler,
// the risk evaluator and the forecast provider.
package cropsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/camposoft/tambero/internal/agro/phenology"
	"github.com/camposoft/tambero/internal/agro/risk"
	"github.com/camposoft/tambero/internal/catalog"
	"github.com/camposoft/tambero/internal/domain/models"
	"github.com/camposoft/tambero/internal/repository/mongodb"
	"github.com/camposoft/tambero/pkg/clients/weather"
)

// ErrUnknownSpecies indicates a planting referenced a species id that is not
// in the catalog. Unknown ids are tolerated on reads (empty schedule,
// unknown risk) but rejected when registering plantings.
var ErrUnknownSpecies = errors.New("unknown species")

// Service answers schedule and risk queries and manages registered plantings.
type Service struct {
	catalog   *catalog.Catalog
	scheduler *phenology.Scheduler
	evaluator *risk.Evaluator
	weather   weather.Client
	repo      mongodb.Repository
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new crop service instance.
func NewService(cat *catalog.Catalog, weatherClient weather.Client, repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:   cat,
		scheduler: phenology.New(cat),
		evaluator: risk.New(cat),
		weather:   weatherClient,
		repo:      repo,
		logger:    logger,
		now:       time.Now,
	}
}

// ListSpecies returns the catalog in registration order.
func (s *Service) ListSpecies() []models.CropSpecies {
	return s.catalog.List()
}

// Schedule builds the stage timeline for a planting with statuses as of the
// given date. A zero asOf falls back to the service clock.
func (s *Service) Schedule(speciesID string, plantingDate, asOf time.Time) []models.ScheduleEntry {
	if asOf.IsZero() {
		asOf = s.now()
	}

	entries := s.scheduler.BuildSchedule(speciesID, plantingDate)
	if len(entries) == 0 {
		s.logger.Debug("schedule requested for unknown species", zap.String("species_id", speciesID))
	}
	return phenology.WithStatus(entries, asOf)
}

// AssessRisk scores caller-supplied samples against the species' envelope.
func (s *Service) AssessRisk(speciesID string, samples []models.WeatherSample) models.RiskAssessment {
	return s.evaluator.Evaluate(speciesID, samples)
}

// AssessForecastRisk fetches the short-term forecast for a coordinate and
// scores it.
func (s *Service) AssessForecastRisk(ctx context.Context, speciesID string, latitude, longitude float64) (models.RiskAssessment, error) {
	samples, err := s.weather.Forecast(ctx, latitude, longitude)
	if err != nil {
		return models.RiskAssessment{}, fmt.Errorf("fetch forecast: %w", err)
	}
	return s.evaluator.Evaluate(speciesID, samples), nil
}

// RegisterPlanting stores a planting for the daily sweep. The species must
// exist: a misspelled id here would silently produce unknown verdicts on
// every sweep.
func (s *Service) RegisterPlanting(ctx context.Context, planting models.Planting) (models.Planting, error) {
	if _, ok := s.catalog.Lookup(planting.SpeciesID); !ok {
		return models.Planting{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, planting.SpeciesID)
	}

	planting.CreatedAt = s.now().UTC()
	created, err := s.repo.CreatePlanting(ctx, planting)
	if err != nil {
		return models.Planting{}, fmt.Errorf("persist planting: %w", err)
	}

	s.logger.Info("planting registered",
		zap.String("plot", created.PlotName),
		zap.String("species_id", created.SpeciesID),
		zap.String("planting_date", created.PlantingDate.Format(models.DateLayout)))
	return created, nil
}

// ListPlantings returns every registered planting.
func (s *Service) ListPlantings(ctx context.Context) ([]models.Planting, error) {
	return s.repo.ListPlantings(ctx)
}
