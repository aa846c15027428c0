package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/camposoft/tambero/internal/config"
	"github.com/camposoft/tambero/internal/domain/models"
	"github.com/camposoft/tambero/internal/repository/sheets"
	"github.com/camposoft/tambero/internal/service/cropsvc"
)

// Scheduler runs the daily crop risk sweep.
type Scheduler struct {
	cron   *cron.Cron
	crops  *cropsvc.Service
	ledger sheets.Ledger // nil when the ledger is not configured
	cfg    config.MonitorConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.MonitorConfig, crops *cropsvc.Service, ledger sheets.Ledger, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		crops:  crops,
		ledger: ledger,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sweepPlantings); err != nil {
		s.logger.Error("failed to schedule risk sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// sweepPlantings scores the forecast for every registered planting and
// raises moderate or high verdicts to the log and the shared ledger.
func (s *Scheduler) sweepPlantings() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	plantings, err := s.crops.ListPlantings(ctx)
	if err != nil {
		s.logger.Error("failed to list plantings for sweep", zap.Error(err))
		return
	}

	s.logger.Info("running risk sweep", zap.Int("plantings", len(plantings)))

	for _, planting := range plantings {
		assessment, err := s.crops.AssessForecastRisk(ctx, planting.SpeciesID, planting.Latitude, planting.Longitude)
		if err != nil {
			s.logger.Error("sweep skipped planting",
				zap.String("plot", planting.PlotName), zap.Error(err))
			continue
		}

		if assessment.Level != models.RiskModerate && assessment.Level != models.RiskHigh {
			continue
		}

		s.logger.Warn("planting at risk",
			zap.String("plot", planting.PlotName),
			zap.String("species_id", planting.SpeciesID),
			zap.String("level", string(assessment.Level)),
			zap.Int("factors", len(assessment.Factors)))

		if s.ledger == nil {
			continue
		}

		alert := models.RiskAlert{
			Date:       time.Now().UTC(),
			PlotName:   planting.PlotName,
			SpeciesID:  planting.SpeciesID,
			Assessment: assessment,
		}
		if err := s.ledger.AppendRiskAlert(ctx, alert); err != nil {
			s.logger.Error("failed to append risk alert", zap.Error(err))
		}
	}
}
