// Package breedingsvc manages the lifecycle of breeding records: opened when
// the registration form opens, updated through the derivation engine on each
// edit, and finalized to storage and the shared ledger on submit.
package breedingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/camposoft/tambero/internal/breeding"
	"github.com/camposoft/tambero/internal/domain/models"
	"github.com/camposoft/tambero/internal/repository/mongodb"
	"github.com/camposoft/tambero/internal/repository/sheets"
)

// ErrUnknownProtocol indicates an unsupported breeding protocol.
var ErrUnknownProtocol = errors.New("unknown breeding protocol")

// Service implements breeding record management.
type Service struct {
	repo   mongodb.Repository
	ledger sheets.Ledger // nil when the ledger is not configured
	engine *breeding.Engine
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a breeding service with the default gestation policy.
func NewService(repo mongodb.Repository, ledger sheets.Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		ledger: ledger,
		engine: breeding.New(breeding.DefaultPolicy()),
		logger: logger,
		now:    time.Now,
	}
}

// Open creates a record when the registration form is opened. Every date
// field stays empty until the user or the engine fills it.
func (s *Service) Open(ctx context.Context, protocol models.Protocol, animalID, bullID, observations string) (models.BreedingRecord, error) {
	switch protocol {
	case models.ProtocolNatural, models.ProtocolArtificial:
	default:
		return models.BreedingRecord{}, fmt.Errorf("%w: %q", ErrUnknownProtocol, protocol)
	}

	now := s.now().UTC()
	rec := models.BreedingRecord{
		Protocol:     protocol,
		AnimalID:     animalID,
		BullID:       bullID,
		Observations: observations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.CreateBreedingRecord(ctx, rec)
	if err != nil {
		return models.BreedingRecord{}, fmt.Errorf("persist breeding record: %w", err)
	}

	s.logger.Info("breeding record opened",
		zap.String("record_id", created.ID),
		zap.String("animal_id", created.AnimalID),
		zap.String("protocol", string(created.Protocol)))
	return created, nil
}

// ApplyChange runs one field edit through the derivation engine and persists
// the updated record.
func (s *Service) ApplyChange(ctx context.Context, id string, change models.FieldChange) (models.BreedingRecord, error) {
	rec, err := s.repo.GetBreedingRecord(ctx, id)
	if err != nil {
		return models.BreedingRecord{}, err
	}

	updated := s.engine.Apply(rec, change)
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateBreedingRecord(ctx, updated); err != nil {
		return models.BreedingRecord{}, fmt.Errorf("persist breeding record: %w", err)
	}

	s.logger.Debug("field change applied",
		zap.String("record_id", id),
		zap.String("field", string(change.Field)))
	return updated, nil
}

// Finalize marks the record as submitted and exports its milestones to the
// shared ledger. A ledger failure is logged but does not fail the submit.
func (s *Service) Finalize(ctx context.Context, id string) (models.BreedingRecord, error) {
	rec, err := s.repo.GetBreedingRecord(ctx, id)
	if err != nil {
		return models.BreedingRecord{}, err
	}

	rec.Finalized = true
	rec.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateBreedingRecord(ctx, rec); err != nil {
		return models.BreedingRecord{}, fmt.Errorf("persist breeding record: %w", err)
	}

	if s.ledger != nil {
		if err := s.ledger.AppendBreedingMilestones(ctx, rec); err != nil {
			s.logger.Warn("breeding ledger append failed", zap.Error(err), zap.String("record_id", id))
		}
	}

	s.logger.Info("breeding record finalized", zap.String("record_id", id))
	return rec, nil
}

// Get fetches one breeding record.
func (s *Service) Get(ctx context.Context, id string) (models.BreedingRecord, error) {
	return s.repo.GetBreedingRecord(ctx, id)
}

// List returns records, optionally filtered by animal id.
func (s *Service) List(ctx context.Context, animalID string) ([]models.BreedingRecord, error) {
	return s.repo.ListBreedingRecords(ctx, animalID)
}
