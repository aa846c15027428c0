package breedingsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camposoft/tambero/internal/domain/models"
	"github.com/camposoft/tambero/internal/repository/mongodb"
)

// memoryRepo is an in-memory stand-in for the MongoDB repository.
type memoryRepo struct {
	records   map[string]models.BreedingRecord
	plantings map[string]models.Planting
	nextID    int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		records:   map[string]models.BreedingRecord{},
		plantings: map[string]models.Planting{},
	}
}

func (m *memoryRepo) CreateBreedingRecord(_ context.Context, rec models.BreedingRecord) (models.BreedingRecord, error) {
	m.nextID++
	rec.ID = string(rune('a' + m.nextID))
	m.records[rec.ID] = rec
	return rec, nil
}

func (m *memoryRepo) UpdateBreedingRecord(_ context.Context, rec models.BreedingRecord) error {
	if _, ok := m.records[rec.ID]; !ok {
		return mongodb.ErrNotFound
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *memoryRepo) GetBreedingRecord(_ context.Context, id string) (models.BreedingRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return models.BreedingRecord{}, mongodb.ErrNotFound
	}
	return rec, nil
}

func (m *memoryRepo) ListBreedingRecords(_ context.Context, animalID string) ([]models.BreedingRecord, error) {
	var out []models.BreedingRecord
	for _, rec := range m.records {
		if animalID == "" || rec.AnimalID == animalID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryRepo) CreatePlanting(_ context.Context, planting models.Planting) (models.Planting, error) {
	m.plantings[planting.PlotName] = planting
	return planting, nil
}

func (m *memoryRepo) ListPlantings(_ context.Context) ([]models.Planting, error) {
	var out []models.Planting
	for _, p := range m.plantings {
		out = append(out, p)
	}
	return out, nil
}

// memoryLedger records ledger appends.
type memoryLedger struct {
	alerts     []models.RiskAlert
	milestones []models.BreedingRecord
}

func (m *memoryLedger) AppendRiskAlert(_ context.Context, alert models.RiskAlert) error {
	m.alerts = append(m.alerts, alert)
	return nil
}

func (m *memoryLedger) AppendBreedingMilestones(_ context.Context, rec models.BreedingRecord) error {
	m.milestones = append(m.milestones, rec)
	return nil
}

func TestOpenValidatesProtocol(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)

	_, err := svc.Open(context.Background(), "telepathic", "cow-12", "bull-3", "")
	assert.ErrorIs(t, err, ErrUnknownProtocol)

	rec, err := svc.Open(context.Background(), models.ProtocolNatural, "cow-12", "bull-3", "first service")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Finalized)
	assert.Nil(t, rec.BullEntryDate)
}

func TestApplyChangePersistsDerivedDates(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)

	rec, err := svc.Open(context.Background(), models.ProtocolArtificial, "cow-12", "straw-77", "")
	require.NoError(t, err)

	exit := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.ApplyChange(context.Background(), rec.ID, models.FieldChange{
		Field: models.FieldBullExitDate,
		Date:  &exit,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.PregnancyCheckDate)
	assert.Equal(t, exit.AddDate(0, 0, 45), *updated.PregnancyCheckDate)

	stored, err := svc.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.PregnancyCheckDate, stored.PregnancyCheckDate)
}

func TestApplyChangeUnknownRecord(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)

	_, err := svc.ApplyChange(context.Background(), "missing", models.FieldChange{Field: models.FieldBullExitDate})
	assert.ErrorIs(t, err, mongodb.ErrNotFound)
}

func TestFinalizeExportsToLedger(t *testing.T) {
	repo := newMemoryRepo()
	ledger := &memoryLedger{}
	svc := NewService(repo, ledger, nil)

	rec, err := svc.Open(context.Background(), models.ProtocolNatural, "cow-9", "bull-1", "")
	require.NoError(t, err)

	finalized, err := svc.Finalize(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.True(t, finalized.Finalized)

	require.Len(t, ledger.milestones, 1)
	assert.Equal(t, rec.ID, ledger.milestones[0].ID)
}

func TestListFiltersByAnimal(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)

	_, err := svc.Open(context.Background(), models.ProtocolNatural, "cow-1", "bull-1", "")
	require.NoError(t, err)
	_, err = svc.Open(context.Background(), models.ProtocolArtificial, "cow-2", "straw-1", "")
	require.NoError(t, err)

	records, err := svc.List(context.Background(), "cow-2")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.ProtocolArtificial, records[0].Protocol)
}
