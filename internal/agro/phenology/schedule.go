// Package phenology turns a crop's planting date into its ordered timeline
// of growth stages.
package phenology

import (
	"time"

	"github.com/camposoft/tambero/internal/catalog"
	"github.com/camposoft/tambero/internal/domain/models"
)

// Scheduler derives stage timelines from the species catalog.
type Scheduler struct {
	catalog *catalog.Catalog
}

// New wires a scheduler over the provided catalog.
func New(c *catalog.Catalog) *Scheduler {
	return &Scheduler{catalog: c}
}

// BuildSchedule walks the species' stage templates in order, starting each
// stage where the previous one ends. An unknown species yields an empty
// schedule; callers display that state as-is rather than treating it as an
// error. The result is a pure function of the inputs and the static table.
func (s *Scheduler) BuildSchedule(speciesID string, plantingDate time.Time) []models.ScheduleEntry {
	sp, ok := s.catalog.Lookup(speciesID)
	if !ok {
		return nil
	}

	entries := make([]models.ScheduleEntry, 0, len(sp.PhenologyStages))
	cursor := plantingDate
	for _, tpl := range sp.PhenologyStages {
		end := cursor.AddDate(0, 0, tpl.DurationDays)
		entries = append(entries, models.ScheduleEntry{
			StageName:    tpl.Name,
			StartDate:    cursor,
			EndDate:      end,
			DurationDays: tpl.DurationDays,
			Critical:     tpl.Critical,
			Status:       models.StagePending,
		})
		cursor = end
	}

	return entries
}

// WithStatus stamps every entry with its status relative to asOf. Status is
// a read-time view; it is recomputed on every read and never stored.
func WithStatus(entries []models.ScheduleEntry, asOf time.Time) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(entries))
	for i, e := range entries {
		e.Status = StatusAt(e, asOf)
		out[i] = e
	}
	return out
}

// StatusAt classifies a single entry relative to asOf. Both boundary dates
// count as part of the stage.
func StatusAt(e models.ScheduleEntry, asOf time.Time) models.StageStatus {
	switch {
	case asOf.After(e.EndDate):
		return models.StageCompleted
	case asOf.Before(e.StartDate):
		return models.StagePending
	default:
		return models.StageActive
	}
}
