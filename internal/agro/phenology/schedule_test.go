package phenology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camposoft/tambero/internal/catalog"
	"github.com/camposoft/tambero/internal/domain/models"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, value)
	require.NoError(t, err)
	return d
}

func defaultScheduler(t *testing.T) *Scheduler {
	t.Helper()
	c, err := catalog.New(catalog.DefaultSpecies())
	require.NoError(t, err)
	return New(c)
}

func TestBuildScheduleMaizeScenario(t *testing.T) {
	s := defaultScheduler(t)
	planting := mustDate(t, "2024-09-15")

	entries := s.BuildSchedule("maize", planting)
	require.Len(t, entries, 5)

	first := entries[0]
	assert.Equal(t, "Emergence", first.StageName)
	assert.Equal(t, 7, first.DurationDays)
	assert.Equal(t, planting, first.StartDate)
	assert.Equal(t, mustDate(t, "2024-09-22"), first.EndDate)

	last := entries[len(entries)-1]
	assert.Equal(t, mustDate(t, "2025-01-05"), last.EndDate)
	assert.Equal(t, planting.AddDate(0, 0, 112), last.EndDate)
}

func TestBuildScheduleContiguity(t *testing.T) {
	c, err := catalog.New(catalog.DefaultSpecies())
	require.NoError(t, err)
	s := New(c)
	planting := mustDate(t, "2024-03-10")

	for _, sp := range c.List() {
		entries := s.BuildSchedule(sp.ID, planting)
		require.NotEmpty(t, entries, sp.ID)

		assert.Equal(t, planting, entries[0].StartDate, sp.ID)
		for i := 1; i < len(entries); i++ {
			assert.Equal(t, entries[i-1].EndDate, entries[i].StartDate, sp.ID)
		}

		total := 0
		for _, e := range entries {
			total += e.DurationDays
		}
		assert.Equal(t, planting.AddDate(0, 0, total), entries[len(entries)-1].EndDate, sp.ID)
	}
}

func TestBuildScheduleDeterministic(t *testing.T) {
	s := defaultScheduler(t)
	planting := mustDate(t, "2024-09-15")

	assert.Equal(t, s.BuildSchedule("maize", planting), s.BuildSchedule("maize", planting))
}

func TestBuildScheduleUnknownSpecies(t *testing.T) {
	s := defaultScheduler(t)
	assert.Empty(t, s.BuildSchedule("dragonfruit", mustDate(t, "2024-09-15")))
}

func TestWithStatus(t *testing.T) {
	s := defaultScheduler(t)
	planting := mustDate(t, "2024-09-15")
	entries := s.BuildSchedule("maize", planting)

	t.Run("before planting all pending", func(t *testing.T) {
		stamped := WithStatus(entries, mustDate(t, "2024-09-01"))
		for _, e := range stamped {
			assert.Equal(t, models.StagePending, e.Status)
		}
	})

	t.Run("after harvest all completed", func(t *testing.T) {
		stamped := WithStatus(entries, mustDate(t, "2025-02-01"))
		for _, e := range stamped {
			assert.Equal(t, models.StageCompleted, e.Status)
		}
	})

	t.Run("mid-season exactly one active", func(t *testing.T) {
		stamped := WithStatus(entries, mustDate(t, "2024-10-05"))

		active := 0
		for _, e := range stamped {
			if e.Status == models.StageActive {
				active++
				assert.Equal(t, "Vegetative Growth", e.StageName)
			}
		}
		assert.Equal(t, 1, active)
		assert.Equal(t, models.StageCompleted, stamped[0].Status)
		assert.Equal(t, models.StagePending, stamped[2].Status)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		WithStatus(entries, mustDate(t, "2025-02-01"))
		assert.Equal(t, models.StagePending, entries[0].Status)
	})
}
