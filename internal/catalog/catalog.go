// Package catalog holds the static crop knowledge base: species definitions,
// ideal-condition envelopes and phenology stage tables. The catalog is built
// once at startup and treated as immutable afterwards.
package catalog

import (
	"errors"
	"fmt"

	"github.com/camposoft/tambero/internal/domain/models"
)

// ErrInvalidStageDuration indicates a stage template with a non-positive
// duration. This is a data-integrity fault in the species table.
var ErrInvalidStageDuration = errors.New("stage duration must be positive")

// ErrInvalidRange indicates an ideal-condition range whose bounds are
// inconsistent (min > max, or optimal outside the bounds).
var ErrInvalidRange = errors.New("invalid condition range")

// ErrDuplicateSpecies indicates two definitions share an id.
var ErrDuplicateSpecies = errors.New("duplicate species id")

// Catalog is an immutable lookup over crop species definitions.
type Catalog struct {
	species map[string]models.CropSpecies
	order   []string
}

// New validates the provided definitions and builds a catalog. A structurally
// invalid table is the only hard error in the domain; it must be caught here,
// at load time, never at call time.
func New(defs []models.CropSpecies) (*Catalog, error) {
	c := &Catalog{species: make(map[string]models.CropSpecies, len(defs))}

	for _, sp := range defs {
		if err := validateSpecies(sp); err != nil {
			return nil, fmt.Errorf("species %q: %w", sp.ID, err)
		}
		if _, exists := c.species[sp.ID]; exists {
			return nil, fmt.Errorf("species %q: %w", sp.ID, ErrDuplicateSpecies)
		}
		c.species[sp.ID] = sp
		c.order = append(c.order, sp.ID)
	}

	return c, nil
}

// Lookup resolves a species id. The second return reports whether the id is
// known; an unknown id is a legitimate, displayable state for callers.
func (c *Catalog) Lookup(id string) (models.CropSpecies, bool) {
	sp, ok := c.species[id]
	return sp, ok
}

// List returns all species in registration order.
func (c *Catalog) List() []models.CropSpecies {
	out := make([]models.CropSpecies, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.species[id])
	}
	return out
}

func validateSpecies(sp models.CropSpecies) error {
	if sp.ID == "" {
		return errors.New("species id must not be empty")
	}

	for _, st := range sp.PhenologyStages {
		if st.DurationDays <= 0 {
			return fmt.Errorf("stage %q: %w", st.Name, ErrInvalidStageDuration)
		}
	}

	ranges := []struct {
		name string
		r    models.Range
	}{
		{"temperature", sp.IdealConditions.Temperature},
		{"humidity", sp.IdealConditions.Humidity},
		{"seasonal_rainfall", sp.IdealConditions.SeasonalRainfall},
	}
	for _, entry := range ranges {
		if entry.r.Min > entry.r.Max || entry.r.Optimal < entry.r.Min || entry.r.Optimal > entry.r.Max {
			return fmt.Errorf("%s: %w", entry.name, ErrInvalidRange)
		}
	}

	return nil
}
