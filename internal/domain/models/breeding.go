package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used across forms and exports.
const DateLayout = "2006-01-02"

// Protocol discriminates the two breeding workflows.
type Protocol string

const (
	ProtocolNatural    Protocol = "natural"
	ProtocolArtificial Protocol = "artificial"
)

// PregnancyResult is the outcome of a veterinary pregnancy check ("tacto").
type PregnancyResult string

const (
	ResultPregnant  PregnancyResult = "pregnant"
	ResultOpen      PregnancyResult = "open"
	ResultUncertain PregnancyResult = "uncertain"
)

// BreedingRecord is the reproductive event aggregate shared by both
// protocols. Date fields are pointers: nil means the milestone has not
// happened yet. Derived dates stay user-editable; the engine only rewrites
// fields downstream of an edit.
type BreedingRecord struct {
	ID           string   `bson:"_id,omitempty" json:"id"`
	Protocol     Protocol `bson:"protocol" json:"protocol"`
	AnimalID     string   `bson:"animal_id" json:"animal_id"`
	BullID       string   `bson:"bull_id" json:"bull_id"` // herd bull or semen straw identifier
	Observations string   `bson:"observations" json:"observations"`

	BullEntryDate        *time.Time      `bson:"bull_entry_date,omitempty" json:"bull_entry_date,omitempty"`
	BullExitDate         *time.Time      `bson:"bull_exit_date,omitempty" json:"bull_exit_date,omitempty"`
	PregnancyCheckDate   *time.Time      `bson:"pregnancy_check_date,omitempty" json:"pregnancy_check_date,omitempty"`
	PregnancyResult      PregnancyResult `bson:"pregnancy_result,omitempty" json:"pregnancy_result,omitempty"`
	DevicePlacementDate  *time.Time      `bson:"device_placement_date,omitempty" json:"device_placement_date,omitempty"`
	DeviceRemovalDate    *time.Time      `bson:"device_removal_date,omitempty" json:"device_removal_date,omitempty"`
	InseminationDate     *time.Time      `bson:"insemination_date,omitempty" json:"insemination_date,omitempty"`
	ExpectedDeliveryDate *time.Time      `bson:"expected_delivery_date,omitempty" json:"expected_delivery_date,omitempty"`

	Finalized bool      `bson:"finalized" json:"finalized"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BreedingField identifies which field of a BreedingRecord an edit targets.
type BreedingField string

const (
	FieldBullEntryDate        BreedingField = "bull_entry_date"
	FieldBullExitDate         BreedingField = "bull_exit_date"
	FieldPregnancyCheckDate   BreedingField = "pregnancy_check_date"
	FieldPregnancyResult      BreedingField = "pregnancy_result"
	FieldDevicePlacementDate  BreedingField = "device_placement_date"
	FieldDeviceRemovalDate    BreedingField = "device_removal_date"
	FieldInseminationDate     BreedingField = "insemination_date"
	FieldExpectedDeliveryDate BreedingField = "expected_delivery_date"
)

// FieldChange is one user edit applied to a breeding record. Date carries
// the value for date fields (nil clears the field); Result carries the value
// when Field is FieldPregnancyResult.
type FieldChange struct {
	Field  BreedingField
	Date   *time.Time
	Result PregnancyResult
}

// ErrUnknownField indicates the edited field name is not part of the record.
var ErrUnknownField = errors.New("unknown breeding field")

// ErrInvalidResult indicates an unsupported pregnancy check outcome.
var ErrInvalidResult = errors.New("invalid pregnancy result")

// ParseFieldChange derives a FieldChange from the raw field name and value
// submitted by a form. Date values use DateLayout; an empty value clears a
// date field.
func ParseFieldChange(field, value string) (FieldChange, error) {
	f := BreedingField(strings.TrimSpace(strings.ToLower(field)))

	switch f {
	case FieldPregnancyResult:
		r := PregnancyResult(strings.TrimSpace(strings.ToLower(value)))
		switch r {
		case ResultPregnant, ResultOpen, ResultUncertain:
			return FieldChange{Field: f, Result: r}, nil
		default:
			return FieldChange{}, fmt.Errorf("%w: %q", ErrInvalidResult, value)
		}
	case FieldBullEntryDate, FieldBullExitDate, FieldPregnancyCheckDate,
		FieldDevicePlacementDate, FieldDeviceRemovalDate,
		FieldInseminationDate, FieldExpectedDeliveryDate:
		if strings.TrimSpace(value) == "" {
			return FieldChange{Field: f}, nil
		}
		d, err := time.Parse(DateLayout, strings.TrimSpace(value))
		if err != nil {
			return FieldChange{}, fmt.Errorf("invalid date %q for field %s: %w", value, f, err)
		}
		return FieldChange{Field: f, Date: &d}, nil
	default:
		return FieldChange{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
