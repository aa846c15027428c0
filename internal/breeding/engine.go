// Package breeding models the reproductive protocols (natural service and
// artificial insemination) as a pure reducer over field-change events.
// Derivation flows strictly in the direction of event causality: an edit
// rewrites only the dates downstream of the edited field, never upstream.
package breeding

import (
	"time"

	"github.com/camposoft/tambero/internal/domain/models"
)

// Gestation day counts observed across the legacy due-date screens. They
// intentionally coexist: whether 283/305 are real veterinary conventions or
// copy-paste drift is pending domain review, so each call site names the
// policy it uses instead of sharing a single constant.
const (
	// GestationDaysDefault applies when a confirmed-pregnant check derives
	// the delivery date.
	GestationDaysDefault = 280
	// GestationDaysChecked is the variant used by the standalone due-date
	// screen that works without a confirmed check.
	GestationDaysChecked = 283
	// GestationDaysExtended is the long-gestation variant of the same screen.
	GestationDaysExtended = 305
)

// Protocol intervals in days.
const (
	checkAfterBullExit       = 45 // herd-bull withdrawal to first pregnancy check
	deviceWearDays           = 7  // hormonal device stays in for a week
	inseminationAfterRemoval = 2  // timed insemination after device removal
	recheckAfterInsemination = 40 // next pregnancy check after insemination
)

// GestationPolicy selects the gestation length used when a pregnant result
// derives the expected delivery date.
type GestationPolicy struct {
	GestationDays int
}

// DefaultPolicy is the confirmed-pregnant policy.
func DefaultPolicy() GestationPolicy {
	return GestationPolicy{GestationDays: GestationDaysDefault}
}

// Engine applies field edits to breeding records. It holds no state beyond
// the policy and is safe for concurrent use.
type Engine struct {
	policy GestationPolicy
}

// New builds an engine with the given policy; a zero policy falls back to
// the default gestation length.
func New(policy GestationPolicy) *Engine {
	if policy.GestationDays <= 0 {
		policy = DefaultPolicy()
	}
	return &Engine{policy: policy}
}

// Apply runs one edit through the protocol state machine and returns the
// updated record. The input record is never mutated. A derivation whose
// upstream date is missing is a silent no-op: the field is set, dependent
// fields stay empty, and no error is raised, because the forms disable each
// trigger until its precondition is populated.
func (e *Engine) Apply(rec models.BreedingRecord, change models.FieldChange) models.BreedingRecord {
	switch rec.Protocol {
	case models.ProtocolNatural:
		return e.applyNatural(rec, change)
	case models.ProtocolArtificial:
		return e.applyArtificial(rec, change)
	default:
		return rec
	}
}

// applyNatural handles the service-in-progress -> checked -> resolved flow.
// Only a pregnant result derives anything; an open result ends automatic
// derivation here, unlike the artificial protocol. That asymmetry is
// intentional: with a herd bull there is no timed re-service to plan.
func (e *Engine) applyNatural(rec models.BreedingRecord, change models.FieldChange) models.BreedingRecord {
	switch change.Field {
	case models.FieldBullEntryDate:
		rec.BullEntryDate = change.Date
	case models.FieldBullExitDate:
		// Informational in this protocol; nothing derives from it.
		rec.BullExitDate = change.Date
	case models.FieldPregnancyCheckDate:
		rec.PregnancyCheckDate = change.Date
	case models.FieldPregnancyResult:
		rec.PregnancyResult = change.Result
		if change.Result == models.ResultPregnant && rec.BullEntryDate != nil {
			rec.ExpectedDeliveryDate = datePtr(rec.BullEntryDate.AddDate(0, 0, e.policy.GestationDays))
		}
	case models.FieldExpectedDeliveryDate:
		rec.ExpectedDeliveryDate = change.Date
	}
	return rec
}

// applyArtificial handles the cascading AI protocol. The open-result branch
// is re-entrant: it reads the current pregnancy check date, derives the
// device and insemination dates from it, then overwrites the check date with
// the next one.
func (e *Engine) applyArtificial(rec models.BreedingRecord, change models.FieldChange) models.BreedingRecord {
	switch change.Field {
	case models.FieldBullExitDate:
		rec.BullExitDate = change.Date
		if change.Date != nil {
			rec.PregnancyCheckDate = datePtr(change.Date.AddDate(0, 0, checkAfterBullExit))
		}
	case models.FieldPregnancyCheckDate:
		rec.PregnancyCheckDate = change.Date
	case models.FieldPregnancyResult:
		rec.PregnancyResult = change.Result
		switch change.Result {
		case models.ResultPregnant:
			service := rec.InseminationDate
			if service == nil {
				service = rec.BullExitDate
			}
			if service != nil {
				rec.ExpectedDeliveryDate = datePtr(service.AddDate(0, 0, e.policy.GestationDays))
			}
		case models.ResultOpen:
			if rec.PregnancyCheckDate != nil {
				// Re-enter the protocol from the failed check: the device
				// goes in the same day and the check rolls past the next
				// service window.
				placement := *rec.PregnancyCheckDate
				removal := placement.AddDate(0, 0, deviceWearDays)
				insemination := removal.AddDate(0, 0, inseminationAfterRemoval)
				rec.DevicePlacementDate = &placement
				rec.DeviceRemovalDate = &removal
				rec.InseminationDate = &insemination
				rec.PregnancyCheckDate = datePtr(insemination.AddDate(0, 0, recheckAfterInsemination))
			}
		case models.ResultUncertain:
			// Terminal; requires manual follow-up.
		}
	case models.FieldDevicePlacementDate:
		rec.DevicePlacementDate = change.Date
		if change.Date != nil {
			removal := change.Date.AddDate(0, 0, deviceWearDays)
			rec.DeviceRemovalDate = &removal
			rec.InseminationDate = datePtr(removal.AddDate(0, 0, inseminationAfterRemoval))
		}
	case models.FieldDeviceRemovalDate:
		rec.DeviceRemovalDate = change.Date
		if change.Date != nil {
			rec.InseminationDate = datePtr(change.Date.AddDate(0, 0, inseminationAfterRemoval))
		}
	case models.FieldInseminationDate:
		rec.InseminationDate = change.Date
	case models.FieldExpectedDeliveryDate:
		rec.ExpectedDeliveryDate = change.Date
	}
	return rec
}

// DueDate computes an expected delivery date independently of a pregnancy
// check. gestationDays is named per call site; see the GestationDays
// constants.
func DueDate(serviceDate time.Time, gestationDays int) time.Time {
	return serviceDate.AddDate(0, 0, gestationDays)
}

func datePtr(t time.Time) *time.Time {
	return &t
}
