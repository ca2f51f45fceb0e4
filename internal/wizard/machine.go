package wizard

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
)

// Machine owns one visitor's canonical draft and step index. All mutation is
// funneled through the merge reducer so callers can never bypass the nested
// merge semantics. Not safe for concurrent use; the owning session must
// serialize access.
type Machine struct {
	draft entity.BookingDraft
	step  int
}

func NewMachine() *Machine {
	return &Machine{
		draft: entity.NewBookingDraft(),
		step:  StepRideDetails,
	}
}

func (m *Machine) Draft() entity.BookingDraft {
	return m.draft
}

func (m *Machine) Step() int {
	return m.step
}

// Apply merges a partial update into the draft.
func (m *Machine) Apply(patch entity.DraftPatch) {
	m.draft = Merge(m.draft, patch)
}

// Hydrate normalizes an external draft payload against the current draft,
// merges the result, and puts the wizard back on the first step. On a
// DraftParseError the machine is left untouched.
func (m *Machine) Hydrate(payload []byte) error {
	patch, err := Normalize(m.draft, payload)
	if err != nil {
		return err
	}
	m.draft = Merge(m.draft, patch)
	m.step = StepRideDetails
	return nil
}

// CanAdvance reports whether the gate for the current step passes.
func (m *Machine) CanAdvance() bool {
	return CanAdvance(m.step, m.draft)
}

// Next advances one step if the current gate passes. Returns false when the
// gate holds the wizard back or the final step is already reached.
func (m *Machine) Next() bool {
	if m.step >= StepSummary {
		return false
	}
	if !CanAdvance(m.step, m.draft) {
		return false
	}
	m.step++
	return true
}

// Back moves one step towards the start. Never gated.
func (m *Machine) Back() {
	if m.step > StepRideDetails {
		m.step--
	}
}

// GoTo jumps to a step, clamped to the valid range. Never gated.
func (m *Machine) GoTo(step int) {
	if step < StepRideDetails {
		step = StepRideDetails
	}
	if step > StepSummary {
		step = StepSummary
	}
	m.step = step
}

// Reset returns the machine to the initial empty state.
func (m *Machine) Reset() {
	m.draft = entity.NewBookingDraft()
	m.step = StepRideDetails
}
