package core

import "frigotec.com/frigotec/ponto/model"

// Phase is the derived state of one person's current shift.
type Phase string

const (
	PhaseNoEntry           Phase = "NO_ENTRY"
	PhaseClockedIn         Phase = "CLOCKED_IN"
	PhaseOnLunch           Phase = "ON_LUNCH"
	PhaseReturnedFromLunch Phase = "RETURNED_FROM_LUNCH"
	PhaseClockedOut        Phase = "CLOCKED_OUT"
)

// NextAction returns the single legal event type to record given the
// most recent event, or entry when there is none.
//
// entry -> lunch_start -> lunch_end -> exit -> entry (new shift)
//
// Unrecognized types fall back to entry. Manual corrections can leave
// malformed histories behind and the clock must keep working.
func NextAction(last *model.ClockEvent) string {
	if last == nil {
		return model.EventEntry
	}
	switch last.Type {
	case model.EventEntry:
		return model.EventLunchStart
	case model.EventLunchStart:
		return model.EventLunchEnd
	case model.EventLunchEnd:
		return model.EventExit
	case model.EventExit:
		return model.EventEntry
	default:
		return model.EventEntry
	}
}

// PhaseFor derives the display phase from the most recent event.
func PhaseFor(last *model.ClockEvent) Phase {
	if last == nil {
		return PhaseNoEntry
	}
	switch last.Type {
	case model.EventEntry:
		return PhaseClockedIn
	case model.EventLunchStart:
		return PhaseOnLunch
	case model.EventLunchEnd:
		return PhaseReturnedFromLunch
	case model.EventExit:
		return PhaseClockedOut
	default:
		return PhaseNoEntry
	}
}

// IsShiftOpen reports whether the person is clocked in and not on
// lunch. It considers the single most recent event with no date
// filter, so a shift that crosses midnight stays open until an exit.
// Today's displayed history is a separate, date-filtered query.
func IsShiftOpen(last *model.ClockEvent) bool {
	if last == nil {
		return false
	}
	return last.Type == model.EventEntry || last.Type == model.EventLunchEnd
}

// HasUnresolvedShift reports whether the person's history ends in a
// shift that was never exited. Broader than IsShiftOpen: someone who
// clocked lunch out and vanished is not access-locked, but their
// shift still needs an administrative or automatic close.
func HasUnresolvedShift(last *model.ClockEvent) bool {
	return last != nil && last.Type != model.EventExit
}
