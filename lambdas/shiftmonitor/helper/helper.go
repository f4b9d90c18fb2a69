package helper

import (
	"time"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/ponto/model"
	"frigotec.com/frigotec/utils"
)

// StaleShift is one shift left open past the maximum duration. CloseAt
// is the synthetic exit timestamp: the opening entry plus the allowed
// shift length, not the moment the monitor happened to run.
type StaleShift struct {
	UserID    string
	OpenedAt  time.Time
	LastEvent model.ClockEvent
	CloseAt   time.Time
}

// FindStaleShifts reduces a window of recent events to the shifts that
// are still unresolved and older than maxShift at the now instant.
// Events may arrive in any order; only each user's most recent event
// decides. A person parked on lunch_start counts: their shift was
// never exited and would otherwise stay open forever.
func FindStaleShifts(events []model.ClockEvent, maxShift time.Duration, now time.Time) []StaleShift {
	byUser := utils.GroupBy(events, func(ev model.ClockEvent) string { return ev.UserID })

	var stale []StaleShift
	for userID, history := range byUser {
		last := latest(history)
		if !core.HasUnresolvedShift(last) {
			continue
		}

		opened := openingEntry(history, *last)
		if now.Sub(opened) <= maxShift {
			continue
		}

		stale = append(stale, StaleShift{
			UserID:    userID,
			OpenedAt:  opened,
			LastEvent: *last,
			CloseAt:   opened.Add(maxShift),
		})
	}
	return stale
}

func latest(history []model.ClockEvent) *model.ClockEvent {
	var last *model.ClockEvent
	for i := range history {
		if last == nil || history[i].Timestamp.After(last.Timestamp) {
			last = &history[i]
		}
	}
	return last
}

// openingEntry finds the most recent entry at or before the last
// event: the one that opened the current shift. When that entry fell
// outside the lookback window the last event's own timestamp is the
// best available anchor.
func openingEntry(history []model.ClockEvent, last model.ClockEvent) time.Time {
	var opened time.Time
	for _, ev := range history {
		if ev.Type != model.EventEntry || ev.Timestamp.After(last.Timestamp) {
			continue
		}
		if ev.Timestamp.After(opened) {
			opened = ev.Timestamp
		}
	}
	if opened.IsZero() {
		return last.Timestamp
	}
	return opened
}
