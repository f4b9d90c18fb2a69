package core

import (
	"context"
	"sync"

	"frigotec.com/frigotec/ponto/model"
)

// LiveAccess keeps one person's access decision current as clock
// events arrive from the store's subscription hub. The decision is
// recomputed synchronously from a plain snapshot; how updates arrive
// (channel, callback) is the caller's concern.
type LiveAccess struct {
	mu          sync.Mutex
	snap        AccessSnapshot
	superAdmins []string
	decision    AccessDecision
	onChange    func(AccessDecision)
}

// NewLiveAccess evaluates the initial snapshot immediately. onChange
// fires only when a recompute produces a different outcome, so a
// confirmation of the value already shown never flickers the UI.
func NewLiveAccess(snap AccessSnapshot, superAdmins []string, onChange func(AccessDecision)) *LiveAccess {
	w := &LiveAccess{
		snap:        snap,
		superAdmins: superAdmins,
		onChange:    onChange,
	}
	w.decision = DecideAccess(snap, superAdmins)
	return w
}

// Decision returns the current verdict.
func (w *LiveAccess) Decision() AccessDecision {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.decision
}

// OnEvent folds a newly committed clock event into the snapshot. Only
// events for the watched user move the shift-open flag; the hub only
// publishes server-confirmed rows, so there is no provisional state to
// ignore here.
func (w *LiveAccess) OnEvent(ev model.ClockEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ev.UserID != w.snap.UID {
		return
	}
	w.snap.IsShiftOpen = IsShiftOpen(&ev)
	w.recompute()
}

// UpdateSnapshot replaces the profile-derived fields (auth, role,
// avatar, page) after a profile or navigation change.
func (w *LiveAccess) UpdateSnapshot(mutate func(*AccessSnapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	mutate(&w.snap)
	w.recompute()
}

// Run consumes the subscription channel until it closes or ctx ends.
func (w *LiveAccess) Run(ctx context.Context, events <-chan model.ClockEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			w.OnEvent(ev)
		}
	}
}

func (w *LiveAccess) recompute() {
	next := DecideAccess(w.snap, w.superAdmins)
	if next != w.decision {
		w.decision = next
		if w.onChange != nil {
			w.onChange(next)
		}
	}
}
