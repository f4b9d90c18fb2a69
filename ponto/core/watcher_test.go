package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frigotec.com/frigotec/ponto/model"
)

func techSnapshot() AccessSnapshot {
	return AccessSnapshot{
		IsAuthenticated:   true,
		UID:               "u1",
		Role:              "tecnico",
		HasAvatarPhoto:    true,
		RequiresTimeClock: true,
	}
}

func TestLiveAccessRecomputesOnClockEvents(t *testing.T) {
	var changes []AccessDecision
	w := NewLiveAccess(techSnapshot(), superAdmins, func(d AccessDecision) {
		changes = append(changes, d)
	})

	// Shift closed on a non-attendance route: locked.
	assert.Equal(t, OutcomeShiftLockRedirect, w.Decision().Outcome)

	// An entry lands (possibly from another tab): unlocked, live.
	w.OnEvent(model.ClockEvent{UserID: "u1", Type: model.EventEntry, Timestamp: time.Now()})
	assert.Equal(t, OutcomeFullAccess, w.Decision().Outcome)

	// Lunch start closes the shift again.
	w.OnEvent(model.ClockEvent{UserID: "u1", Type: model.EventLunchStart, Timestamp: time.Now()})
	assert.Equal(t, OutcomeShiftLockRedirect, w.Decision().Outcome)

	assert.Len(t, changes, 2)
}

func TestLiveAccessIgnoresOtherUsers(t *testing.T) {
	w := NewLiveAccess(techSnapshot(), superAdmins, nil)
	w.OnEvent(model.ClockEvent{UserID: "someone-else", Type: model.EventEntry})
	assert.Equal(t, OutcomeShiftLockRedirect, w.Decision().Outcome)
}

func TestLiveAccessNoChangeNoCallback(t *testing.T) {
	fired := 0
	w := NewLiveAccess(techSnapshot(), superAdmins, func(AccessDecision) { fired++ })

	// Exit while already locked: outcome unchanged, callback silent.
	w.OnEvent(model.ClockEvent{UserID: "u1", Type: model.EventExit})
	assert.Equal(t, 0, fired)
}

func TestLiveAccessSnapshotUpdate(t *testing.T) {
	w := NewLiveAccess(techSnapshot(), superAdmins, nil)

	w.UpdateSnapshot(func(s *AccessSnapshot) { s.IsOnAttendancePage = true })
	assert.Equal(t, OutcomeShiftLockBanner, w.Decision().Outcome)

	w.UpdateSnapshot(func(s *AccessSnapshot) { s.HasAvatarPhoto = false })
	assert.Equal(t, OutcomeAvatarLockdown, w.Decision().Outcome)
}
