package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frigotec.com/frigotec/ponto/model"
)

var base = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func event(userID, typ string, at time.Time) model.ClockEvent {
	return model.ClockEvent{UserID: userID, Type: typ, Timestamp: at}
}

func TestFindStaleShifts(t *testing.T) {
	maxShift := 16 * time.Hour

	t.Run("entry older than max shift is stale", func(t *testing.T) {
		now := base.Add(20 * time.Hour)
		events := []model.ClockEvent{event("u1", model.EventEntry, base)}

		stale := FindStaleShifts(events, maxShift, now)

		require.Len(t, stale, 1)
		assert.Equal(t, "u1", stale[0].UserID)
		assert.Equal(t, base, stale[0].OpenedAt)
		assert.Equal(t, base.Add(maxShift), stale[0].CloseAt)
	})

	t.Run("open but young shift is left alone", func(t *testing.T) {
		now := base.Add(8 * time.Hour)
		events := []model.ClockEvent{event("u1", model.EventEntry, base)}

		assert.Empty(t, FindStaleShifts(events, maxShift, now))
	})

	t.Run("closed shift is never stale regardless of age", func(t *testing.T) {
		now := base.Add(48 * time.Hour)
		events := []model.ClockEvent{
			event("u1", model.EventEntry, base),
			event("u1", model.EventExit, base.Add(9*time.Hour)),
		}

		assert.Empty(t, FindStaleShifts(events, maxShift, now))
	})

	t.Run("on lunch counts as open", func(t *testing.T) {
		now := base.Add(20 * time.Hour)
		events := []model.ClockEvent{
			event("u1", model.EventEntry, base),
			event("u1", model.EventLunchStart, base.Add(4*time.Hour)),
			event("u1", model.EventLunchEnd, base.Add(5*time.Hour)),
		}

		stale := FindStaleShifts(events, maxShift, now)

		require.Len(t, stale, 1)
		assert.Equal(t, base, stale[0].OpenedAt, "age anchored to the opening entry, not the lunch return")
	})

	t.Run("abandoned mid-lunch is still stale", func(t *testing.T) {
		now := base.Add(20 * time.Hour)
		events := []model.ClockEvent{
			event("u1", model.EventEntry, base),
			event("u1", model.EventLunchStart, base.Add(4*time.Hour)),
		}

		stale := FindStaleShifts(events, maxShift, now)

		require.Len(t, stale, 1)
		assert.Equal(t, base, stale[0].OpenedAt)
		assert.Equal(t, model.EventLunchStart, stale[0].LastEvent.Type)
	})

	t.Run("age measured from the latest opening entry", func(t *testing.T) {
		now := base.Add(30 * time.Hour)
		reopened := base.Add(24 * time.Hour)
		events := []model.ClockEvent{
			event("u1", model.EventEntry, base),
			event("u1", model.EventExit, base.Add(9*time.Hour)),
			event("u1", model.EventEntry, reopened),
		}

		assert.Empty(t, FindStaleShifts(events, maxShift, now), "second shift is only six hours old")
	})

	t.Run("users are evaluated independently", func(t *testing.T) {
		now := base.Add(20 * time.Hour)
		events := []model.ClockEvent{
			event("u1", model.EventEntry, base),
			event("u2", model.EventEntry, base.Add(10*time.Hour)),
			event("u3", model.EventEntry, base),
			event("u3", model.EventExit, base.Add(8*time.Hour)),
		}

		stale := FindStaleShifts(events, maxShift, now)

		require.Len(t, stale, 1)
		assert.Equal(t, "u1", stale[0].UserID)
	})

	t.Run("lunch end without a visible entry anchors to itself", func(t *testing.T) {
		lunchEnd := base.Add(5 * time.Hour)
		now := lunchEnd.Add(17 * time.Hour)
		events := []model.ClockEvent{event("u1", model.EventLunchEnd, lunchEnd)}

		stale := FindStaleShifts(events, maxShift, now)

		require.Len(t, stale, 1)
		assert.Equal(t, lunchEnd, stale[0].OpenedAt)
	})

	t.Run("no events no work", func(t *testing.T) {
		assert.Empty(t, FindStaleShifts(nil, maxShift, base))
	})
}
