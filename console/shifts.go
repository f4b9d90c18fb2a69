package console

import (
	"context"
	"time"

	"gorm.io/gorm"

	"frigotec.com/frigotec/lambdas/shiftmonitor/helper"
	"frigotec.com/frigotec/ponto/model"
	"frigotec.com/frigotec/ponto/store"
	"frigotec.com/frigotec/utils"
)

// OpenShift is one currently open shift as seen by the operator.
type OpenShift struct {
	UserID   string
	OpenedAt time.Time
	Phase    string
}

// ListOpenShifts reduces the last thirty days of events to the shifts
// that are still unresolved right now, regardless of age. That includes
// people parked on lunch: not access-locked, but not exited either.
func ListOpenShifts(ctx context.Context, db *gorm.DB) ([]OpenShift, error) {
	events := store.NewEvents(db, store.NewHub())

	recent, err := events.RecentEvents(ctx, 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	stale := helper.FindStaleShifts(recent, 0, time.Now())
	return utils.Map(stale, func(s helper.StaleShift) OpenShift {
		return OpenShift{
			UserID:   s.UserID,
			OpenedAt: s.OpenedAt,
			Phase:    phaseOf(s.LastEvent),
		}
	}), nil
}

// CloseShift force-closes one user's open shift from the terminal,
// attributed to the named operator.
func CloseShift(ctx context.Context, db *gorm.DB, userID, reason, operator string) (*model.ClockEvent, error) {
	events := store.NewEvents(db, store.NewHub())
	return events.ForceClose(ctx, userID, time.Now(), reason, operator)
}

func phaseOf(ev model.ClockEvent) string {
	switch ev.Type {
	case model.EventLunchStart:
		return "on lunch"
	case model.EventLunchEnd:
		return "returned from lunch"
	default:
		return "clocked in"
	}
}
