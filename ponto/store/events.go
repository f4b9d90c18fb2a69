package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/ponto/model"
)

// Events is the GORM-backed append-only event stream. Timestamps are
// assigned here on write, never taken from a client DTO, so ordering
// is immune to client clock skew. Every committed row is published to
// the hub.
type Events struct {
	db  *gorm.DB
	hub *Hub
	now func() time.Time
}

func NewEvents(db *gorm.DB, hub *Hub) *Events {
	return &Events{db: db, hub: hub, now: time.Now}
}

// WithClock overrides time acquisition, for tests.
func (s *Events) WithClock(now func() time.Time) *Events {
	s.now = now
	return s
}

// LatestEvent returns the single most recent event for the user with
// no date filter (the live shift-open query), or nil without error
// when the user has no history.
func (s *Events) LatestEvent(ctx context.Context, userID string) (*model.ClockEvent, error) {
	var ev model.ClockEvent
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest event for %s: %w", userID, err)
	}
	return &ev, nil
}

// Append commits one event and publishes it. The timestamp is set at
// commit time when the caller left it zero; administrative corrections
// (force-close) pass an explicit one.
func (s *Events) Append(ctx context.Context, event *model.ClockEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("append clock event: %w", err)
	}
	s.hub.Publish(*event)
	return nil
}

// EventsForDay is the date-filtered history query used for display.
// It is intentionally separate from LatestEvent: the two can diverge
// across midnight and both behaviors are wanted.
func (s *Events) EventsForDay(ctx context.Context, userID string, day time.Time, loc *time.Location) ([]model.ClockEvent, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	var events []model.ClockEvent
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("events for day: %w", err)
	}
	return events, nil
}

// EventsForMonth feeds the monthly aggregation.
func (s *Events) EventsForMonth(ctx context.Context, userID string, year int, month time.Month, loc *time.Location) ([]model.ClockEvent, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	var events []model.ClockEvent
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("events for month: %w", err)
	}
	return events, nil
}

// RecentEvents returns all events inside the monitoring lookback
// window, newest first, for the open-shift monitor to reduce.
func (s *Events) RecentEvents(ctx context.Context, lookback time.Duration) ([]model.ClockEvent, error) {
	since := s.now().Add(-lookback)

	var events []model.ClockEvent
	err := s.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("timestamp DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	return events, nil
}

// Search is the paginated administrative listing. Filters are optional;
// the window is inclusive of start, exclusive of the day after end.
func (s *Events) Search(ctx context.Context, userID string, start, end *time.Time, take, skip int) ([]model.ClockEvent, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.ClockEvent{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if start != nil {
		q = q.Where("timestamp >= ?", *start)
	}
	if end != nil {
		q = q.Where("timestamp < ?", end.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	var events []model.ClockEvent
	err := q.Order("timestamp DESC").Limit(take).Offset(skip).Find(&events).Error
	if err != nil {
		return nil, 0, fmt.Errorf("search events: %w", err)
	}
	return events, total, nil
}

// ForceClose appends a synthetic exit for a shift the owner never
// closed, attributed to the acting administrator. The owner's state
// machine resolves it like any other exit: most recent wins. The guard
// is the unresolved-shift predicate, not the access lock, so a person
// who vanished mid-lunch can still be closed out.
func (s *Events) ForceClose(ctx context.Context, userID string, exitTimestamp time.Time, reason, adminUID string) (*model.ClockEvent, error) {
	last, err := s.LatestEvent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !core.HasUnresolvedShift(last) {
		return nil, fmt.Errorf("no unresolved shift for %s", userID)
	}

	event := &model.ClockEvent{
		UserID:      userID,
		Type:        model.EventExit,
		Timestamp:   exitTimestamp,
		IsManual:    true,
		ForcedClose: true,
		EditedBy:    &adminUID,
		EditReason:  &reason,
	}
	if err := s.Append(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
