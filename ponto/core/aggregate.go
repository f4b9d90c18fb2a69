package core

import (
	"fmt"
	"time"

	"frigotec.com/frigotec/ponto/model"
)

// LateGrace is the tolerance applied before an entry is flagged late.
const LateGrace = 10 * time.Minute

// Schedule is the expected working day, used only for late and
// absence flags. Times are "15:04" strings as stored on the profile.
type Schedule struct {
	Start        string
	End          string
	LunchMinutes int
}

// DailyRow is the reconstruction of one calendar day. Only the first
// event of each type is bucketed; additional entry/exit cycles within
// the same day are counted in ExtraEvents but do not change totals.
type DailyRow struct {
	Day  int       `json:"day"`
	Date time.Time `json:"date"`

	Entry      *time.Time `json:"entry,omitempty"`
	LunchStart *time.Time `json:"lunchStart,omitempty"`
	LunchEnd   *time.Time `json:"lunchEnd,omitempty"`
	Exit       *time.Time `json:"exit,omitempty"`

	// WorkedMinutes is nil (not zero) unless the day has the complete
	// entry/lunch/exit cycle. An entry-exit pair without lunch events
	// is an incomplete record, not a lunch-free nine hour day.
	WorkedMinutes *int `json:"workedMinutes,omitempty"`

	Late        bool `json:"late"`
	Absence     bool `json:"absence"`
	ExtraEvents int  `json:"extraEvents,omitempty"`
}

type MonthlySummary struct {
	WorkedMinutes  int `json:"workedMinutes"`
	DaysWithEvents int `json:"daysWithEvents"`
	Absences       int `json:"absences"`
}

type MonthlyReport struct {
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Days    []DailyRow     `json:"days"`
	Summary MonthlySummary `json:"summary"`
}

// Aggregate reconstructs daily entry/lunch/exit pairs for one person's
// month of events. Event timestamps are bucketed by their calendar
// date in loc. Worked duration is (exit-entry)-(lunchEnd-lunchStart)
// and is only defined when all four events are present; any partial
// day is left undefined rather than guessed at.
func Aggregate(events []model.ClockEvent, year int, month time.Month, schedule Schedule, loc *time.Location) MonthlyReport {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDay := make(map[int][]model.ClockEvent)
	for _, ev := range events {
		local := ev.Timestamp.In(loc)
		if local.Year() != year || local.Month() != month {
			continue
		}
		byDay[local.Day()] = append(byDay[local.Day()], ev)
	}

	graceLimit, graceErr := parseClock(schedule.Start)

	report := MonthlyReport{Year: year, Month: int(month)}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, loc)
		row := DailyRow{Day: day, Date: date}

		for _, ev := range byDay[day] {
			ts := ev.Timestamp.In(loc)
			switch ev.Type {
			case model.EventEntry:
				if row.Entry == nil {
					row.Entry = &ts
					continue
				}
			case model.EventLunchStart:
				if row.LunchStart == nil {
					row.LunchStart = &ts
					continue
				}
			case model.EventLunchEnd:
				if row.LunchEnd == nil {
					row.LunchEnd = &ts
					continue
				}
			case model.EventExit:
				if row.Exit == nil {
					row.Exit = &ts
					continue
				}
			}
			row.ExtraEvents++
		}

		if row.Entry != nil && row.LunchStart != nil && row.LunchEnd != nil && row.Exit != nil {
			worked := row.Exit.Sub(*row.Entry) - row.LunchEnd.Sub(*row.LunchStart)
			minutes := int(worked.Minutes())
			row.WorkedMinutes = &minutes
			report.Summary.WorkedMinutes += minutes
		}

		if row.Entry != nil && graceErr == nil {
			limit := time.Date(year, month, day, graceLimit.Hour(), graceLimit.Minute(), 0, 0, loc).Add(LateGrace)
			row.Late = row.Entry.After(limit)
		}

		if len(byDay[day]) == 0 {
			weekday := date.Weekday()
			row.Absence = weekday != time.Saturday && weekday != time.Sunday
			if row.Absence {
				report.Summary.Absences++
			}
		} else {
			report.Summary.DaysWithEvents++
		}

		report.Days = append(report.Days, row)
	}

	return report
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule time %q: %w", s, err)
	}
	return t, nil
}
