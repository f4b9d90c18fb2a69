package utils

import (
	"fmt"
	"time"
)

// SaoPauloTZ is the company timezone. Calendar-day boundaries for
// attendance histories and reports are computed in it.
var SaoPauloTZ = time.FixedZone("BRT", -3*60*60)

func SaoPauloNow() time.Time {
	return time.Now().In(SaoPauloTZ)
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, SaoPauloTZ); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}

// FormatMinutes renders worked minutes as "8h 30m" for reports.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
