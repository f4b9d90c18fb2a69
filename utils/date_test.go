package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISOTime(t *testing.T) {
	t.Run("rfc3339 keeps its offset", func(t *testing.T) {
		parsed, err := ParseISOTime("2026-03-02T08:30:00-03:00")
		require.NoError(t, err)
		assert.Equal(t, 8, parsed.Hour())
		_, offset := parsed.Zone()
		assert.Equal(t, -3*60*60, offset)
	})

	t.Run("naive timestamps are local company time", func(t *testing.T) {
		parsed, err := ParseISOTime("2026-03-02 08:30:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 2, 8, 30, 0, 0, SaoPauloTZ), *parsed)
	})

	t.Run("date only", func(t *testing.T) {
		parsed, err := ParseISOTime("2026-03-02")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, SaoPauloTZ), *parsed)
	})

	t.Run("empty and garbage fail", func(t *testing.T) {
		_, err := ParseISOTime("")
		assert.Error(t, err)
		_, err = ParseISOTime("ontem de manhã")
		assert.Error(t, err)
	})
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "8h 00m", FormatMinutes(480))
	assert.Equal(t, "8h 05m", FormatMinutes(485))
	assert.Equal(t, "0h 45m", FormatMinutes(45))
}
