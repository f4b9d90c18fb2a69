package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestResolveSchema(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		dsn      string
		expected string
	}{
		{
			name:     "first hostname label is the tenant",
			hostname: "matriz.frigotec.com.br",
			expected: "matriz",
		},
		{
			name:     "bare hostname is its own tenant",
			hostname: "galpao",
			expected: "galpao",
		},
		{
			name:     "localhost falls back to the DSN schema",
			hostname: "localhost",
			dsn:      "user:pass@tcp(127.0.0.1:3306)/ponto_dev?parseTime=true",
			expected: "ponto_dev",
		},
		{
			name:     "localhost with no DSN query params",
			hostname: "localhost",
			dsn:      "user:pass@tcp(127.0.0.1:3306)/ponto_dev",
			expected: "ponto_dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveSchema(tt.hostname, tt.dsn))
		})
	}
}

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected logger.LogLevel
	}{
		{name: "silent", level: LogLevelSilent, expected: logger.Silent},
		{name: "error", level: LogLevelError, expected: logger.Error},
		{name: "warn", level: LogLevelWarn, expected: logger.Warn},
		{name: "info", level: LogLevelInfo, expected: logger.Info},
		{name: "unconfigured defaults to info", level: 0, expected: logger.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dm := &DatabaseManager{LogLevel: tt.level}
			assert.Equal(t, tt.expected, dm.gormLogLevel())
		})
	}
}
