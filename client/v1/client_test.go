package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ponto/v1.0/ponto/status", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"phase":"CLOCKED_IN","nextAction":"lunch_start","isShiftOpen":true,"today":[]}}`))
	}))
	defer server.Close()

	client := NewPontoClient(server.URL, "test-token")

	status, err := client.Attendance.Status()
	require.NoError(t, err)
	assert.Equal(t, "CLOCKED_IN", status.Phase)
	assert.Equal(t, "lunch_start", status.NextAction)
	assert.True(t, status.IsShiftOpen)
}

func TestAttendanceRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ponto/v1.0/ponto/register", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "aGk=", body["photo"])
		assert.Equal(t, "entry", body["expectedAction"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":1,"type":"entry","timestamp":"2026-03-02T08:00:00-03:00","biometricVerified":true}}`))
	}))
	defer server.Close()

	client := NewPontoClient(server.URL, "test-token")

	event, err := client.Attendance.RegisterClockEvent([]byte("hi"), nil, nil, "entry")
	require.NoError(t, err)
	assert.Equal(t, int64(1), event.ID)
	assert.Equal(t, "entry", event.Type)
	assert.True(t, event.BiometricVerified)
}

func TestAttendanceRegisterErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":"OUT_OF_PERIMETER","message":"fora do perímetro de registro","retryable":true}`))
	}))
	defer server.Close()

	client := NewPontoClient(server.URL, "test-token")

	_, err := client.Attendance.RegisterClockEvent([]byte("hi"), nil, nil, "entry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "OUT_OF_PERIMETER")
}

func TestAttendanceMonthlyReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ponto/v1.0/ponto/report/2026/3", r.URL.Path)
		assert.Equal(t, "u-42", r.URL.Query().Get("userId"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"year":2026,"month":3,"days":[],"summary":{"workedMinutes":480,"daysWithEvents":1,"absences":0}}}`))
	}))
	defer server.Close()

	client := NewPontoClient(server.URL, "test-token")

	report, err := client.Attendance.MonthlyReport(2026, time.March, "u-42")
	require.NoError(t, err)
	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, 480, report.Summary.WorkedMinutes)
}
