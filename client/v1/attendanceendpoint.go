package v1

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"frigotec.com/frigotec/client/v1/common"
)

type RegisterRequestDTO struct {
	Photo          string   `json:"photo"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	ExpectedAction string   `json:"expectedAction,omitempty"`
}

type ClockEventDTO struct {
	ID                int64     `json:"id"`
	Type              string    `json:"type"`
	Timestamp         time.Time `json:"timestamp"`
	LocationID        *string   `json:"locationId,omitempty"`
	PhotoEvidenceURL  *string   `json:"photoEvidenceUrl,omitempty"`
	BiometricVerified bool      `json:"biometricVerified"`
	IsManual          bool      `json:"isManual"`
	ForcedClose       bool      `json:"forcedClose"`
}

type StatusDTO struct {
	Phase       string          `json:"phase"`
	NextAction  string          `json:"nextAction"`
	IsShiftOpen bool            `json:"isShiftOpen"`
	Today       []ClockEventDTO `json:"today"`
}

type DailyRowDTO struct {
	Day           int        `json:"day"`
	Date          time.Time  `json:"date"`
	Entry         *time.Time `json:"entry,omitempty"`
	LunchStart    *time.Time `json:"lunchStart,omitempty"`
	LunchEnd      *time.Time `json:"lunchEnd,omitempty"`
	Exit          *time.Time `json:"exit,omitempty"`
	WorkedMinutes *int       `json:"workedMinutes,omitempty"`
	Late          bool       `json:"late"`
	Absence       bool       `json:"absence"`
	ExtraEvents   int        `json:"extraEvents,omitempty"`
}

type MonthlyReportDTO struct {
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Days    []DailyRowDTO `json:"days"`
	Summary struct {
		WorkedMinutes  int `json:"workedMinutes"`
		DaysWithEvents int `json:"daysWithEvents"`
		Absences       int `json:"absences"`
	} `json:"summary"`
}

type AttendanceEndpoint struct {
	transport *Transport
}

// RegisterClockEvent submits one capture. The raw JPEG frame is
// base64-encoded here; callers pass the bytes.
func (e *AttendanceEndpoint) RegisterClockEvent(frame []byte, latitude, longitude *float64, expectedAction string) (*ClockEventDTO, error) {
	payload := RegisterRequestDTO{
		Photo:          base64.StdEncoding.EncodeToString(frame),
		Latitude:       latitude,
		Longitude:      longitude,
		ExpectedAction: expectedAction,
	}

	resp, err := e.transport.Post("/api/ponto/v1.0/ponto/register", payload, nil)
	if err != nil {
		return nil, err
	}

	var result common.APIResponse[ClockEventDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (e *AttendanceEndpoint) Status() (*StatusDTO, error) {
	resp, err := e.transport.Get("/api/ponto/v1.0/ponto/status", nil)
	if err != nil {
		return nil, err
	}

	var result common.APIResponse[StatusDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (e *AttendanceEndpoint) MonthlyReport(year int, month time.Month, userID string) (*MonthlyReportDTO, error) {
	var query map[string]string
	if userID != "" {
		query = map[string]string{"userId": userID}
	}

	resp, err := e.transport.Get(fmt.Sprintf("/api/ponto/v1.0/ponto/report/%d/%d", year, int(month)), query)
	if err != nil {
		return nil, err
	}

	var result common.APIResponse[MonthlyReportDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}
