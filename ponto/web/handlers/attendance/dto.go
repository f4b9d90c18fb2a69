package attendance

import (
	"time"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/ponto/model"
)

type RegisterDTO struct {
	// Photo is the captured frame, base64-encoded JPEG.
	Photo string `json:"photo" binding:"required"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// ExpectedAction guards against double submits from a stale form.
	ExpectedAction string `json:"expectedAction,omitempty"`
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

func toClockEventDTO(ev model.ClockEvent) ClockEventDTO {
	return ClockEventDTO{
		ID:                ev.ID,
		Type:              ev.Type,
		Timestamp:         ev.Timestamp,
		LocationID:        ev.LocationID,
		PhotoEvidenceURL:  ev.PhotoEvidenceURL,
		BiometricVerified: ev.BiometricVerified,
		IsManual:          ev.IsManual,
		ForcedClose:       ev.ForcedClose,
	}
}

type StatusDTO struct {
	Phase       core.Phase      `json:"phase"`
	NextAction  string          `json:"nextAction"`
	IsShiftOpen bool            `json:"isShiftOpen"`
	Today       []ClockEventDTO `json:"today"`
}

type AccessDTO struct {
	Outcome core.Outcome `json:"outcome"`
}

type ForceCloseDTO struct {
	UserID        string `json:"userId" binding:"required"`
	ExitTimestamp string `json:"exitTimestamp" binding:"required"` // RFC3339
	Reason        string `json:"reason" binding:"required"`
}
