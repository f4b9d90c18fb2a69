package model

import "time"

// Event types in transition order. A user's history must follow
// entry -> lunch_start -> lunch_end -> exit -> entry -> ...
// Manual corrections can break the sequence; readers tolerate that.
const (
	EventEntry      = "entry"
	EventLunchStart = "lunch_start"
	EventLunchEnd   = "lunch_end"
	EventExit       = "exit"
)

// LocationGlobal marks events admitted through the admin bypass
// rather than a geofenced work location.
const LocationGlobal = "global"

// ClockEvent is one row of the append-only attendance stream.
// Rows are never updated or deleted in normal operation; administrative
// corrections append new rows with IsManual set and an audit trail.
type ClockEvent struct {
	ID     int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID string `gorm:"column:user_id;size:64;not null;index:idx_user_ts,priority:1" json:"userId"`
	Type   string `gorm:"column:type;size:20;not null" json:"type"`

	// Timestamp is assigned by the database, not the client. It is the
	// authoritative ordering key for every "most recent" query.
	Timestamp time.Time `gorm:"column:timestamp;type:timestamp(3);not null;default:CURRENT_TIMESTAMP(3);index:idx_user_ts,priority:2;<-:create" json:"timestamp"`

	LocationID *string  `gorm:"column:location_id;size:64" json:"locationId,omitempty"`
	Latitude   *float64 `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude  *float64 `gorm:"column:longitude" json:"longitude,omitempty"`

	PhotoEvidenceURL  *string `gorm:"column:photo_evidence_url;size:512" json:"photoEvidenceUrl,omitempty"`
	BiometricVerified bool    `gorm:"column:biometric_verified;not null" json:"biometricVerified"`

	IsManual    bool    `gorm:"column:is_manual;not null" json:"isManual"`
	ForcedClose bool    `gorm:"column:forced_close;not null" json:"forcedClose"`
	EditedBy    *string `gorm:"column:edited_by;size:64" json:"editedBy,omitempty"`
	EditReason  *string `gorm:"column:edit_reason;size:255" json:"editReason,omitempty"`
}

func (ClockEvent) TableName() string {
	return "ponto_events"
}
