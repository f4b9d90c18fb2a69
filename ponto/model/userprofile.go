package model

import "gorm.io/datatypes"

// Roles mirrored from the identity provider. Only the values the
// access gate branches on are named here.
const (
	RoleAdmin   = "admin"
	RolePending = "pending"
)

// UserProfile is owned by the identity/CRUD collaborators. This service
// reads it, and writes it exactly once per super-admin reconciliation.
type UserProfile struct {
	UID  string `gorm:"primaryKey;column:uid;size:64" json:"uid"`
	Name string `gorm:"column:name;size:120" json:"name"`

	Role                  string `gorm:"column:role;size:32;not null" json:"role"`
	RequiresTimeClock     bool   `gorm:"column:requires_time_clock;not null" json:"requiresTimeClock"`
	CanRegisterAttendance bool   `gorm:"column:can_register_attendance;not null" json:"canRegisterAttendance"`
	CanManageUsers        bool   `gorm:"column:can_manage_users;not null" json:"canManageUsers"`

	// AllowedLocationIDs is a JSON array of work_locations ids. Empty
	// for an admin means unrestricted (global bypass).
	AllowedLocationIDs datatypes.JSON `gorm:"column:allowed_location_ids" json:"allowedLocationIds"`

	// AvatarURL is the stored biometric reference image.
	AvatarURL *string `gorm:"column:avatar_url;size:512" json:"avatarUrl,omitempty"`

	// Expected schedule, used only for late/absence flags in reports.
	ScheduleStart string `gorm:"column:schedule_start;size:5" json:"scheduleStart"` // "08:00"
	ScheduleEnd   string `gorm:"column:schedule_end;size:5" json:"scheduleEnd"`    // "17:00"
	LunchMinutes  int    `gorm:"column:lunch_minutes" json:"lunchMinutes"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) HasAvatar() bool {
	return p.AvatarURL != nil && *p.AvatarURL != ""
}
