package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var superAdmins = []string{"uid-root"}

func TestDecideAccessPriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		snap     AccessSnapshot
		expected Outcome
		repair   bool
	}{
		{
			name:     "unauthenticated redirects to login",
			snap:     AccessSnapshot{},
			expected: OutcomeLogin,
		},
		{
			name: "super admin bypasses everything",
			snap: AccessSnapshot{
				IsAuthenticated: true, UID: "uid-root", Role: "pending",
				RequiresTimeClock: true, HasAvatarPhoto: false,
			},
			expected: OutcomeFullAccess,
			repair:   true,
		},
		{
			name: "super admin with correct grants needs no repair",
			snap: AccessSnapshot{
				IsAuthenticated: true, UID: "uid-root", Role: "admin",
				HasAvatarPhoto: true,
			},
			expected: OutcomeFullAccess,
		},
		{
			name: "pending role goes to approval screen",
			snap: AccessSnapshot{
				IsAuthenticated: true, UID: "u2", Role: "pending",
			},
			expected: OutcomePendingApproval,
		},
		{
			name: "missing avatar locks identity even with open shift",
			snap: AccessSnapshot{
				IsAuthenticated: true, UID: "u3", Role: "tecnico",
				IsShiftOpen: true,
			},
			expected: OutcomeAvatarLockdown,
		},
		{
			name: "closed shift redirects off other pages",
			snap: AccessSnapshot{
				IsAuthenticated: true, UID: "u4", Role: "tecnico",
				HasAvatarPhoto: true, RequiresTimeClock: true,
			},
			expected: OutcomeShiftLockRedirect,
		},
		{
			name: "closed shift on attendance page shows banner, no loop",
			snap: AccessSnapshot{
				IsAuthenticated: true, UID: "u4", Role: "tecnico",
				HasAvatarPhoto: true, RequiresTimeClock: true,
				IsOnAttendancePage: true,
			},
			expected: OutcomeShiftLockBanner,
		},
		{
			name: "open shift grants access",
			snap: AccessSnapshot{
				IsAuthenticated: true, UID: "u4", Role: "tecnico",
				HasAvatarPhoto: true, RequiresTimeClock: true,
				IsShiftOpen: true,
			},
			expected: OutcomeFullAccess,
		},
		{
			name: "no time clock requirement grants access",
			snap: AccessSnapshot{
				IsAuthenticated: true, UID: "u5", Role: "gestor",
				HasAvatarPhoto: true,
			},
			expected: OutcomeFullAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideAccess(tt.snap, superAdmins)
			assert.Equal(t, tt.expected, got.Outcome)
			assert.Equal(t, tt.repair, got.RepairProfile)
		})
	}
}

// The decision is total: every combination of the four flags yields
// exactly one outcome, and the super-admin bypass wins over all of
// them.
func TestDecideAccessTotality(t *testing.T) {
	bools := []bool{false, true}
	for _, requires := range bools {
		for _, open := range bools {
			for _, avatar := range bools {
				for _, pending := range bools {
					role := "tecnico"
					if pending {
						role = "pending"
					}
					snap := AccessSnapshot{
						IsAuthenticated:   true,
						UID:               "u-any",
						Role:              role,
						RequiresTimeClock: requires,
						IsShiftOpen:       open,
						HasAvatarPhoto:    avatar,
					}
					got := DecideAccess(snap, superAdmins)
					assert.NotEmpty(t, got.Outcome)
					assert.False(t, got.RepairProfile)

					snap.UID = "uid-root"
					assert.Equal(t, OutcomeFullAccess, DecideAccess(snap, superAdmins).Outcome)
				}
			}
		}
	}
}
