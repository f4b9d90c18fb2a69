package core

// Outcome of an access evaluation. Exactly one is produced for any
// snapshot; evaluation order is the priority order below.
type Outcome string

const (
	OutcomeLogin             Outcome = "REDIRECT_LOGIN"
	OutcomeFullAccess        Outcome = "FULL_ACCESS"
	OutcomePendingApproval   Outcome = "REDIRECT_PENDING"
	OutcomeAvatarLockdown    Outcome = "REDIRECT_AVATAR_LOCKDOWN"
	OutcomeShiftLockRedirect Outcome = "REDIRECT_ATTENDANCE"
	OutcomeShiftLockBanner   Outcome = "SHIFT_LOCK_BANNER"
)

// AccessSnapshot is everything the gate looks at. It is assembled by
// the caller on every relevant state change (auth, profile, live
// shift-open status) so the decision never requires a reload.
type AccessSnapshot struct {
	IsAuthenticated    bool
	UID                string
	Role               string
	RequiresTimeClock  bool
	HasAvatarPhoto     bool
	IsShiftOpen        bool
	IsOnAttendancePage bool
}

// AccessDecision is the gate's verdict. RepairProfile is set when a
// super-admin's stored profile disagrees with its expected grants and
// the caller should run the one-time reconciliation write.
type AccessDecision struct {
	Outcome       Outcome
	RepairProfile bool
}

// DecideAccess runs the priority chain; first match wins.
//
//  1. unauthenticated -> login
//  2. super-admin allow list -> full access, bypassing everything
//  3. pending role -> pending approval screen
//  4. no reference photo -> avatar lockdown
//  5. requires time clock with no open shift -> shift lock
//  6. full access
//
// superAdmins is the configuration-driven allow list of privileged
// identities (uids), not a hardcoded sentinel.
func DecideAccess(snap AccessSnapshot, superAdmins []string) AccessDecision {
	if !snap.IsAuthenticated {
		return AccessDecision{Outcome: OutcomeLogin}
	}

	for _, uid := range superAdmins {
		if uid == snap.UID {
			repair := snap.Role != "admin" || snap.RequiresTimeClock
			return AccessDecision{Outcome: OutcomeFullAccess, RepairProfile: repair}
		}
	}

	if snap.Role == "pending" {
		return AccessDecision{Outcome: OutcomePendingApproval}
	}

	if !snap.HasAvatarPhoto {
		return AccessDecision{Outcome: OutcomeAvatarLockdown}
	}

	if snap.RequiresTimeClock && !snap.IsShiftOpen {
		if snap.IsOnAttendancePage {
			// Already on the attendance screen: render it with a
			// blocking banner instead of looping redirects.
			return AccessDecision{Outcome: OutcomeShiftLockBanner}
		}
		return AccessDecision{Outcome: OutcomeShiftLockRedirect}
	}

	return AccessDecision{Outcome: OutcomeFullAccess}
}
