package attendance

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/ponto/model"
	web "frigotec.com/frigotec/web/common"
	"frigotec.com/frigotec/web/middlewares"
)

// Access evaluates the gate for the current user and the page they are
// on (?page=ponto marks the attendance screen). When the verdict flags
// a super-admin whose stored profile disagrees, the one-time
// reconciliation write runs before responding.
func (ep *Endpoint) Access(c *gin.Context) {
	identity, ok := middlewares.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusOK, web.NewSuccessResponse(AccessDTO{Outcome: core.OutcomeLogin}))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	events, profiles, _ := ep.stores(db)
	ctx := c.Request.Context()

	profile, err := profiles.Find(ctx, identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	last, err := events.LatestEvent(ctx, identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	snap := snapshotFor(identity.UID, profile, last, c.Query("page") == "ponto")
	decision := core.DecideAccess(snap, ep.settings.SuperAdmins)

	if decision.RepairProfile && profile != nil {
		if err := profiles.RepairSuperAdmin(ctx, identity.UID); err != nil {
			ep.log.Error("super admin reconciliation failed",
				zap.String("uid", identity.UID), zap.Error(err))
		} else {
			ep.log.Info("super admin profile reconciled", zap.String("uid", identity.UID))
		}
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(AccessDTO{Outcome: decision.Outcome}))
}

// AccessStream pushes the decision over SSE, re-evaluated on every
// committed clock event for the user. This is how the shift-lock
// lifts in real time when the person clocks in from another tab.
func (ep *Endpoint) AccessStream(c *gin.Context) {
	identity, ok := middlewares.IdentityFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	events, profiles, _ := ep.stores(db)
	ctx := c.Request.Context()

	profile, err := profiles.Find(ctx, identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	last, err := events.LatestEvent(ctx, identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	updates := make(chan core.AccessDecision, 4)
	snap := snapshotFor(identity.UID, profile, last, c.Query("page") == "ponto")
	watcher := core.NewLiveAccess(snap, ep.settings.SuperAdmins, func(d core.AccessDecision) {
		select {
		case updates <- d:
		default:
		}
	})

	sub, cancel := ep.hub.Subscribe(identity.UID)
	defer cancel()
	go watcher.Run(ctx, sub)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.SSEvent("access", AccessDTO{Outcome: watcher.Decision().Outcome})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case d := <-updates:
			c.SSEvent("access", AccessDTO{Outcome: d.Outcome})
			return true
		}
	})
}

func snapshotFor(uid string, profile *model.UserProfile, last *model.ClockEvent, onAttendancePage bool) core.AccessSnapshot {
	snap := core.AccessSnapshot{
		IsAuthenticated:    true,
		UID:                uid,
		IsShiftOpen:        core.IsShiftOpen(last),
		IsOnAttendancePage: onAttendancePage,
	}
	if profile != nil {
		snap.Role = profile.Role
		snap.RequiresTimeClock = profile.RequiresTimeClock
		snap.HasAvatarPhoto = profile.HasAvatar()
	}
	return snap
}
