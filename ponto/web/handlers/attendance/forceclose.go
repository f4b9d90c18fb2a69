package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/utils"
	web "frigotec.com/frigotec/web/common"
	"frigotec.com/frigotec/web/middlewares"
)

// ForceClose appends an administrative exit for a shift the owner left
// open. The write is attributed to the acting admin and announced on
// Slack so nobody is surprised by a synthetic exit in their history.
func (ep *Endpoint) ForceClose(c *gin.Context) {
	identity, ok := middlewares.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("not authenticated"))
		return
	}

	var dto ForceCloseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	exitTimestamp, err := utils.ParseISOTime(dto.ExitTimestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("exitTimestamp must be RFC3339"))
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

	admin, err := profiles.Find(ctx, identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	if admin == nil || !admin.CanManageUsers {
		c.JSON(http.StatusForbidden, web.NewCodedErrorResponse(core.CodePermissionDenied, "sem permissão", false))
		return
	}

	event, err := events.ForceClose(ctx, dto.UserID, *exitTimestamp, dto.Reason, identity.UID)
	if err != nil {
		c.JSON(http.StatusConflict, web.NewErrorResponse(err.Error()))
		return
	}

	ep.log.Info("shift force-closed",
		zap.String("userId", dto.UserID),
		zap.String("adminUid", identity.UID),
		zap.String("reason", dto.Reason))

	if ep.slack != nil {
		go ep.slack.NotifyForcedClose(dto.UserID, dto.Reason, identity.UID)
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(toClockEventDTO(*event)))
}
