package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/utils"
	web "frigotec.com/frigotec/web/common"
	"frigotec.com/frigotec/web/middlewares"
)

// Status returns the derived phase, the single legal next action, the
// live shift-open flag, and today's displayed history. The shift-open
// flag deliberately ignores the calendar day (cross-midnight shifts);
// the history deliberately does not. Two queries, two behaviors.
func (ep *Endpoint) Status(c *gin.Context) {
	identity, ok := middlewares.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("not authenticated"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	events, _, _ := ep.stores(db)
	ctx := c.Request.Context()

	last, err := events.LatestEvent(ctx, identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	today, err := events.EventsForDay(ctx, identity.UID, utils.SaoPauloNow(), utils.SaoPauloTZ)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	dto := StatusDTO{
		Phase:       core.PhaseFor(last),
		NextAction:  core.NextAction(last),
		IsShiftOpen: core.IsShiftOpen(last),
		Today:       utils.Map(today, toClockEventDTO),
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(dto))
}
