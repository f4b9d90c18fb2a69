package attendance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/utils"
	web "frigotec.com/frigotec/web/common"
	"frigotec.com/frigotec/web/middlewares"
)

type SearchParams struct {
	UserID    string        `json:"userId"`
	StartDate *web.DateOnly `json:"startDate"`
	EndDate   *web.DateOnly `json:"endDate"`
}

// SearchEvents is the paginated administrative listing across users,
// used by the management screens. Requires management permission.
func (ep *Endpoint) SearchEvents(c *gin.Context) {
	identity, ok := middlewares.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("not authenticated"))
		return
	}

	var searchParams SearchParams
	if err := c.ShouldBindJSON(&searchParams); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	limit := 100
	offset := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}
	if val, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = val
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	events, profiles, _ := ep.stores(db)
	ctx := c.Request.Context()

	viewer, err := profiles.Find(ctx, identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	if viewer == nil || !viewer.CanManageUsers {
		c.JSON(http.StatusForbidden, web.NewCodedErrorResponse(core.CodePermissionDenied, "sem permissão", false))
		return
	}

	start := localDate(searchParams.StartDate)
	end := localDate(searchParams.EndDate)

	rows, total, err := events.Search(ctx, searchParams.UserID, start, end, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(utils.Map(rows, toClockEventDTO), total))
}

// localDate re-anchors a parsed calendar date to the company timezone.
func localDate(d *web.DateOnly) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, utils.SaoPauloTZ)
	return &t
}
