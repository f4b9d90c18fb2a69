package attendance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/ponto/model"
	"frigotec.com/frigotec/utils"
	web "frigotec.com/frigotec/web/common"
	"frigotec.com/frigotec/web/middlewares"
)

// MonthlyReport reconstructs one person's month. A user always sees
// their own; seeing someone else's requires management permission.
// Unauthorized background prefetches (the UI fires these eagerly for
// report screens) are expected and logged at debug only.
func (ep *Endpoint) MonthlyReport(c *gin.Context) {
	report, status, err := ep.buildMonthlyReport(c)
	if err != nil {
		if status == http.StatusForbidden {
			ep.log.Debug("report prefetch denied", zap.Error(err))
			c.JSON(status, web.NewCodedErrorResponse(core.CodePermissionDenied, "sem permissão", false))
			return
		}
		c.JSON(status, web.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(report))
}

func (ep *Endpoint) buildMonthlyReport(c *gin.Context) (*core.MonthlyReport, int, error) {
	identity, ok := middlewares.IdentityFrom(c)
	if !ok {
		return nil, http.StatusUnauthorized, errNotAuthenticated
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return nil, http.StatusBadRequest, errBadPeriod
	}
	monthNum, err := strconv.Atoi(c.Param("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		return nil, http.StatusBadRequest, errBadPeriod
	}
	month := time.Month(monthNum)

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	defer conn.Close()

	events, profiles, _ := ep.stores(db)
	ctx := c.Request.Context()

	viewer, err := profiles.Find(ctx, identity.UID)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	subjectUID := identity.UID
	if requested := c.Query("userId"); requested != "" && requested != identity.UID {
		if viewer == nil || !viewer.CanManageUsers {
			return nil, http.StatusForbidden, errReportDenied
		}
		subjectUID = requested
	}

	subject := viewer
	if subjectUID != identity.UID {
		subject, err = profiles.Find(ctx, subjectUID)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
	}

	history, err := events.EventsForMonth(ctx, subjectUID, year, month, utils.SaoPauloTZ)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	report := core.Aggregate(history, year, month, scheduleFor(subject), utils.SaoPauloTZ)
	return &report, http.StatusOK, nil
}

func scheduleFor(profile *model.UserProfile) core.Schedule {
	if profile == nil || profile.ScheduleStart == "" {
		return core.Schedule{Start: "08:00", End: "17:00", LunchMinutes: 60}
	}
	return core.Schedule{
		Start:        profile.ScheduleStart,
		End:          profile.ScheduleEnd,
		LunchMinutes: profile.LunchMinutes,
	}
}

var (
	errNotAuthenticated = errors.New("not authenticated")
	errBadPeriod        = errors.New("invalid year/month")
	errReportDenied     = errors.New("viewer lacks management permission")
)
