package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	pcore "frigotec.com/frigotec/core"
	"frigotec.com/frigotec/infrastructure/communication"
	"frigotec.com/frigotec/infrastructure/devops"
	"frigotec.com/frigotec/infrastructure/filesystem"
	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/ponto/store"
	common "frigotec.com/frigotec/ponto/web/common"
	web "frigotec.com/frigotec/web/common"
)

// Endpoint wires the attendance routes. The verifier and evidence
// store are shared; the event/profile/location stores are bound to the
// per-request tenant database.
type Endpoint struct {
	base     common.Handler
	hub      *store.Hub
	verifier core.FaceVerifier
	evidence *filesystem.EvidenceStore
	settings devops.PontoSettings
	slack    *communication.Slack
	log      *zap.Logger
}

type Deps struct {
	Dm       *pcore.DatabaseManager
	Hub      *store.Hub
	Verifier core.FaceVerifier
	Evidence *filesystem.EvidenceStore
	Settings devops.PontoSettings
	Slack    *communication.Slack
	Log      *zap.Logger
}

func Register(r *gin.RouterGroup, deps Deps) {
	endpoint := &Endpoint{
		base:     common.Handler{Dm: deps.Dm},
		hub:      deps.Hub,
		verifier: deps.Verifier,
		evidence: deps.Evidence,
		settings: deps.Settings,
		slack:    deps.Slack,
		log:      deps.Log,
	}

	r.POST("/ponto/register", endpoint.RegisterClockEvent)
	r.GET("/ponto/status", endpoint.Status)
	r.GET("/ponto/access", endpoint.Access)
	r.GET("/ponto/access/stream", endpoint.AccessStream)
	r.GET("/ponto/report/:year/:month", endpoint.MonthlyReport)
	r.GET("/ponto/report/:year/:month/export", endpoint.ExportMonthlyReport)
	r.POST("/ponto/force-close", endpoint.ForceClose)
	r.POST("/ponto/events/search", endpoint.SearchEvents)
}

func (ep *Endpoint) stores(db *gorm.DB) (*store.Events, *store.Profiles, *store.Locations) {
	return store.NewEvents(db, ep.hub), store.NewProfiles(db), store.NewLocations(db)
}

// writeRegistrationError maps the failure taxonomy onto HTTP statuses.
// Nothing is swallowed: every failure reaches the caller with its code.
func (ep *Endpoint) writeRegistrationError(c *gin.Context, err error) {
	re, ok := core.AsRegistrationError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(statusFor(re.Code), web.NewCodedErrorResponse(re.Code, re.Error(), re.Retryable()))
}

func statusFor(code string) int {
	switch code {
	case core.CodeOutOfPerimeter, core.CodePermissionDenied:
		return http.StatusForbidden
	case core.CodeNoReferencePhoto:
		return http.StatusPreconditionFailed
	case core.CodeBiometricMismatch:
		return http.StatusUnprocessableEntity
	case core.CodeBiometricServiceError:
		return http.StatusBadGateway
	case core.CodeCameraUnavailable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
