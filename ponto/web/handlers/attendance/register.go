package attendance

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/ponto/model"
	web "frigotec.com/frigotec/web/common"
	"frigotec.com/frigotec/web/middlewares"
)

// RegisterClockEvent runs one registration attempt: capture ->
// geofence -> biometric -> persist. The UI disables its trigger while
// a request is pending; the expectedAction check makes a double submit
// harmless anyway.
func (ep *Endpoint) RegisterClockEvent(c *gin.Context) {
	identity, ok := middlewares.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("not authenticated"))
		return
	}

	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	frame, err := base64.StdEncoding.DecodeString(dto.Photo)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("photo must be base64-encoded JPEG"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	events, profiles, locations := ep.stores(db)
	ctx := c.Request.Context()

	profile, err := profiles.Find(ctx, identity.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	if profile == nil || !profile.CanRegisterAttendance {
		ep.writeRegistrationError(c, core.ErrPermissionDenied)
		return
	}

	zones, bypass, err := locations.AllowedFor(ctx, profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	var position *core.Position
	if dto.Latitude != nil && dto.Longitude != nil {
		position = &core.Position{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	}

	reference := ep.fetchReference(ctx, profile)

	recorder := core.NewRecorder(events, ep.evidence, ep.verifier, ep.log).
		WithMinConfidence(ep.settings.BiometricMinScore)

	event, err := recorder.Register(ctx, core.RegisterRequest{
		UserID:         identity.UID,
		Frame:          frame,
		Reference:      reference,
		Position:       position,
		Zones:          zones,
		GlobalBypass:   bypass,
		ExpectedAction: dto.ExpectedAction,
	})
	if err != nil {
		ep.writeRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(toClockEventDTO(*event)))
}

// fetchReference downloads the profile's stored avatar. A missing or
// unreadable reference returns nil and the recorder fails fast with
// NO_REFERENCE_PHOTO before spending a verification call.
func (ep *Endpoint) fetchReference(ctx context.Context, profile *model.UserProfile) []byte {
	if !profile.HasAvatar() {
		return nil
	}
	key := strings.TrimPrefix(*profile.AvatarURL, ep.evidence.BaseURL+"/")
	if key == *profile.AvatarURL {
		ep.log.Warn("avatar url outside evidence bucket",
			zap.String("uid", profile.UID), zap.String("url", *profile.AvatarURL))
		return nil
	}
	reference, err := ep.evidence.FetchReference(ctx, key)
	if err != nil {
		ep.log.Warn("reference photo fetch failed",
			zap.String("uid", profile.UID), zap.Error(err))
		return nil
	}
	return reference
}
