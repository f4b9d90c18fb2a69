package profile

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"frigotec.com/frigotec/infrastructure/filesystem"
	"frigotec.com/frigotec/ponto/store"
	web "frigotec.com/frigotec/web/common"
	"frigotec.com/frigotec/web/middlewares"
)

type AvatarDTO struct {
	// Photo is the captured frame, base64-encoded JPEG.
	Photo string `json:"photo" binding:"required"`
}

type AvatarResponseDTO struct {
	AvatarURL string `json:"avatarUrl"`
}

// UploadAvatar stores the captured frame as the user's reference photo
// and records its URL on the profile. Every registration attempt from
// here on is verified against this image, so the key is randomized to
// make each capture a distinct, auditable object.
func (ep *Endpoint) UploadAvatar(c *gin.Context) {
	identity, ok := middlewares.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("not authenticated"))
		return
	}

	var dto AvatarDTO
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

	ctx := c.Request.Context()

	key := fmt.Sprintf("avatars/%s/%s.jpg", identity.UID, uuid.NewString())
	if err := filesystem.WriteFile(ep.evidence.Bucket, key, "image/jpeg", ctx, frame); err != nil {
		ep.log.Error("avatar upload failed", zap.String("uid", identity.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse("failed to store avatar"))
		return
	}

	url := fmt.Sprintf("%s/%s", ep.evidence.BaseURL, key)
	if err := store.NewProfiles(db).SetAvatar(ctx, identity.UID, url); err != nil {
		ep.log.Error("avatar url update failed", zap.String("uid", identity.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	ep.log.Info("avatar updated", zap.String("uid", identity.UID))
	c.JSON(http.StatusCreated, web.NewSuccessResponse(AvatarResponseDTO{AvatarURL: url}))
}
