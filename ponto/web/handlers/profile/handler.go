package profile

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	pcore "frigotec.com/frigotec/core"
	"frigotec.com/frigotec/infrastructure/filesystem"
	common "frigotec.com/frigotec/ponto/web/common"
)

// Endpoint serves the profile routes, currently just the avatar
// capture that establishes the biometric reference photo.
type Endpoint struct {
	base     common.Handler
	evidence *filesystem.EvidenceStore
	log      *zap.Logger
}

type Deps struct {
	Dm       *pcore.DatabaseManager
	Evidence *filesystem.EvidenceStore
	Log      *zap.Logger
}

func Register(r *gin.RouterGroup, deps Deps) {
	endpoint := &Endpoint{
		base:     common.Handler{Dm: deps.Dm},
		evidence: deps.Evidence,
		log:      deps.Log,
	}

	r.POST("/profile/avatar", endpoint.UploadAvatar)
}
