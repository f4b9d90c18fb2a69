package common

import (
	"database/sql"
	"net"

	"frigotec.com/frigotec/core"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler is the shared base for ponto endpoints: it resolves the
// tenant database from the request host.
type Handler struct {
	Dm *core.DatabaseManager
}

func GetHostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func (h *Handler) GetDB(r *gin.Context) (*gorm.DB, *sql.Conn, error) {
	hostname := GetHostname(r.Request.Host)
	return h.Dm.GetDB(r.Request.Context(), hostname)
}
