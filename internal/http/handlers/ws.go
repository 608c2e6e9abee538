package handlers

import (
	"net/http"
	"os"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/logger"
	"mlm_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AdminFeed upgrades an admin connection onto the live ledger feed.
// The token comes in as a query parameter since browsers cannot set
// headers on websocket dials.
func (h *Handler) AdminFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		fail(c, http.StatusUnauthorized, "token required")
		return
	}

	claims, err := service.ParseJWT(token)
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid token")
		return
	}
	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleSuperAdmin {
		fail(c, http.StatusForbidden, "admin access required")
		return
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}

	h.Feed.Attach(conn)
}
