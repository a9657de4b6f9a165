package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/zaqqye/ppdb_backend_v1/internal/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// CORS is fully open on the REST surface; same policy here.
		return true
	},
}

// EventsHandler upgrades an admin dashboard connection. Browsers cannot
// set headers on websocket dials, so the session token arrives as a
// query parameter and is validated before the upgrade.
func EventsHandler(jwtSecret string, hub *EventHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Tidak terautentikasi"})
			return
		}
		if _, err := middleware.ParseToken(jwtSecret, token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token tidak valid"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := newEventClient(hub, conn)
		hub.register <- client

		go client.writePump()
		client.readPump()
	}
}
