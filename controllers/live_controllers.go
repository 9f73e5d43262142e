package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pdvapp/restaurant-pos/live"
	"github.com/pdvapp/restaurant-pos/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler upgrades the connection and parks it in the hub until the
// client disconnects.
func LiveHandler(c *gin.Context) {
	role, _ := c.Get("role")
	roleStr, _ := role.(string)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("live: upgrade failed: %v", err)
		return
	}

	live.RegisterClient(conn, roleStr)

	go func() {
		defer live.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
