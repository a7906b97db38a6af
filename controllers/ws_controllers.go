package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vilamar/restaurante-app/realtime"
	"github.com/vilamar/restaurante-app/utils"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades the connection and keeps reading control
// messages until the peer goes away. The only inbound message handled
// is {"event":"join-room","data":"kitchen"}.
func WebSocketHandler(c *gin.Context) {
	role := c.GetString("role")

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Falha no upgrade websocket: %v", err)
		return
	}

	realtime.RegisterClient(conn, role)
	utils.InfoLogger.Printf("Cliente websocket conectado (role=%s)", role)

	defer func() {
		realtime.UnregisterClient(conn)
		utils.InfoLogger.Printf("Cliente websocket desconectado (role=%s)", role)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg struct {
			Event string `json:"event"`
			Data  string `json:"data"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		if msg.Event == "join-room" && msg.Data != "" {
			realtime.JoinRoom(conn, msg.Data)
		}
	}
}
