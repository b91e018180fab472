package handlers

import (
	"log"
	"net/http"

	"wisper/internal/realtime"
	"wisper/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub      *realtime.Hub
	upgrader *websocket.Upgrader
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Serve upgrades the request to a WebSocket and registers it as the user's
// live push channel for the lifetime of the connection. The channel is
// outbound-only: inbound frames are read and discarded until the socket
// closes, which keeps close/ping handling working.
func (h *WSHandler) Serve(c *gin.Context) {
	userID := utils.StringToUint(c.Query("userId"))
	if userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	if replaced := h.hub.Register(userID, ws); replaced != nil {
		// A newer connection for the same user supersedes this one.
		replaced.Close()
	}

	go h.readLoop(userID, ws)
}

func (h *WSHandler) readLoop(userID uint, ws *websocket.Conn) {
	defer func() {
		h.hub.Unregister(userID, ws)
		ws.Close()
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket for user %d closed: %v", userID, err)
			}
			return
		}
	}
}
