package chat

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"famchat/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler keeps a chat connection open per user so new messages reach
// online recipients immediately.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

// HandleWebSocket serves GET /ws/chat?token=JWT. Auth rides in the query
// because browsers cannot set headers on websocket dials.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("chat ws: upgrade failed for user %d: %v", userID, err)
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	log.Printf("chat ws: user %d connected (%d online)", userID, h.hub.OnlineCount())

	// The connection is push-only; reads just detect disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("chat ws: user %d disconnected", userID)
			return
		}
	}
}
