package status

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"famchat/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origin once the web client's production host is fixed.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler streams the live status feed to a connected client. The view is
// re-sent whenever a store event arrives and on every refresh tick, so
// statuses age out of the client's view without extra round-trips.
type WSHandler struct {
	service  *Service
	jwt      *jwt.Service
	interval time.Duration
}

func NewWSHandler(service *Service, jwtService *jwt.Service, interval time.Duration) *WSHandler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &WSHandler{service: service, jwt: jwtService, interval: interval}
}

type feedFrame struct {
	Type  string      `json:"type"`
	Feed  []OwnerFeed `json:"feed,omitempty"`
	Error string      `json:"error,omitempty"`
}

// HandleFeed serves GET /ws/statuses?token=JWT. Auth rides in the query
// because browsers cannot set headers on websocket dials.
func (h *WSHandler) HandleFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed ws: upgrade failed for user %d: %v", userID, err)
		return
	}
	defer conn.Close()

	feed := NewFeed()

	candidates, err := h.service.Candidates(c.Request.Context(), userID)
	if err != nil {
		// Surface the failure instead of holding an empty view open.
		_ = conn.WriteJSON(feedFrame{Type: "error", Error: "failed to load feed"})
		return
	}
	feed.Load(candidates)

	// Reads only serve to detect the peer going away; clients send nothing.
	ctx, cancel := withConnClose(c, conn)
	defer cancel()

	events, unsubscribe := h.service.SubscribeFor(ctx, userID)
	defer unsubscribe()

	emit := func(view []OwnerFeed, streamErr error) {
		frame := feedFrame{Type: "feed", Feed: view}
		if streamErr != nil {
			frame = feedFrame{Type: "error", Error: streamErr.Error()}
		}
		if err := conn.WriteJSON(frame); err != nil {
			log.Printf("feed ws: write to user %d failed: %v", userID, err)
		}
	}

	emit(feed.Snapshot(time.Now()), nil)

	feed.Run(ctx, events, h.interval, emit)
}

// withConnClose cancels the returned context once the websocket read side
// errors, which is how a closed browser tab shows up.
func withConnClose(c *gin.Context, conn *websocket.Conn) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return ctx, cancel
}
