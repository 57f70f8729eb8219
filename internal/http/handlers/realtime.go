package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yungbote/forcebook-backend/internal/platform/logger"
	"github.com/yungbote/forcebook-backend/internal/realtime"
)

const (
	wsWriteWait  = 5 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// RealtimeHandler streams registry events to anonymous subscribers, over
// SSE or a websocket. Every client listens on the rebels channel.
type RealtimeHandler struct {
	log      *logger.Logger
	hub      *realtime.SSEHub
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{
		log: log.With("handler", "RealtimeHandler"),
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// GET /api/rebels/events
func (h *RealtimeHandler) Events(c *gin.Context) {
	client := h.hub.NewSSEClient()
	client.Logger = h.log.With("client_id", client.ID)
	h.hub.AddChannel(client, realtime.ChannelRebels)
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}

// GET /api/rebels/feed
func (h *RealtimeHandler) Feed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already answered the request.
		h.log.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	client := h.hub.NewSSEClient()
	client.Logger = h.log.With("client_id", client.ID)
	h.hub.AddChannel(client, realtime.ChannelRebels)
	defer h.hub.CloseClient(client)

	// The feed is one-way; reading only services pongs and notices close.
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case msg, ok := <-client.Outbound:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "bye"), time.Now().Add(wsWriteWait))
				return
			}
			raw, err := json.Marshal(msg)
			if err != nil {
				h.log.Warn("feed message marshal failed", "event", msg.Event, "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		}
	}
}
