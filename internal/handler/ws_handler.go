package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cursolivre/cursolivre-backend/internal/config"
	"github.com/cursolivre/cursolivre-backend/internal/middleware"
	ws "github.com/cursolivre/cursolivre-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams enrollment lifecycle events to admin dashboards.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// EnrollmentStream godoc
// WS /ws/v1/admin/enrollments/stream
// Upgrades to WebSocket and forwards every enrollment event (created,
// decided, removed) published on the Redis channel.
func (h *WSHandler) EnrollmentStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rawConn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	conn := ws.NewConn(rawConn)
	defer conn.Close()

	wsLog := h.log.With().Int("admin_id", claims.UserID).Logger()
	wsLog.Info().Msg("Admin connected to enrollment stream")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.EnrollmentEventsChannel())

	done := make(chan struct{})

	go func() {
		defer close(done)
		ch := sub.Channel()
		for msg := range ch {
			notif := ws.EnrollmentNotification{
				Event:   ws.EventEnrollment,
				Payload: []byte(msg.Payload),
			}
			if err := conn.WriteTyped(notif); err != nil {
				wsLog.Debug().Err(err).Msg("Stopping forwarder, write failed")
				return
			}
		}
	}()

	for {
		var msg ws.RequestEnvelope
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			if err := conn.WriteTyped(ws.PongResponse{Event: ws.EventPong}); err != nil {
				wsLog.Debug().Err(err).Msg("Pong write failed")
			}
		default:
			conn.WriteError("unknown action")
		}
	}

	sub.Close()
	<-done
	wsLog.Info().Msg("Admin disconnected from enrollment stream")
}
