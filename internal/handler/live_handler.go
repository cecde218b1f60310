package handler

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"project-catalog/internal/middleware"
	"project-catalog/internal/realtime"
)

const liveReplyTimeout = 5 * time.Second

// LiveHandler serves the notification websocket. Authentication runs before
// the upgrade, so the connection inherits the user from fiber locals.
type LiveHandler struct {
	registry *realtime.Registry
}

func NewLiveHandler(registry *realtime.Registry) *LiveHandler {
	return &LiveHandler{registry: registry}
}

func (h *LiveHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *LiveHandler) Handle() fiber.Handler {
	return websocket.New(h.serve)
}

func (h *LiveHandler) serve(conn *websocket.Conn) {
	userID, ok := conn.Locals(middleware.UserIDContextKey).(uuid.UUID)
	if !ok {
		_ = conn.Close()
		return
	}

	session := realtime.NewSession(h.registry, userID, realtime.NewWSChannel(conn), liveReplyTimeout)
	defer func() {
		session.Close()
		_ = conn.Close()
		log.Debug().Str("user_id", userID.String()).Msg("live connection closed")
	}()

	ctx := context.Background()
	for {
		messageType, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if err := session.HandleFrame(ctx, raw); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("live reply failed")
			return
		}
	}
}
