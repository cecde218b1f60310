package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const topicPrefix = "/topic/notifications/"

// Topic is the subscription destination for a recipient's notifications.
func Topic(recipientID uuid.UUID) string {
	return topicPrefix + recipientID.String()
}

// WSChannel adapts a websocket connection to Channel. Writes are serialized
// because the connection allows only one concurrent writer.
type WSChannel struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWSChannel(conn *websocket.Conn) *WSChannel {
	return &WSChannel{conn: conn}
}

func (c *WSChannel) Send(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Zero deadline when ctx has none clears any previous one.
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Session is the frame protocol for one authenticated connection. A client
// may only subscribe to its own topic.
type Session struct {
	userID   uuid.UUID
	ch       Channel
	registry *Registry
	timeout  time.Duration
}

func NewSession(registry *Registry, userID uuid.UUID, ch Channel, replyTimeout time.Duration) *Session {
	if replyTimeout <= 0 {
		replyTimeout = 5 * time.Second
	}
	return &Session{userID: userID, ch: ch, registry: registry, timeout: replyTimeout}
}

// HandleFrame processes one inbound text frame. The returned error is a
// write failure on the channel, after which the connection should close.
func (s *Session) HandleFrame(ctx context.Context, raw []byte) error {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return s.reply(ctx, Frame{Type: FrameError, Message: "Malformed frame"})
	}

	switch frame.Type {
	case FrameSubscribe:
		recipientID, ok := s.ownTopic(frame.Destination)
		if !ok {
			log.Warn().Str("user_id", s.userID.String()).Str("destination", frame.Destination).Msg("rejected subscription")
			return s.reply(ctx, Frame{Type: FrameError, Message: "Cannot subscribe to " + frame.Destination})
		}
		s.registry.Register(recipientID, s.ch)
		log.Info().Str("user_id", recipientID.String()).Msg("user subscribed to notifications")
		return s.reply(ctx, Frame{Type: FrameSubscribed, Message: "Successfully subscribed to notifications"})

	case FrameUnsubscribe:
		s.registry.RemoveIf(s.userID, s.ch)
		return s.reply(ctx, Frame{Type: FrameUnsubscribed, Message: "Unsubscribed from notifications"})

	default:
		return s.reply(ctx, Frame{Type: FrameError, Message: "Unsupported frame type " + frame.Type})
	}
}

// Close drops any registration that still points at this session's channel.
func (s *Session) Close() {
	s.registry.UnregisterChannel(s.ch)
}

func (s *Session) ownTopic(destination string) (uuid.UUID, bool) {
	if !strings.HasPrefix(destination, topicPrefix) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimPrefix(destination, topicPrefix))
	if err != nil || id != s.userID {
		return uuid.Nil, false
	}
	return id, true
}

func (s *Session) reply(ctx context.Context, frame Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.ch.Send(ctx, payload)
}
