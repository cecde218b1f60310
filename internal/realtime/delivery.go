package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"project-catalog/internal/domain"
	"project-catalog/internal/metrics"
)

// Frame types exchanged over a live channel.
const (
	FrameSubscribe    = "SUBSCRIBE"
	FrameUnsubscribe  = "UNSUBSCRIBE"
	FrameSubscribed   = "SUBSCRIBED"
	FrameUnsubscribed = "UNSUBSCRIBED"
	FrameNotification = "NOTIFICATION"
	FrameError        = "ERROR"
)

type Frame struct {
	Type        string               `json:"type"`
	Destination string               `json:"destination,omitempty"`
	Message     string               `json:"message,omitempty"`
	Payload     *domain.Notification `json:"payload,omitempty"`
}

// Deliverer pushes persisted notifications to whichever channel is
// registered for the recipient. Delivery is best effort: failures are
// logged and the dead channel is dropped, nothing is returned.
type Deliverer struct {
	registry *Registry
	timeout  time.Duration
}

func NewDeliverer(registry *Registry, timeout time.Duration) *Deliverer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Deliverer{registry: registry, timeout: timeout}
}

func (d *Deliverer) Push(ctx context.Context, recipientID uuid.UUID, notif *domain.Notification) {
	ch, ok := d.registry.Lookup(recipientID)
	if !ok {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeOffline).Inc()
		log.Debug().Str("recipient", recipientID.String()).Msg("no live session, notification kept for next fetch")
		return
	}

	payload, err := json.Marshal(Frame{Type: FrameNotification, Payload: notif})
	if err != nil {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		log.Error().Err(err).Str("recipient", recipientID.String()).Msg("encode notification frame")
		return
	}

	if err := d.send(ctx, ch, payload); err != nil {
		d.registry.RemoveIf(recipientID, ch)
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		log.Warn().Err(err).
			Str("recipient", recipientID.String()).
			Str("notification_id", notif.ID.String()).
			Msg("live delivery failed, session dropped")
		return
	}

	metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeDelivered).Inc()
}

// send bounds ch.Send by the delivery timeout even if the channel ignores
// its context.
func (d *Deliverer) send(ctx context.Context, ch Channel, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		result <- ch.Send(ctx, payload)
	}()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return fmt.Errorf("send notification: %w", ctx.Err())
	}
}
