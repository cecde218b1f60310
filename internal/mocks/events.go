package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"project-catalog/internal/domain"
)

// Publisher records published events instead of dispatching them.
type Publisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (p *Publisher) Publish(evt domain.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *Publisher) Events() []domain.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.DomainEvent(nil), p.events...)
}

type Pusher struct {
	mock.Mock
}

func (m *Pusher) Push(ctx context.Context, recipientID uuid.UUID, notif *domain.Notification) {
	m.Called(ctx, recipientID, notif)
}
