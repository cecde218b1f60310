// Package eventbus is an in-process publish/subscribe bus for domain events.
// Publish hands an event to a bounded queue and returns; a single dispatcher
// goroutine fans each event out to its subscribers, which run concurrently up
// to a fixed worker limit.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"project-catalog/internal/domain"
	"project-catalog/internal/metrics"
)

// Handler consumes one event. A returned error or panic is logged by the bus
// and never reaches the publisher.
type Handler func(ctx context.Context, evt domain.DomainEvent) error

// Publisher is the write side of the bus, as seen by services that emit
// events.
type Publisher interface {
	Publish(evt domain.DomainEvent)
}

type Options struct {
	Workers        int
	QueueSize      int
	HandlerTimeout time.Duration
}

type subscription struct {
	name    string
	handler Handler
}

type Bus struct {
	opts Options

	subMu       sync.RWMutex
	subscribers map[domain.EventKind][]subscription

	mu     sync.RWMutex
	closed bool
	queue  chan domain.DomainEvent

	sem       *semaphore.Weighted
	inflight  sync.WaitGroup
	startOnce sync.Once
	done      chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

func New(opts Options) *Bus {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{
		opts:        opts,
		subscribers: make(map[domain.EventKind][]subscription),
		queue:       make(chan domain.DomainEvent, opts.QueueSize),
		sem:         semaphore.NewWeighted(int64(opts.Workers)),
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Subscribe registers handler for one event kind. Several handlers may be
// registered for the same kind; each runs independently.
func (b *Bus) Subscribe(kind domain.EventKind, name string, handler Handler) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.subscribers[kind] = append(b.subscribers[kind], subscription{name: name, handler: handler})
}

// Start launches the dispatcher. When ctx is cancelled the bus stops
// accepting events but still runs everything already queued; handlers are
// only aborted by a Close whose deadline expires.
func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		context.AfterFunc(ctx, b.stopIntake)
		go b.run()
	})
}

// Publish enqueues evt and returns without waiting for any handler. When the
// queue is full the event is dispatched from its own goroutine instead of
// blocking the caller. Events published after Close are discarded.
func (b *Bus) Publish(evt domain.DomainEvent) {
	if evt == nil {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		log.Warn().Str("event", string(evt.Kind())).Str("recipient", evt.Recipient().String()).Msg("event published after bus close, discarded")
		return
	}

	metrics.EventsPublishedTotal.WithLabelValues(string(evt.Kind())).Inc()

	select {
	case b.queue <- evt:
	default:
		metrics.EventQueueOverflowTotal.Inc()
		log.Warn().Str("event", string(evt.Kind())).Str("recipient", evt.Recipient().String()).Msg("event queue full, dispatching on overflow path")
		b.inflight.Add(1)
		go func() {
			defer b.inflight.Done()
			b.dispatch(evt)
		}()
	}
}

// Close stops accepting events, dispatches everything already queued and
// waits for running handlers. If ctx ends first, running handlers are
// cancelled and ctx's error is returned.
func (b *Bus) Close(ctx context.Context) error {
	b.stopIntake()

	// Queued events still need a dispatcher if Start was never called.
	b.Start(context.Background())

	select {
	case <-b.done:
	case <-ctx.Done():
		b.cancel()
		return fmt.Errorf("drain event queue: %w", ctx.Err())
	}

	drained := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		b.cancel()
		return nil
	case <-ctx.Done():
		b.cancel()
		return fmt.Errorf("wait for event handlers: %w", ctx.Err())
	}
}

func (b *Bus) stopIntake() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.queue)
}

func (b *Bus) run() {
	defer close(b.done)
	for evt := range b.queue {
		b.dispatch(evt)
	}
}

func (b *Bus) dispatch(evt domain.DomainEvent) {
	b.subMu.RLock()
	subs := b.subscribers[evt.Kind()]
	b.subMu.RUnlock()

	for _, sub := range subs {
		if err := b.sem.Acquire(b.ctx, 1); err != nil {
			log.Error().Err(err).Str("event", string(evt.Kind())).Str("handler", sub.name).
				Str("recipient", evt.Recipient().String()).Msg("event handler not started")
			metrics.EventHandlerFailuresTotal.WithLabelValues(string(evt.Kind())).Inc()
			continue
		}

		b.inflight.Add(1)
		go func(sub subscription) {
			defer b.inflight.Done()
			defer b.sem.Release(1)
			b.invoke(sub, evt)
		}(sub)
	}
}

func (b *Bus) invoke(sub subscription, evt domain.DomainEvent) {
	ctx, cancel := context.WithTimeout(b.ctx, b.opts.HandlerTimeout)
	defer cancel()

	start := time.Now()
	err := safeCall(ctx, sub.handler, evt)
	metrics.EventHandlerDuration.WithLabelValues(string(evt.Kind())).Observe(time.Since(start).Seconds())

	if err == nil {
		return
	}

	metrics.EventHandlerFailuresTotal.WithLabelValues(string(evt.Kind())).Inc()
	level := zerolog.ErrorLevel
	if errors.Is(err, context.DeadlineExceeded) {
		level = zerolog.WarnLevel
	}
	log.WithLevel(level).Err(err).
		Str("event", string(evt.Kind())).
		Str("handler", sub.name).
		Str("recipient", evt.Recipient().String()).
		Msg("event handler failed")
}

func safeCall(ctx context.Context, h Handler, evt domain.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, evt)
}
