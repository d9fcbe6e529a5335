package events

import (
	"context"
	"sync"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Handler consumes committed domain events.
type Handler interface {
	Handle(ctx context.Context, evt entities.DomainEvent) error
}

type HandlerFunc func(ctx context.Context, evt entities.DomainEvent) error

func (f HandlerFunc) Handle(ctx context.Context, evt entities.DomainEvent) error {
	return f(ctx, evt)
}

// Outbox buffers events published after a commit and fans them out to the
// registered handlers on a single goroutine. Publishing never blocks the
// caller: when the buffer is full the event is dropped and logged.
type Outbox struct {
	queue    chan entities.DomainEvent
	log      *zap.Logger
	mu       sync.RWMutex
	handlers []Handler
}

var _ interfaces.IEventPublisher = (*Outbox)(nil)

func NewOutbox(buffer int, log *zap.Logger) *Outbox {
	if buffer <= 0 {
		buffer = 1
	}
	return &Outbox{queue: make(chan entities.DomainEvent, buffer), log: log}
}

func (o *Outbox) Register(h Handler) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.handlers = append(o.handlers, h)
}

func (o *Outbox) Publish(_ context.Context, events []entities.DomainEvent) {
	for _, evt := range events {
		select {
		case o.queue <- evt:
		default:
			o.log.Warn("[events][outbox] buffer full, event dropped",
				zap.String("type", string(evt.Type)),
				zap.String("order_id", evt.OrderID),
			)
		}
	}
}

// Run delivers events until ctx is cancelled, then drains what is already
// queued.
func (o *Outbox) Run(ctx context.Context) {
	for {
		select {
		case evt := <-o.queue:
			o.deliver(ctx, evt)
		case <-ctx.Done():
			o.drain()
			return
		}
	}
}

func (o *Outbox) drain() {
	ctx := context.Background()
	for {
		select {
		case evt := <-o.queue:
			o.deliver(ctx, evt)
		default:
			return
		}
	}
}

func (o *Outbox) deliver(ctx context.Context, evt entities.DomainEvent) {
	o.mu.RLock()
	handlers := o.handlers
	o.mu.RUnlock()

	for _, h := range handlers {
		if err := h.Handle(ctx, evt); err != nil {
			o.log.Warn("[events][outbox] handler failed",
				zap.String("type", string(evt.Type)),
				zap.String("order_id", evt.OrderID),
				zap.Error(err),
			)
		}
	}
}
