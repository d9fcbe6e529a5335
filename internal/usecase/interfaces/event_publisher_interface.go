package interfaces

import (
	"context"

	"mecanica_xpto_os/internal/domain/entities"
)

// IEventPublisher hands committed domain events to the outbox.
type IEventPublisher interface {
	Publish(ctx context.Context, events []entities.DomainEvent)
}
