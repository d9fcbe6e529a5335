package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DomainEventType string

const (
	EventOrderStatusChanged DomainEventType = "order.status_changed"
	EventBudgetSubmitted    DomainEventType = "order.budget_submitted"
)

// DomainEvent is produced by a committed lifecycle change and delivered
// after commit by the outbox dispatcher.
type DomainEvent struct {
	ID          string          `json:"id"`
	Type        DomainEventType `json:"type"`
	OrderID     string          `json:"order_id"`
	ClientEmail string          `json:"client_email,omitempty"`
	FromStatus  OrderStatus     `json:"from_status"`
	ToStatus    OrderStatus     `json:"to_status"`
	BudgetValue decimal.Decimal `json:"budget_value"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// EventsForTransition builds the events describing an order moving from
// `from` to its current status.
func EventsForTransition(o Order, from OrderStatus, now time.Time) []DomainEvent {
	if from == o.Status {
		return nil
	}
	evt := DomainEvent{
		ID:          uuid.NewString(),
		Type:        EventOrderStatusChanged,
		OrderID:     o.ID,
		ClientEmail: o.ClientEmail,
		FromStatus:  from,
		ToStatus:    o.Status,
		OccurredAt:  now,
	}
	if o.Budget != nil {
		evt.BudgetValue = o.Budget.Value
	}
	events := []DomainEvent{evt}

	if o.Status == OrderStatusAwaitingApproval && o.Budget != nil {
		submitted := evt
		submitted.ID = uuid.NewString()
		submitted.Type = EventBudgetSubmitted
		events = append(events, submitted)
	}
	return events
}
