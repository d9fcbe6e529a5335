package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the service-order (OS) lifecycle state.
type OrderStatus string

const (
	OrderStatusReceived         OrderStatus = "recebida"
	OrderStatusInDiagnosis      OrderStatus = "em_diagnostico"
	OrderStatusInBudgeting      OrderStatus = "em_orcamento"
	OrderStatusAwaitingApproval OrderStatus = "aguardando_aprovacao"
	OrderStatusInExecution      OrderStatus = "em_execucao"
	OrderStatusFinished         OrderStatus = "finalizada"
	OrderStatusDelivered        OrderStatus = "entregue"
	OrderStatusCancelled        OrderStatus = "cancelada"
	OrderStatusBudgetExpired    OrderStatus = "orcamento_expirado"
)

// AllOrderStatuses lists every status in lifecycle order.
var AllOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusInDiagnosis,
	OrderStatusInBudgeting,
	OrderStatusAwaitingApproval,
	OrderStatusInExecution,
	OrderStatusFinished,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusBudgetExpired,
}

var allowedOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusReceived:         {OrderStatusInDiagnosis, OrderStatusInBudgeting, OrderStatusCancelled},
	OrderStatusInDiagnosis:      {OrderStatusInBudgeting, OrderStatusCancelled},
	OrderStatusInBudgeting:      {OrderStatusAwaitingApproval},
	OrderStatusAwaitingApproval: {OrderStatusInExecution, OrderStatusCancelled, OrderStatusBudgetExpired},
	OrderStatusInExecution:      {OrderStatusFinished},
	OrderStatusFinished:         {OrderStatusDelivered},
}

func ParseOrderStatus(raw string) (OrderStatus, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, s := range AllOrderStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// IsTerminal reports whether the order left the active workflow.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusFinished, OrderStatusDelivered, OrderStatusCancelled, OrderStatusBudgetExpired:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, allowed := range allowedOrderTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Order is the service-order aggregate. Budget and insumo rows are owned by
// the order and persisted with it; client, vehicle, service and stock items
// are referenced by id only.
//
// Version is the optimistic concurrency token: every committed change must
// match the version that was loaded.
type Order struct {
	ID                string        `json:"id"`
	ClientID          string        `json:"client_id"`
	ClientEmail       string        `json:"client_email,omitempty"`
	VehicleID         string        `json:"vehicle_id"`
	ServiceID         string        `json:"service_id"`
	Description       string        `json:"description,omitempty"`
	Status            OrderStatus   `json:"status"`
	Budget            *Budget       `json:"budget,omitempty"`
	Insumos           []OrderInsumo `json:"insumos"`
	BudgetSubmittedAt *time.Time    `json:"budget_submitted_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	FinishedAt        *time.Time    `json:"finished_at,omitempty"`
	DeliveredAt       *time.Time    `json:"delivered_at,omitempty"`
	Version           int64         `json:"version"`
}

type NewOrderParams struct {
	ClientID    string
	ClientEmail string
	VehicleID   string
	ServiceID   string
	Description string
}

func NewOrder(p NewOrderParams, now time.Time) (Order, error) {
	p.ClientID = strings.TrimSpace(p.ClientID)
	p.VehicleID = strings.TrimSpace(p.VehicleID)
	p.ServiceID = strings.TrimSpace(p.ServiceID)
	if p.ClientID == "" || p.VehicleID == "" || p.ServiceID == "" {
		return Order{}, fmt.Errorf("%w: client_id, vehicle_id and service_id are required", ErrInvalidOrderFields)
	}

	return Order{
		ID:          uuid.NewString(),
		ClientID:    p.ClientID,
		ClientEmail: strings.TrimSpace(p.ClientEmail),
		VehicleID:   p.VehicleID,
		ServiceID:   p.ServiceID,
		Description: strings.TrimSpace(p.Description),
		Status:      OrderStatusReceived,
		Insumos:     []OrderInsumo{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ActiveBudget returns the non-terminal budget, if any.
func (o Order) ActiveBudget() *Budget {
	if o.Budget == nil || o.Budget.Status.IsTerminal() {
		return nil
	}
	return o.Budget
}

func (o Order) ReservedInsumos() []OrderInsumo {
	out := make([]OrderInsumo, 0, len(o.Insumos))
	for _, in := range o.Insumos {
		if in.Status == OrderInsumoStatusReserved {
			out = append(out, in)
		}
	}
	return out
}

func (o *Order) StartDiagnosis(now time.Time) error {
	return o.transition(OrderStatusInDiagnosis, now)
}

// MaxStockItemsPerOrder keeps every order commit, the order write plus one
// stock leg per distinct item, within a single 100 action transaction.
const MaxStockItemsPerOrder = 99

// AttachInsumos appends one reserved row per line and returns the debit
// movements to commit with the order.
func (o *Order) AttachInsumos(lines []InsumoLine, now time.Time) ([]OrderInsumo, []StockMovement, error) {
	if o.Status != OrderStatusReceived && o.Status != OrderStatusInDiagnosis {
		return nil, nil, fmt.Errorf("%w: cannot attach insumos to order in status %s", ErrInvalidState, o.Status)
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("%w: no insumo lines", ErrInvalidQuantity)
	}
	distinct := make(map[string]bool, len(lines))
	for _, in := range o.ReservedInsumos() {
		distinct[in.StockItemID] = true
	}
	for _, l := range lines {
		if strings.TrimSpace(l.StockItemID) == "" || l.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: stock item %q quantity %d", ErrInvalidQuantity, l.StockItemID, l.Quantity)
		}
		distinct[l.StockItemID] = true
	}
	if len(distinct) > MaxStockItemsPerOrder {
		return nil, nil, fmt.Errorf("%w: %d, limit %d", ErrTooManyStockItems, len(distinct), MaxStockItemsPerOrder)
	}

	rows := make([]OrderInsumo, 0, len(lines))
	movements := make([]StockMovement, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, NewOrderInsumo(o.ID, l, now))
		movements = append(movements, StockMovement{
			StockItemID: l.StockItemID,
			Delta:       -l.Quantity,
			OrderID:     o.ID,
			Reason:      MovementReasonReservation,
		})
	}
	o.Insumos = append(o.Insumos, rows...)
	o.UpdatedAt = now
	return rows, MergeMovements(movements), nil
}

// PricedInsumoLines prices every reserved row with the given unit prices.
func (o Order) PricedInsumoLines(items map[string]StockItem) ([]PricedLine, error) {
	reserved := o.ReservedInsumos()
	lines := make([]PricedLine, 0, len(reserved))
	for _, in := range reserved {
		item, ok := items[in.StockItemID]
		if !ok {
			return nil, fmt.Errorf("stock item %s %w", in.StockItemID, ErrNotFound)
		}
		lines = append(lines, PricedLine{Quantity: in.Quantity, UnitPrice: item.UnitPrice})
	}
	return lines, nil
}

// GenerateBudget computes a draft over the reserved insumos, moves through
// InBudgeting and submits it, leaving the order AwaitingApproval.
func (o *Order) GenerateBudget(servicePrice decimal.Decimal, lines []PricedLine, now time.Time) (Budget, error) {
	if o.ActiveBudget() != nil {
		return Budget{}, ErrActiveBudgetExists
	}
	if !o.Status.CanTransitionTo(OrderStatusInBudgeting) {
		return Budget{}, fmt.Errorf("%w: cannot budget order in status %s", ErrInvalidState, o.Status)
	}

	b := NewDraftBudget(o.ID, now)
	if err := b.Compute(servicePrice, lines, now); err != nil {
		return Budget{}, err
	}
	if err := b.Submit(now); err != nil {
		return Budget{}, err
	}

	if err := o.transition(OrderStatusInBudgeting, now); err != nil {
		return Budget{}, err
	}
	if err := o.transition(OrderStatusAwaitingApproval, now); err != nil {
		return Budget{}, err
	}
	o.Budget = &b
	o.BudgetSubmittedAt = b.SubmittedAt
	return b, nil
}

func (o *Order) ApproveBudget(now time.Time) error {
	b, err := o.awaitingBudget()
	if err != nil {
		return err
	}
	if err := b.Approve(now); err != nil {
		return err
	}
	for i := range o.Insumos {
		if o.Insumos[i].Status == OrderInsumoStatusReserved {
			o.Insumos[i].Status = OrderInsumoStatusConsumed
			o.Insumos[i].UpdatedAt = now
		}
	}
	return o.transition(OrderStatusInExecution, now)
}

// RejectBudget cancels the order and returns the credits releasing its
// reservation.
func (o *Order) RejectBudget(now time.Time) ([]StockMovement, error) {
	b, err := o.awaitingBudget()
	if err != nil {
		return nil, err
	}
	if err := b.Reject(now); err != nil {
		return nil, err
	}
	if err := o.transition(OrderStatusCancelled, now); err != nil {
		return nil, err
	}
	return o.releaseReservation(now), nil
}

// ExpireBudget expires an overdue budget and releases the reservation.
func (o *Order) ExpireBudget(now time.Time) ([]StockMovement, error) {
	b, err := o.awaitingBudget()
	if err != nil {
		return nil, err
	}
	if err := b.Expire(now); err != nil {
		return nil, err
	}
	if err := o.transition(OrderStatusBudgetExpired, now); err != nil {
		return nil, err
	}
	return o.releaseReservation(now), nil
}

// Cancel drops an order that has not been budgeted yet.
func (o *Order) Cancel(now time.Time) ([]StockMovement, error) {
	if o.Status != OrderStatusReceived && o.Status != OrderStatusInDiagnosis {
		return nil, fmt.Errorf("%w: cannot cancel order in status %s", ErrInvalidState, o.Status)
	}
	if err := o.transition(OrderStatusCancelled, now); err != nil {
		return nil, err
	}
	return o.releaseReservation(now), nil
}

func (o *Order) Finish(now time.Time) error {
	if err := o.transition(OrderStatusFinished, now); err != nil {
		return err
	}
	finished := now
	o.FinishedAt = &finished
	return nil
}

func (o *Order) Deliver(now time.Time) error {
	if err := o.transition(OrderStatusDelivered, now); err != nil {
		return err
	}
	delivered := now
	o.DeliveredAt = &delivered
	return nil
}

func (o *Order) awaitingBudget() (*Budget, error) {
	if o.Status != OrderStatusAwaitingApproval || o.Budget == nil {
		return nil, fmt.Errorf("%w: order %s is %s", ErrInvalidState, o.ID, o.Status)
	}
	return o.Budget, nil
}

// releaseReservation marks reserved rows returned and yields one credit per
// stock item with the recorded quantities.
func (o *Order) releaseReservation(now time.Time) []StockMovement {
	movements := make([]StockMovement, 0, len(o.Insumos))
	for i := range o.Insumos {
		in := &o.Insumos[i]
		if in.Status != OrderInsumoStatusReserved {
			continue
		}
		in.Status = OrderInsumoStatusReturned
		in.UpdatedAt = now
		movements = append(movements, StockMovement{
			StockItemID: in.StockItemID,
			Delta:       in.Quantity,
			OrderID:     o.ID,
			Reason:      MovementReasonRelease,
		})
	}
	return MergeMovements(movements)
}

func (o *Order) transition(to OrderStatus, now time.Time) error {
	if !o.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: order %s cannot move from %s to %s", ErrInvalidState, o.ID, o.Status, to)
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}
