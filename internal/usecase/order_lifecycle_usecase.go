package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultActivePriority orders the work queue; statuses missing from the
// table are not listed as active.
var DefaultActivePriority = []entities.OrderStatus{
	entities.OrderStatusInExecution,
	entities.OrderStatusAwaitingApproval,
	entities.OrderStatusInDiagnosis,
	entities.OrderStatusReceived,
}

// IOrderLifecycleUseCase drives a service order from intake to delivery.
//
//   - "Abre OS"               => OpenOrder()
//   - "Adiciona insumos"      => AttachInsumos()  (debits stock)
//   - "Gera orçamento"        => GenerateBudget() (compute + submit)
//   - "Aprova / Recusa"       => Approve() / Reject()
//   - "Expira orçamento"      => ExpireBudget()   (sweeper path)
//   - "Finaliza / Entrega"    => Finish() / Deliver()
type IOrderLifecycleUseCase interface {
	OpenOrder(ctx context.Context, in OpenOrderInput) (entities.Order, error)
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	StartDiagnosis(ctx context.Context, id string) (entities.Order, error)
	AttachInsumos(ctx context.Context, id string, lines []entities.InsumoLine) (entities.Order, error)
	PreviewBudget(ctx context.Context, id string) (decimal.Decimal, error)
	GenerateBudget(ctx context.Context, id string) (entities.Budget, error)
	Approve(ctx context.Context, id string) (entities.Order, error)
	Reject(ctx context.Context, id string) (entities.Order, error)
	Cancel(ctx context.Context, id string) (entities.Order, error)
	ExpireBudget(ctx context.Context, id string) (bool, error)
	Finish(ctx context.Context, id string) (entities.Order, error)
	Deliver(ctx context.Context, id string) (entities.Order, error)
	ListActiveOrders(ctx context.Context) ([]entities.Order, error)
	ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
}

// ILowStockTrigger is notified after a commit leaves stock items critical.
type ILowStockTrigger interface {
	CheckItems(ctx context.Context, stockItemIDs []string) (AlertReport, error)
}

type OpenOrderInput struct {
	ClientID    string
	ClientEmail string
	VehicleID   string
	ServiceID   string
	Description string
}

// TransitionResult is what a committed lifecycle change produced.
type TransitionResult struct {
	Order  entities.Order
	Events []entities.DomainEvent
}

type OrderLifecycleDeps struct {
	Orders         interfaces.IOrderRepository
	Budgets        *BudgetLifecycle
	Ledger         IStockLedgerUseCase
	Alerter        ILowStockTrigger
	Publisher      interfaces.IEventPublisher
	Clock          interfaces.IClock
	Logger         *zap.Logger
	ActivePriority []entities.OrderStatus
	// CommitAttempts bounds how often a commit that collided on a stock item
	// is replayed. Zero keeps the ledger defaults.
	CommitAttempts      uint
	CommitRetryInterval time.Duration
}

type OrderLifecycleUseCase struct {
	orders      interfaces.IOrderRepository
	budgets     *BudgetLifecycle
	ledger      IStockLedgerUseCase
	alerter     ILowStockTrigger
	publisher   interfaces.IEventPublisher
	clock       interfaces.IClock
	log         *zap.Logger
	priority    []entities.OrderStatus
	rank        map[entities.OrderStatus]int
	transitions metric.Int64Counter

	commitAttempts      uint
	commitRetryInterval time.Duration
}

var _ IOrderLifecycleUseCase = (*OrderLifecycleUseCase)(nil)

func NewOrderLifecycleUseCase(d OrderLifecycleDeps) *OrderLifecycleUseCase {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	u := &OrderLifecycleUseCase{
		orders:      d.Orders,
		budgets:     d.Budgets,
		ledger:      d.Ledger,
		alerter:     d.Alerter,
		publisher:   d.Publisher,
		clock:       d.Clock,
		log:         log,
		rank:        map[entities.OrderStatus]int{},
		transitions: newCounter("os.order.transitions", "Committed service order status transitions"),

		commitAttempts:      defaultLedgerAttempts,
		commitRetryInterval: defaultLedgerRetryInterval,
	}
	if d.CommitAttempts > 0 {
		u.commitAttempts = d.CommitAttempts
	}
	if d.CommitRetryInterval > 0 {
		u.commitRetryInterval = d.CommitRetryInterval
	}

	priority := d.ActivePriority
	if len(priority) == 0 {
		priority = DefaultActivePriority
	}
	for _, s := range priority {
		if s.IsTerminal() {
			log.Warn("[order][usecase] ignoring terminal status in active priority", zap.String("status", string(s)))
			continue
		}
		if _, dup := u.rank[s]; dup {
			continue
		}
		u.rank[s] = len(u.priority)
		u.priority = append(u.priority, s)
	}
	return u
}

func (u *OrderLifecycleUseCase) OpenOrder(ctx context.Context, in OpenOrderInput) (entities.Order, error) {
	order, err := entities.NewOrder(entities.NewOrderParams{
		ClientID:    in.ClientID,
		ClientEmail: in.ClientEmail,
		VehicleID:   in.VehicleID,
		ServiceID:   in.ServiceID,
		Description: in.Description,
	}, u.clock.Now())
	if err != nil {
		return entities.Order{}, err
	}

	if _, err := u.budgets.Service(ctx, order.ServiceID); err != nil {
		return entities.Order{}, err
	}

	created, err := u.orders.Commit(ctx, interfaces.OrderCommit{Order: order, IsNew: true})
	if err != nil {
		u.log.Error("[order][usecase] open failed", zap.String("order_id", order.ID), zap.Error(err))
		return entities.Order{}, persistenceFailure(err)
	}
	u.log.Info("[order][usecase] order opened", zap.String("order_id", created.ID), zap.String("service_id", created.ServiceID))
	return created, nil
}

func (u *OrderLifecycleUseCase) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	return u.load(ctx, id)
}

func (u *OrderLifecycleUseCase) StartDiagnosis(ctx context.Context, id string) (entities.Order, error) {
	return u.transition(ctx, "start_diagnosis", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		return nil, o.StartDiagnosis(now)
	})
}

// AttachInsumos debits every line and records the insumo rows in one commit.
// Nothing is debited when any line fails.
func (u *OrderLifecycleUseCase) AttachInsumos(ctx context.Context, id string, lines []entities.InsumoLine) (entities.Order, error) {
	var projected map[string]entities.StockItem
	order, err := u.transition(ctx, "attach_insumos", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		_, debits, err := o.AttachInsumos(lines, now)
		if err != nil {
			return nil, err
		}
		projected, err = u.ledger.CheckMovements(ctx, debits)
		if err != nil {
			return nil, err
		}
		return debits, nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	critical := make([]string, 0, len(projected))
	for itemID, item := range projected {
		if item.IsCritical() {
			critical = append(critical, itemID)
		}
	}
	if len(critical) > 0 && u.alerter != nil {
		sort.Strings(critical)
		if _, err := u.alerter.CheckItems(ctx, critical); err != nil {
			u.log.Warn("[order][usecase] low stock alert failed", zap.String("order_id", order.ID), zap.Strings("stock_item_ids", critical), zap.Error(err))
		}
	}
	return order, nil
}

func (u *OrderLifecycleUseCase) PreviewBudget(ctx context.Context, id string) (decimal.Decimal, error) {
	order, err := u.load(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return u.budgets.Compute(ctx, order)
}

// GenerateBudget computes and submits the budget; the order lands in
// AwaitingApproval with its submission timestamp in the same commit.
func (u *OrderLifecycleUseCase) GenerateBudget(ctx context.Context, id string) (entities.Budget, error) {
	order, err := u.transition(ctx, "generate_budget", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		if o.ActiveBudget() != nil {
			return nil, entities.ErrActiveBudgetExists
		}
		price, lines, err := u.budgets.Quote(ctx, *o)
		if err != nil {
			return nil, err
		}
		_, err = o.GenerateBudget(price, lines, now)
		return nil, err
	})
	if err != nil {
		return entities.Budget{}, err
	}
	return *order.Budget, nil
}

func (u *OrderLifecycleUseCase) Approve(ctx context.Context, id string) (entities.Order, error) {
	return u.transition(ctx, "approve", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		return nil, o.ApproveBudget(now)
	})
}

func (u *OrderLifecycleUseCase) Reject(ctx context.Context, id string) (entities.Order, error) {
	return u.transition(ctx, "reject", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		return o.RejectBudget(now)
	})
}

func (u *OrderLifecycleUseCase) Cancel(ctx context.Context, id string) (entities.Order, error) {
	return u.transition(ctx, "cancel", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		return o.Cancel(now)
	})
}

// ExpireBudget expires an overdue budget and returns the reserved stock.
// It reports false without error when the order is no longer awaiting
// approval, including when a concurrent decision wins the race.
func (u *OrderLifecycleUseCase) ExpireBudget(ctx context.Context, id string) (bool, error) {
	order, err := u.load(ctx, id)
	if err != nil {
		return false, err
	}
	if order.Status != entities.OrderStatusAwaitingApproval {
		u.log.Debug("[order][usecase] expire skipped", zap.String("order_id", id), zap.String("status", string(order.Status)))
		return false, nil
	}

	_, err = u.transition(ctx, "expire_budget", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		if o.Status != entities.OrderStatusAwaitingApproval {
			return nil, ErrConcurrentUpdate
		}
		return o.ExpireBudget(now)
	})
	if errors.Is(err, ErrConcurrentUpdate) {
		current, loadErr := u.load(ctx, id)
		if loadErr == nil && current.Status != entities.OrderStatusAwaitingApproval {
			u.log.Info("[order][usecase] expire lost race", zap.String("order_id", id), zap.String("status", string(current.Status)))
			return false, nil
		}
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (u *OrderLifecycleUseCase) Finish(ctx context.Context, id string) (entities.Order, error) {
	return u.transition(ctx, "finish", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		return nil, o.Finish(now)
	})
}

func (u *OrderLifecycleUseCase) Deliver(ctx context.Context, id string) (entities.Order, error) {
	return u.transition(ctx, "deliver", id, func(o *entities.Order, now time.Time) ([]entities.StockMovement, error) {
		return nil, o.Deliver(now)
	})
}

// ListActiveOrders returns non-terminal orders by priority band, oldest
// first inside a band.
func (u *OrderLifecycleUseCase) ListActiveOrders(ctx context.Context) ([]entities.Order, error) {
	orders, err := u.orders.FindActive(ctx, u.priority)
	if err != nil {
		return nil, persistenceFailure(err)
	}

	out := orders[:0]
	for _, o := range orders {
		if _, ok := u.rank[o.Status]; ok {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := u.rank[out[i].Status], u.rank[out[j].Status]
		if ri != rj {
			return ri < rj
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (u *OrderLifecycleUseCase) ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	orders, err := u.orders.FindByStatus(ctx, status)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	return orders, nil
}

func (u *OrderLifecycleUseCase) load(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		u.log.Error("[order][usecase] load failed", zap.String("order_id", id), zap.Error(err))
		return entities.Order{}, persistenceFailure(err)
	}
	if order.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return order, nil
}

// transition loads the order, applies mutate and commits the result together
// with the returned stock movements, guarded by the loaded version.
func (u *OrderLifecycleUseCase) transition(
	ctx context.Context,
	op string,
	id string,
	mutate func(o *entities.Order, now time.Time) ([]entities.StockMovement, error),
) (entities.Order, error) {
	ctx, span := tracer.Start(ctx, "order."+op, trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := u.load(ctx, id)
	if err != nil {
		span.RecordError(err)
		return entities.Order{}, err
	}

	from, version := order.Status, order.Version
	now := u.clock.Now()
	movements, err := mutate(&order, now)
	if err != nil {
		u.log.Info("[order][usecase] transition refused", zap.String("op", op), zap.String("order_id", id), zap.String("status", string(from)), zap.Error(err))
		span.RecordError(err)
		return entities.Order{}, err
	}

	res, err := u.commit(ctx, order, version, movements, from, now)
	if err != nil {
		u.log.Warn("[order][usecase] commit failed", zap.String("op", op), zap.String("order_id", id), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, op+" commit failed")
		return entities.Order{}, err
	}

	u.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", string(from)),
		attribute.String("to", string(res.Order.Status)),
	))
	u.log.Info("[order][usecase] transition committed",
		zap.String("op", op),
		zap.String("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(res.Order.Status)),
		zap.Int("movements", len(movements)),
	)
	if u.publisher != nil && len(res.Events) > 0 {
		u.publisher.Publish(ctx, res.Events)
	}
	return res.Order, nil
}

func (u *OrderLifecycleUseCase) commit(
	ctx context.Context,
	order entities.Order,
	expectedVersion int64,
	movements []entities.StockMovement,
	from entities.OrderStatus,
	now time.Time,
) (TransitionResult, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = u.commitRetryInterval

	stored, err := backoff.Retry(ctx, func() (entities.Order, error) {
		stored, err := u.orders.Commit(ctx, interfaces.OrderCommit{
			Order:           order,
			ExpectedVersion: expectedVersion,
			Movements:       movements,
		})
		switch {
		case err == nil:
			return stored, nil
		case errors.Is(err, interfaces.ErrCommitConflict):
			u.log.Warn("[order][usecase] commit collided, retrying", zap.String("order_id", order.ID), zap.Error(err))
			return entities.Order{}, err
		default:
			return entities.Order{}, backoff.Permanent(err)
		}
	}, backoff.WithBackOff(b), backoff.WithMaxTries(u.commitAttempts))
	switch {
	case err == nil:
		return TransitionResult{Order: stored, Events: entities.EventsForTransition(stored, from, now)}, nil
	case errors.Is(err, interfaces.ErrVersionConflict):
		return TransitionResult{}, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	case errors.Is(err, interfaces.ErrStockConditionFailed):
		return TransitionResult{}, fmt.Errorf("%w: %v", entities.ErrInsufficientStock, err)
	case errors.Is(err, interfaces.ErrStockItemMissing):
		return TransitionResult{}, fmt.Errorf("%w: %v", ErrStockItemNotFound, err)
	default:
		return TransitionResult{}, persistenceFailure(err)
	}
}
