package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var ErrAlreadyExists = errors.New("already exists")

// Store is the in-memory backend used by tests and by STORAGE_DRIVER=memory.
// A single write lock plays the role of the DynamoDB transaction: every
// Commit validates the order version and all stock conditions before
// applying anything.
type Store struct {
	mu         sync.RWMutex
	orders     map[string]entities.Order
	stockItems map[string]entities.StockItem
	services   map[string]entities.Service
	alerts     map[string]entities.AlertRecord
	payments   map[string]entities.BillingPayment
}

func NewStore() *Store {
	return &Store{
		orders:     make(map[string]entities.Order),
		stockItems: make(map[string]entities.StockItem),
		services:   make(map[string]entities.Service),
		alerts:     make(map[string]entities.AlertRecord),
		payments:   make(map[string]entities.BillingPayment),
	}
}

func (s *Store) Orders() *Orders         { return &Orders{store: s} }
func (s *Store) StockItems() *StockItems { return &StockItems{store: s} }
func (s *Store) Services() *Services     { return &Services{store: s} }
func (s *Store) Alerts() *Alerts         { return &Alerts{store: s} }
func (s *Store) Payments() *Payments     { return &Payments{store: s} }

// Orders implements interfaces.IOrderRepository.
type Orders struct{ store *Store }

var _ interfaces.IOrderRepository = (*Orders)(nil)

func (r *Orders) GetByID(_ context.Context, id string) (entities.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	o, ok := r.store.orders[id]
	if !ok {
		return entities.Order{}, nil
	}
	return cloneOrder(o), nil
}

func (r *Orders) Commit(_ context.Context, c interfaces.OrderCommit) (entities.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, exists := r.store.orders[c.Order.ID]
	switch {
	case c.IsNew && exists:
		return entities.Order{}, fmt.Errorf("%w: order %s already exists", interfaces.ErrVersionConflict, c.Order.ID)
	case !c.IsNew && !exists:
		return entities.Order{}, fmt.Errorf("%w: order %s is gone", interfaces.ErrVersionConflict, c.Order.ID)
	case !c.IsNew && current.Version != c.ExpectedVersion:
		return entities.Order{}, fmt.Errorf("%w: order %s at version %d, expected %d",
			interfaces.ErrVersionConflict, c.Order.ID, current.Version, c.ExpectedVersion)
	}

	for _, m := range c.Movements {
		item, ok := r.store.stockItems[m.StockItemID]
		if !ok {
			return entities.Order{}, fmt.Errorf("%w: stock item %s", interfaces.ErrStockItemMissing, m.StockItemID)
		}
		if !item.CanApply(m.Delta) {
			return entities.Order{}, fmt.Errorf("%w: stock item %s", interfaces.ErrStockConditionFailed, m.StockItemID)
		}
	}

	now := time.Now().UTC()
	for _, m := range c.Movements {
		item := r.store.stockItems[m.StockItemID]
		item.Quantity += m.Delta
		item.UpdatedAt = now
		r.store.stockItems[m.StockItemID] = item
	}

	stored := cloneOrder(c.Order)
	stored.Version = c.ExpectedVersion + 1
	r.store.orders[stored.ID] = stored
	return cloneOrder(stored), nil
}

func (r *Orders) FindByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	return r.FindActive(ctx, []entities.OrderStatus{status})
}

func (r *Orders) FindActive(_ context.Context, statuses []entities.OrderStatus) ([]entities.Order, error) {
	wanted := make(map[entities.OrderStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}
	return r.filter(func(o entities.Order) bool { return wanted[o.Status] }), nil
}

func (r *Orders) FindAwaitingApprovalPastDue(_ context.Context, cutoff time.Time) ([]entities.Order, error) {
	return r.filter(func(o entities.Order) bool {
		return o.Status == entities.OrderStatusAwaitingApproval &&
			o.BudgetSubmittedAt != nil &&
			!o.BudgetSubmittedAt.After(cutoff)
	}), nil
}

func (r *Orders) filter(keep func(entities.Order) bool) []entities.Order {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]entities.Order, 0)
	for _, o := range r.store.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// StockItems implements interfaces.IStockItemRepository.
type StockItems struct{ store *Store }

var _ interfaces.IStockItemRepository = (*StockItems)(nil)

func (r *StockItems) Create(_ context.Context, item entities.StockItem) (entities.StockItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.stockItems[item.ID]; ok {
		return entities.StockItem{}, fmt.Errorf("stock item %s: %w", item.ID, ErrAlreadyExists)
	}
	r.store.stockItems[item.ID] = item
	return item, nil
}

func (r *StockItems) GetByID(_ context.Context, id string) (entities.StockItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.stockItems[id], nil
}

func (r *StockItems) GetMany(_ context.Context, ids []string) (map[string]entities.StockItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make(map[string]entities.StockItem, len(ids))
	for _, id := range ids {
		if item, ok := r.store.stockItems[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r *StockItems) List(_ context.Context) ([]entities.StockItem, error) {
	return r.list(func(entities.StockItem) bool { return true }), nil
}

func (r *StockItems) ListCritical(_ context.Context) ([]entities.StockItem, error) {
	return r.list(entities.StockItem.IsCritical), nil
}

func (r *StockItems) list(keep func(entities.StockItem) bool) []entities.StockItem {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]entities.StockItem, 0, len(r.store.stockItems))
	for _, item := range r.store.stockItems {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *StockItems) ApplyMovement(_ context.Context, m entities.StockMovement) (entities.StockItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.stockItems[m.StockItemID]
	if !ok {
		return entities.StockItem{}, nil
	}
	if !item.CanApply(m.Delta) {
		return entities.StockItem{}, fmt.Errorf("%w: stock item %s", interfaces.ErrStockConditionFailed, m.StockItemID)
	}
	item.Quantity += m.Delta
	item.UpdatedAt = time.Now().UTC()
	r.store.stockItems[item.ID] = item
	return item, nil
}

func (r *StockItems) UpdateUnitPrice(_ context.Context, id string, price decimal.Decimal) (entities.StockItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.stockItems[id]
	if !ok {
		return entities.StockItem{}, nil
	}
	item.UnitPrice = price
	item.UpdatedAt = time.Now().UTC()
	r.store.stockItems[id] = item
	return item, nil
}

// Services implements interfaces.IServiceRepository.
type Services struct{ store *Store }

var _ interfaces.IServiceRepository = (*Services)(nil)

func (r *Services) Create(_ context.Context, svc entities.Service) (entities.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.services[svc.ID]; ok {
		return entities.Service{}, fmt.Errorf("service %s: %w", svc.ID, ErrAlreadyExists)
	}
	r.store.services[svc.ID] = svc
	return svc, nil
}

func (r *Services) GetByID(_ context.Context, id string) (entities.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.services[id], nil
}

// Alerts implements interfaces.IAlertRecordRepository.
type Alerts struct{ store *Store }

var _ interfaces.IAlertRecordRepository = (*Alerts)(nil)

func (r *Alerts) Exists(_ context.Context, stockItemID, day string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.alerts[entities.AlertRecordID(stockItemID, day)]
	return ok, nil
}

func (r *Alerts) Create(_ context.Context, rec entities.AlertRecord) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.alerts[rec.ID]; ok {
		return false, nil
	}
	r.store.alerts[rec.ID] = rec
	return true, nil
}

func (r *Alerts) Delete(_ context.Context, stockItemID, day string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.alerts, entities.AlertRecordID(stockItemID, day))
	return nil
}

// Payments implements interfaces.IBillingPaymentRepository.
type Payments struct{ store *Store }

var _ interfaces.IBillingPaymentRepository = (*Payments)(nil)

func (r *Payments) Create(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.payments[p.ID]; ok {
		return entities.BillingPayment{}, fmt.Errorf("payment %s: %w", p.ID, ErrAlreadyExists)
	}
	r.store.payments[p.ID] = p
	return p, nil
}

func (r *Payments) GetByID(_ context.Context, id string) (entities.BillingPayment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.payments[id], nil
}

func (r *Payments) ListByOrderID(_ context.Context, orderID string) ([]entities.BillingPayment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]entities.BillingPayment, 0)
	for _, p := range r.store.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func cloneOrder(o entities.Order) entities.Order {
	cp := o
	if o.Budget != nil {
		b := *o.Budget
		b.SubmittedAt = cloneTime(o.Budget.SubmittedAt)
		cp.Budget = &b
	}
	cp.Insumos = append([]entities.OrderInsumo{}, o.Insumos...)
	cp.BudgetSubmittedAt = cloneTime(o.BudgetSubmittedAt)
	cp.FinishedAt = cloneTime(o.FinishedAt)
	cp.DeliveredAt = cloneTime(o.DeliveredAt)
	return cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
