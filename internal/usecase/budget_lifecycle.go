package usecase

import (
	"context"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// BudgetLifecycle prices budgets from the service catalogue and current
// stock unit prices. State changes live on entities.Budget and are driven by
// OrderLifecycleUseCase so they commit together with the order.
type BudgetLifecycle struct {
	services   interfaces.IServiceRepository
	stockItems interfaces.IStockItemRepository
}

func NewBudgetLifecycle(services interfaces.IServiceRepository, stockItems interfaces.IStockItemRepository) *BudgetLifecycle {
	return &BudgetLifecycle{services: services, stockItems: stockItems}
}

func (b *BudgetLifecycle) Service(ctx context.Context, id string) (entities.Service, error) {
	svc, err := b.services.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, persistenceFailure(err)
	}
	if svc.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return svc, nil
}

// Quote returns the service price and the reserved insumos priced at their
// current unit price.
func (b *BudgetLifecycle) Quote(ctx context.Context, order entities.Order) (decimal.Decimal, []entities.PricedLine, error) {
	svc, err := b.Service(ctx, order.ServiceID)
	if err != nil {
		return decimal.Zero, nil, err
	}

	reserved := order.ReservedInsumos()
	ids := make([]string, 0, len(reserved))
	for _, in := range reserved {
		ids = append(ids, in.StockItemID)
	}
	items := map[string]entities.StockItem{}
	if len(ids) > 0 {
		items, err = b.stockItems.GetMany(ctx, ids)
		if err != nil {
			return decimal.Zero, nil, persistenceFailure(err)
		}
	}

	lines, err := order.PricedInsumoLines(items)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return svc.Price, lines, nil
}

// Compute previews the budget value without changing anything.
func (b *BudgetLifecycle) Compute(ctx context.Context, order entities.Order) (decimal.Decimal, error) {
	price, lines, err := b.Quote(ctx, order)
	if err != nil {
		return decimal.Zero, err
	}
	return entities.ComputeBudgetValue(price, lines), nil
}

// IsEligibleForExpiration reports whether the order's budget can be expired at now.
func (b *BudgetLifecycle) IsEligibleForExpiration(order entities.Order, now time.Time) bool {
	if order.Budget == nil {
		return false
	}
	return order.Budget.IsEligibleForExpiration(now)
}
