package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultLedgerAttempts      = 3
	defaultLedgerRetryInterval = 50 * time.Millisecond
)

// IStockLedgerUseCase owns on-hand quantities.
//
//   - Debit / Credit => single conditional update, retried on storage failures
//   - CheckMovements  => projection used by order commits before they debit
type IStockLedgerUseCase interface {
	CreateItem(ctx context.Context, in CreateStockItemInput) (entities.StockItem, error)
	GetItem(ctx context.Context, id string) (entities.StockItem, error)
	ListItems(ctx context.Context) ([]entities.StockItem, error)
	ListCritical(ctx context.Context) ([]entities.StockItem, error)
	Debit(ctx context.Context, id string, qty int) (DebitResult, error)
	Credit(ctx context.Context, id string, qty int) (entities.StockItem, error)
	IsCritical(ctx context.Context, id string) (bool, error)
	UpdateUnitPrice(ctx context.Context, id string, price decimal.Decimal) (entities.StockItem, error)
	CheckMovements(ctx context.Context, movements []entities.StockMovement) (map[string]entities.StockItem, error)
}

type CreateStockItemInput struct {
	Name            string
	Description     string
	UnitPrice       decimal.Decimal
	Quantity        int
	MinimumQuantity int
}

type DebitResult struct {
	Item          entities.StockItem
	QuantityAfter int
	BelowMinimum  bool
}

type StockLedgerUseCase struct {
	repo          interfaces.IStockItemRepository
	clock         interfaces.IClock
	log           *zap.Logger
	maxAttempts   uint
	retryInterval time.Duration
}

var _ IStockLedgerUseCase = (*StockLedgerUseCase)(nil)

type StockLedgerOption func(*StockLedgerUseCase)

// WithLedgerRetry bounds how many times a debit or credit is attempted when
// storage fails.
func WithLedgerRetry(attempts uint, interval time.Duration) StockLedgerOption {
	return func(u *StockLedgerUseCase) {
		if attempts > 0 {
			u.maxAttempts = attempts
		}
		if interval > 0 {
			u.retryInterval = interval
		}
	}
}

func NewStockLedgerUseCase(repo interfaces.IStockItemRepository, clock interfaces.IClock, log *zap.Logger, opts ...StockLedgerOption) *StockLedgerUseCase {
	u := &StockLedgerUseCase{
		repo:          repo,
		clock:         clock,
		log:           log,
		maxAttempts:   defaultLedgerAttempts,
		retryInterval: defaultLedgerRetryInterval,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *StockLedgerUseCase) CreateItem(ctx context.Context, in CreateStockItemInput) (entities.StockItem, error) {
	item, err := entities.NewStockItem(in.Name, in.Description, in.UnitPrice, in.Quantity, in.MinimumQuantity, u.clock.Now())
	if err != nil {
		return entities.StockItem{}, err
	}
	created, err := u.repo.Create(ctx, item)
	if err != nil {
		u.log.Error("[stock][usecase] create failed", zap.String("name", item.Name), zap.Error(err))
		return entities.StockItem{}, persistenceFailure(err)
	}
	u.log.Info("[stock][usecase] item created", zap.String("stock_item_id", created.ID), zap.Int("quantity", created.Quantity))
	return created, nil
}

func (u *StockLedgerUseCase) GetItem(ctx context.Context, id string) (entities.StockItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.StockItem{}, ErrInvalidStockItemID
	}
	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.StockItem{}, persistenceFailure(err)
	}
	if item.ID == "" {
		return entities.StockItem{}, ErrStockItemNotFound
	}
	return item, nil
}

func (u *StockLedgerUseCase) ListItems(ctx context.Context) ([]entities.StockItem, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	return items, nil
}

func (u *StockLedgerUseCase) ListCritical(ctx context.Context) ([]entities.StockItem, error) {
	items, err := u.repo.ListCritical(ctx)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	return items, nil
}

// Debit removes qty units. BelowMinimum is true when the result is at or
// below the item's minimum.
func (u *StockLedgerUseCase) Debit(ctx context.Context, id string, qty int) (DebitResult, error) {
	if qty <= 0 {
		return DebitResult{}, fmt.Errorf("%w: debit of %d", entities.ErrInvalidQuantity, qty)
	}
	item, err := u.apply(ctx, entities.StockMovement{StockItemID: strings.TrimSpace(id), Delta: -qty, Reason: entities.MovementReasonManualDebit})
	if err != nil {
		return DebitResult{}, err
	}
	return DebitResult{Item: item, QuantityAfter: item.Quantity, BelowMinimum: item.IsCritical()}, nil
}

func (u *StockLedgerUseCase) Credit(ctx context.Context, id string, qty int) (entities.StockItem, error) {
	if qty <= 0 {
		return entities.StockItem{}, fmt.Errorf("%w: credit of %d", entities.ErrInvalidQuantity, qty)
	}
	return u.apply(ctx, entities.StockMovement{StockItemID: strings.TrimSpace(id), Delta: qty, Reason: entities.MovementReasonRestock})
}

func (u *StockLedgerUseCase) IsCritical(ctx context.Context, id string) (bool, error) {
	item, err := u.GetItem(ctx, id)
	if err != nil {
		return false, err
	}
	return item.IsCritical(), nil
}

func (u *StockLedgerUseCase) UpdateUnitPrice(ctx context.Context, id string, price decimal.Decimal) (entities.StockItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.StockItem{}, ErrInvalidStockItemID
	}
	if !price.IsPositive() {
		return entities.StockItem{}, entities.ErrInvalidUnitPrice
	}
	item, err := u.repo.UpdateUnitPrice(ctx, id, price)
	if err != nil {
		return entities.StockItem{}, persistenceFailure(err)
	}
	if item.ID == "" {
		return entities.StockItem{}, ErrStockItemNotFound
	}
	u.log.Info("[stock][usecase] unit price updated", zap.String("stock_item_id", id), zap.String("unit_price", price.String()))
	return item, nil
}

// CheckMovements validates movements against the current quantities and
// returns the items as they would look after applying them.
func (u *StockLedgerUseCase) CheckMovements(ctx context.Context, movements []entities.StockMovement) (map[string]entities.StockItem, error) {
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		ids = append(ids, m.StockItemID)
	}
	items, err := u.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, persistenceFailure(err)
	}

	projected := make(map[string]entities.StockItem, len(movements))
	for _, m := range movements {
		item, ok := items[m.StockItemID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrStockItemNotFound, m.StockItemID)
		}
		if !item.CanApply(m.Delta) {
			return nil, fmt.Errorf("%w: %s has %d, needs %d", entities.ErrInsufficientStock, item.Name, item.Quantity, -m.Delta)
		}
		item.Quantity += m.Delta
		projected[item.ID] = item
	}
	return projected, nil
}

func (u *StockLedgerUseCase) apply(ctx context.Context, m entities.StockMovement) (entities.StockItem, error) {
	if m.StockItemID == "" {
		return entities.StockItem{}, ErrInvalidStockItemID
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = u.retryInterval

	item, err := backoff.Retry(ctx, func() (entities.StockItem, error) {
		item, err := u.repo.ApplyMovement(ctx, m)
		switch {
		case errors.Is(err, interfaces.ErrStockConditionFailed):
			return entities.StockItem{}, backoff.Permanent(fmt.Errorf("%w: stock item %s", entities.ErrInsufficientStock, m.StockItemID))
		case err != nil:
			u.log.Warn("[stock][usecase] movement attempt failed", zap.String("stock_item_id", m.StockItemID), zap.Error(err))
			return entities.StockItem{}, err
		case item.ID == "":
			return entities.StockItem{}, backoff.Permanent(ErrStockItemNotFound)
		}
		return item, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(u.maxAttempts))
	if err != nil {
		if errors.Is(err, entities.ErrInsufficientStock) || errors.Is(err, entities.ErrNotFound) {
			return entities.StockItem{}, err
		}
		u.log.Error("[stock][usecase] movement failed", zap.String("stock_item_id", m.StockItemID), zap.Int("delta", m.Delta), zap.Error(err))
		return entities.StockItem{}, persistenceFailure(err)
	}

	u.log.Info("[stock][usecase] movement applied",
		zap.String("stock_item_id", item.ID),
		zap.Int("delta", m.Delta),
		zap.Int("quantity", item.Quantity),
		zap.Bool("critical", item.IsCritical()),
	)
	return item, nil
}
