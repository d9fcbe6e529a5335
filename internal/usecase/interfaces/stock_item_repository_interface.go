package interfaces

import (
	"context"

	"mecanica_xpto_os/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IStockItemRepository is the only writer of stock quantities outside an
// order commit.
//
// ApplyMovement is a single conditional update: a debit fails with
// ErrStockConditionFailed when it would leave the item negative. GetByID,
// ApplyMovement and UpdateUnitPrice return a zero StockItem for unknown ids.
type IStockItemRepository interface {
	Create(ctx context.Context, item entities.StockItem) (entities.StockItem, error)
	GetByID(ctx context.Context, id string) (entities.StockItem, error)
	GetMany(ctx context.Context, ids []string) (map[string]entities.StockItem, error)
	List(ctx context.Context) ([]entities.StockItem, error)
	ListCritical(ctx context.Context) ([]entities.StockItem, error)
	ApplyMovement(ctx context.Context, movement entities.StockMovement) (entities.StockItem, error)
	UpdateUnitPrice(ctx context.Context, id string, price decimal.Decimal) (entities.StockItem, error)
}
