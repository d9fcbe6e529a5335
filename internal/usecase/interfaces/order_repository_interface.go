package interfaces

import (
	"context"
	"errors"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
)

var (
	// ErrVersionConflict means the order changed since it was loaded.
	ErrVersionConflict = errors.New("order version conflict")
	// ErrStockConditionFailed means a debit inside a commit would have made
	// a stock item negative.
	ErrStockConditionFailed = errors.New("stock condition failed")
	// ErrStockItemMissing means a movement inside a commit named a stock
	// item that does not exist.
	ErrStockItemMissing = errors.New("stock item missing")
	// ErrCommitConflict means the commit collided with another transaction
	// on a stock item; nothing was written and the same commit may be retried.
	ErrCommitConflict = errors.New("commit conflict")
)

// OrderCommit is one atomic unit of work: the order write guarded by its
// loaded version plus every stock movement the transition implies.
type OrderCommit struct {
	Order           entities.Order
	ExpectedVersion int64
	IsNew           bool
	Movements       []entities.StockMovement
}

// IOrderRepository persists the order aggregate (budget and insumo rows are
// embedded) and exposes the named queries the lifecycle relies on.
//
// GetByID returns a zero Order when it does not exist. Commit either applies
// everything or nothing; it returns ErrVersionConflict,
// ErrStockConditionFailed, ErrStockItemMissing or ErrCommitConflict (wrapped)
// for lost races and any other error for storage failures. On success the stored order carries ExpectedVersion+1.
type IOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
	Commit(ctx context.Context, c OrderCommit) (entities.Order, error)
	FindByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
	FindActive(ctx context.Context, statuses []entities.OrderStatus) ([]entities.Order, error)
	FindAwaitingApprovalPastDue(ctx context.Context, cutoff time.Time) ([]entities.Order, error)
}
