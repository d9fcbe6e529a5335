package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus represents the lifecycle state of an order budget (orçamento).
type BudgetStatus string

const (
	BudgetStatusDraft            BudgetStatus = "rascunho"
	BudgetStatusAwaitingApproval BudgetStatus = "aguardando_aprovacao"
	BudgetStatusApproved         BudgetStatus = "aprovado"
	BudgetStatusRejected         BudgetStatus = "rejeitado"
	BudgetStatusExpired          BudgetStatus = "expirado"
)

// BudgetExpirationWindow is how long a submitted budget waits for the
// customer before it becomes eligible for expiration.
const BudgetExpirationWindow = 72 * time.Hour

func (s BudgetStatus) IsTerminal() bool {
	switch s {
	case BudgetStatusApproved, BudgetStatusRejected, BudgetStatusExpired:
		return true
	}
	return false
}

// Budget is owned by exactly one order and stored embedded in it.
type Budget struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	Value       decimal.Decimal `json:"value"`
	Status      BudgetStatus    `json:"status"`
	SubmittedAt *time.Time      `json:"submitted_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PricedLine is one insumo line priced at its current unit price.
type PricedLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// ComputeBudgetValue returns servicePrice + Σ(quantity × unitPrice).
// Decimal addition is exact, so the result does not depend on line order.
func ComputeBudgetValue(servicePrice decimal.Decimal, lines []PricedLine) decimal.Decimal {
	total := servicePrice
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func NewDraftBudget(orderID string, now time.Time) Budget {
	return Budget{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Value:     decimal.Zero,
		Status:    BudgetStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Compute stores the computed value. Only drafts can be recomputed.
func (b *Budget) Compute(servicePrice decimal.Decimal, lines []PricedLine, now time.Time) error {
	if b.Status != BudgetStatusDraft {
		return fmt.Errorf("%w: budget %s is %s", ErrInvalidState, b.ID, b.Status)
	}
	b.Value = ComputeBudgetValue(servicePrice, lines)
	b.UpdatedAt = now
	return nil
}

func (b *Budget) Submit(now time.Time) error {
	if b.Status != BudgetStatusDraft {
		return fmt.Errorf("%w: cannot submit budget in status %s", ErrInvalidState, b.Status)
	}
	if !b.Value.IsPositive() {
		return ErrInvalidBudgetValue
	}
	submitted := now
	b.Status = BudgetStatusAwaitingApproval
	b.SubmittedAt = &submitted
	b.UpdatedAt = now
	return nil
}

func (b *Budget) Approve(now time.Time) error {
	return b.decide(BudgetStatusApproved, now)
}

func (b *Budget) Reject(now time.Time) error {
	return b.decide(BudgetStatusRejected, now)
}

// Expire moves an overdue budget to Expired.
func (b *Budget) Expire(now time.Time) error {
	if b.Status != BudgetStatusAwaitingApproval {
		return fmt.Errorf("%w: cannot expire budget in status %s", ErrInvalidState, b.Status)
	}
	if !b.IsEligibleForExpiration(now) {
		return ErrNotEligibleForExpiration
	}
	b.Status = BudgetStatusExpired
	b.UpdatedAt = now
	return nil
}

// IsEligibleForExpiration is true when the budget awaits approval and at
// least BudgetExpirationWindow has elapsed since submission.
func (b Budget) IsEligibleForExpiration(now time.Time) bool {
	if b.Status != BudgetStatusAwaitingApproval || b.SubmittedAt == nil {
		return false
	}
	return !now.Before(b.SubmittedAt.Add(BudgetExpirationWindow))
}

func (b *Budget) decide(to BudgetStatus, now time.Time) error {
	if b.Status != BudgetStatusAwaitingApproval {
		return fmt.Errorf("%w: cannot move budget from %s to %s", ErrInvalidState, b.Status, to)
	}
	b.Status = to
	b.UpdatedAt = now
	return nil
}
