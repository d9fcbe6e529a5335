package entities

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) Order {
	t.Helper()
	o, err := NewOrder(NewOrderParams{ClientID: "c-1", VehicleID: "v-1", ServiceID: "s-1", ClientEmail: "cliente@example.com"}, t0)
	require.NoError(t, err)
	return o
}

func awaitingOrder(t *testing.T) Order {
	t.Helper()
	o := newTestOrder(t)
	_, _, err := o.AttachInsumos([]InsumoLine{{StockItemID: "oil", Quantity: 2}, {StockItemID: "filter", Quantity: 1}}, t0)
	require.NoError(t, err)
	lines := []PricedLine{
		{Quantity: 2, UnitPrice: decimal.RequireFromString("25")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("30")},
	}
	_, err = o.GenerateBudget(decimal.RequireFromString("150"), lines, t0)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	_, err := NewOrder(NewOrderParams{ClientID: "c-1", VehicleID: " ", ServiceID: "s-1"}, t0)
	assert.ErrorIs(t, err, ErrInvalidOrderFields)

	o := newTestOrder(t)
	assert.Equal(t, OrderStatusReceived, o.Status)
	assert.Empty(t, o.Insumos)
	assert.Nil(t, o.ActiveBudget())
}

func TestOrder_AttachInsumos(t *testing.T) {
	t.Run("merges debits per stock item", func(t *testing.T) {
		o := newTestOrder(t)
		rows, movements, err := o.AttachInsumos([]InsumoLine{
			{StockItemID: "oil", Quantity: 3},
			{StockItemID: "oil", Quantity: 6},
		}, t0)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		require.Len(t, movements, 1)
		assert.Equal(t, -9, movements[0].Delta)
		assert.Len(t, o.ReservedInsumos(), 2)
	})

	t.Run("invalid quantity leaves order untouched", func(t *testing.T) {
		o := newTestOrder(t)
		_, _, err := o.AttachInsumos([]InsumoLine{{StockItemID: "oil", Quantity: 1}, {StockItemID: "filter", Quantity: 0}}, t0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Empty(t, o.Insumos)
	})

	t.Run("not after budget submission", func(t *testing.T) {
		o := awaitingOrder(t)
		_, _, err := o.AttachInsumos([]InsumoLine{{StockItemID: "oil", Quantity: 1}}, t0)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("distinct stock items per order are capped", func(t *testing.T) {
		o := newTestOrder(t)
		lines := make([]InsumoLine, 0, MaxStockItemsPerOrder)
		for i := 0; i < MaxStockItemsPerOrder; i++ {
			lines = append(lines, InsumoLine{StockItemID: fmt.Sprintf("item-%03d", i), Quantity: 1})
		}
		_, movements, err := o.AttachInsumos(lines, t0)
		require.NoError(t, err)
		assert.Len(t, movements, MaxStockItemsPerOrder)

		_, _, err = o.AttachInsumos([]InsumoLine{{StockItemID: "item-000", Quantity: 2}}, t0)
		require.NoError(t, err, "repeating a reserved item adds no stock leg")

		before := len(o.Insumos)
		_, _, err = o.AttachInsumos([]InsumoLine{{StockItemID: "one-too-many", Quantity: 1}}, t0)
		assert.ErrorIs(t, err, ErrTooManyStockItems)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Len(t, o.Insumos, before)
	})
}

func TestOrder_GenerateBudget(t *testing.T) {
	o := awaitingOrder(t)

	assert.Equal(t, OrderStatusAwaitingApproval, o.Status)
	require.NotNil(t, o.Budget)
	assert.Equal(t, "230.00", o.Budget.Value.StringFixed(2))
	require.NotNil(t, o.BudgetSubmittedAt)
	assert.True(t, o.BudgetSubmittedAt.Equal(*o.Budget.SubmittedAt))

	_, err := o.GenerateBudget(decimal.NewFromInt(1), nil, t0)
	assert.ErrorIs(t, err, ErrActiveBudgetExists)
}

func TestOrder_ApproveFromEveryOtherStatus(t *testing.T) {
	for _, status := range AllOrderStatuses {
		if status == OrderStatusAwaitingApproval {
			continue
		}
		t.Run(string(status), func(t *testing.T) {
			o := awaitingOrder(t)
			o.Status = status

			err := o.ApproveBudget(t0)
			assert.ErrorIs(t, err, ErrInvalidState)
			assert.Equal(t, status, o.Status)
		})
	}
}

func TestOrder_Approve(t *testing.T) {
	o := awaitingOrder(t)
	require.NoError(t, o.ApproveBudget(t0))

	assert.Equal(t, OrderStatusInExecution, o.Status)
	assert.Equal(t, BudgetStatusApproved, o.Budget.Status)
	assert.Empty(t, o.ReservedInsumos())

	require.NoError(t, o.Finish(t0))
	require.NoError(t, o.Deliver(t0))
	assert.Equal(t, OrderStatusDelivered, o.Status)
	assert.NotNil(t, o.FinishedAt)
	assert.NotNil(t, o.DeliveredAt)
}

func TestOrder_RejectReleasesRecordedQuantities(t *testing.T) {
	o := awaitingOrder(t)

	credits, err := o.RejectBudget(t0)
	require.NoError(t, err)

	assert.Equal(t, OrderStatusCancelled, o.Status)
	assert.Equal(t, BudgetStatusRejected, o.Budget.Status)
	assert.ElementsMatch(t, []StockMovement{
		{StockItemID: "oil", Delta: 2, OrderID: o.ID, Reason: MovementReasonRelease},
		{StockItemID: "filter", Delta: 1, OrderID: o.ID, Reason: MovementReasonRelease},
	}, credits)
	for _, in := range o.Insumos {
		assert.Equal(t, OrderInsumoStatusReturned, in.Status)
	}

	_, err = o.RejectBudget(t0)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestOrder_ExpireBudget(t *testing.T) {
	t.Run("too early", func(t *testing.T) {
		o := awaitingOrder(t)
		_, err := o.ExpireBudget(t0.Add(71 * time.Hour))
		assert.ErrorIs(t, err, ErrNotEligibleForExpiration)
		assert.Equal(t, OrderStatusAwaitingApproval, o.Status)
		assert.Len(t, o.ReservedInsumos(), 2)
	})

	t.Run("after window", func(t *testing.T) {
		o := awaitingOrder(t)
		credits, err := o.ExpireBudget(t0.Add(72 * time.Hour))
		require.NoError(t, err)
		assert.Equal(t, OrderStatusBudgetExpired, o.Status)
		assert.Equal(t, BudgetStatusExpired, o.Budget.Status)
		assert.Len(t, credits, 2)
	})
}

func TestOrder_Cancel(t *testing.T) {
	o := newTestOrder(t)
	_, _, err := o.AttachInsumos([]InsumoLine{{StockItemID: "oil", Quantity: 4}}, t0)
	require.NoError(t, err)

	credits, err := o.Cancel(t0)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCancelled, o.Status)
	require.Len(t, credits, 1)
	assert.Equal(t, 4, credits[0].Delta)

	awaiting := awaitingOrder(t)
	_, err = awaiting.Cancel(t0)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEventsForTransition(t *testing.T) {
	o := awaitingOrder(t)
	events := EventsForTransition(o, OrderStatusReceived, t0)
	require.Len(t, events, 2)
	assert.Equal(t, EventOrderStatusChanged, events[0].Type)
	assert.Equal(t, EventBudgetSubmitted, events[1].Type)
	assert.Equal(t, "cliente@example.com", events[0].ClientEmail)

	assert.Nil(t, EventsForTransition(o, o.Status, t0))
}
