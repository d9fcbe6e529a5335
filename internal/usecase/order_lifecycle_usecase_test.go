package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/infrastructure/clock"
	"mecanica_xpto_os/internal/usecase/interfaces"
	mock_interfaces "mecanica_xpto_os/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestOrderLifecycle_OpenOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.lifecycle.OpenOrder(ctx, OpenOrderInput{ClientID: "c", VehicleID: "v", ServiceID: "missing"})
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = f.lifecycle.OpenOrder(ctx, OpenOrderInput{ClientID: "c", ServiceID: f.service.ID})
	assert.ErrorIs(t, err, entities.ErrInvalidOrderFields)

	o := f.openOrder(t)
	assert.Equal(t, entities.OrderStatusReceived, o.Status)
	assert.Equal(t, int64(1), o.Version)

	_, err = f.lifecycle.GetOrder(ctx, "nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = f.lifecycle.GetOrder(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidOrderID)
}

func TestOrderLifecycle_AttachInsumos_AlertsOncePerDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)

	first := f.openOrder(t)
	_, err := f.lifecycle.AttachInsumos(ctx, first.ID, []entities.InsumoLine{{StockItemID: oil.ID, Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, 7, f.quantity(t, oil.ID))
	assert.Equal(t, 0, f.dispatcher.count())

	second := f.openOrder(t)
	updated, err := f.lifecycle.AttachInsumos(ctx, second.ID, []entities.InsumoLine{{StockItemID: oil.ID, Quantity: 6}})
	require.NoError(t, err)
	assert.Equal(t, 1, f.quantity(t, oil.ID))
	require.Len(t, updated.Insumos, 1)
	assert.Equal(t, entities.OrderInsumoStatusReserved, updated.Insumos[0].Status)
	assert.Equal(t, 1, f.dispatcher.count())

	third := f.openOrder(t)
	_, err = f.lifecycle.AttachInsumos(ctx, third.ID, []entities.InsumoLine{{StockItemID: oil.ID, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, f.dispatcher.count(), "same day alerts once")

	f.clock.Advance(24 * time.Hour)
	report, err := f.alerter.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Alerted)
	assert.Equal(t, 2, f.dispatcher.count())
}

func TestOrderLifecycle_AttachInsumos_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
	filter := f.stockItem(t, "Filtro", "30.00", 1, 0)
	o := f.openOrder(t)

	_, err := f.lifecycle.AttachInsumos(ctx, o.ID, []entities.InsumoLine{
		{StockItemID: oil.ID, Quantity: 3},
		{StockItemID: filter.ID, Quantity: 2},
	})
	assert.ErrorIs(t, err, entities.ErrInsufficientStock)
	assert.Equal(t, 10, f.quantity(t, oil.ID))
	assert.Equal(t, 1, f.quantity(t, filter.ID))

	got, err := f.lifecycle.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Insumos)
	assert.Equal(t, o.Version, got.Version)

	_, err = f.lifecycle.AttachInsumos(ctx, o.ID, []entities.InsumoLine{{StockItemID: oil.ID, Quantity: 0}})
	assert.ErrorIs(t, err, entities.ErrInvalidQuantity)

	_, err = f.lifecycle.AttachInsumos(ctx, o.ID, []entities.InsumoLine{
		{StockItemID: oil.ID, Quantity: 6},
		{StockItemID: oil.ID, Quantity: 5},
	})
	assert.ErrorIs(t, err, entities.ErrInsufficientStock, "lines for the same item are checked together")
	assert.Equal(t, 10, f.quantity(t, oil.ID))
}

func TestOrderLifecycle_GenerateBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
	filter := f.stockItem(t, "Filtro", "30.00", 5, 1)

	o := f.openOrder(t)
	_, err := f.lifecycle.StartDiagnosis(ctx, o.ID)
	require.NoError(t, err)
	_, err = f.lifecycle.AttachInsumos(ctx, o.ID, []entities.InsumoLine{
		{StockItemID: filter.ID, Quantity: 1},
		{StockItemID: oil.ID, Quantity: 2},
	})
	require.NoError(t, err)

	preview, err := f.lifecycle.PreviewBudget(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "230.00", preview.StringFixed(2))

	budget, err := f.lifecycle.GenerateBudget(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "230.00", budget.Value.StringFixed(2))
	assert.Equal(t, entities.BudgetStatusAwaitingApproval, budget.Status)
	require.NotNil(t, budget.SubmittedAt)
	assert.True(t, budget.SubmittedAt.Equal(t0))

	got, err := f.lifecycle.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusAwaitingApproval, got.Status)

	_, err = f.lifecycle.GenerateBudget(ctx, o.ID)
	assert.ErrorIs(t, err, entities.ErrActiveBudgetExists)

	var submitted bool
	for _, e := range f.publisher.events {
		if e.Type == entities.EventBudgetSubmitted && e.OrderID == o.ID {
			submitted = true
			assert.Equal(t, "230.00", e.BudgetValue.StringFixed(2))
		}
	}
	assert.True(t, submitted, "budget submitted event published")
}

func TestOrderLifecycle_ApproveAndClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
	o := f.awaitingOrder(t, entities.InsumoLine{StockItemID: oil.ID, Quantity: 2})

	approved, err := f.lifecycle.Approve(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusInExecution, approved.Status)
	assert.Equal(t, entities.BudgetStatusApproved, approved.Budget.Status)
	assert.Equal(t, entities.OrderInsumoStatusConsumed, approved.Insumos[0].Status)
	assert.Equal(t, 8, f.quantity(t, oil.ID))

	_, err = f.lifecycle.Approve(ctx, o.ID)
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	_, err = f.lifecycle.Deliver(ctx, o.ID)
	assert.ErrorIs(t, err, entities.ErrInvalidState)

	finished, err := f.lifecycle.Finish(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, finished.FinishedAt)

	delivered, err := f.lifecycle.Deliver(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusDelivered, delivered.Status)
	assert.Equal(t, 8, f.quantity(t, oil.ID), "consumed stock stays debited")
}

func TestOrderLifecycle_ApproveRequiresAwaitingApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	received := f.openOrder(t)
	diagnosing := f.openOrder(t)
	_, err := f.lifecycle.StartDiagnosis(ctx, diagnosing.ID)
	require.NoError(t, err)
	cancelled := f.openOrder(t)
	_, err = f.lifecycle.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	for _, id := range []string{received.ID, diagnosing.ID, cancelled.ID} {
		_, err := f.lifecycle.Approve(ctx, id)
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	}
}

func TestOrderLifecycle_RejectReturnsRecordedQuantities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
	filter := f.stockItem(t, "Filtro", "30.00", 5, 1)
	o := f.awaitingOrder(t,
		entities.InsumoLine{StockItemID: oil.ID, Quantity: 2},
		entities.InsumoLine{StockItemID: filter.ID, Quantity: 1},
		entities.InsumoLine{StockItemID: oil.ID, Quantity: 1},
	)
	assert.Equal(t, 7, f.quantity(t, oil.ID))

	_, err := f.ledger.UpdateUnitPrice(ctx, oil.ID, decimal.RequireFromString("99.90"))
	require.NoError(t, err)

	rejected, err := f.lifecycle.Reject(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusCancelled, rejected.Status)
	assert.Equal(t, entities.BudgetStatusRejected, rejected.Budget.Status)
	assert.Equal(t, 10, f.quantity(t, oil.ID))
	assert.Equal(t, 5, f.quantity(t, filter.ID))
	for _, in := range rejected.Insumos {
		assert.Equal(t, entities.OrderInsumoStatusReturned, in.Status)
	}
	assert.Equal(t, []int{2, 1, 1}, []int{rejected.Insumos[0].Quantity, rejected.Insumos[1].Quantity, rejected.Insumos[2].Quantity})

	_, err = f.lifecycle.Reject(ctx, o.ID)
	assert.ErrorIs(t, err, entities.ErrInvalidState)
	assert.Equal(t, 10, f.quantity(t, oil.ID), "second reject credits nothing")
}

func TestOrderLifecycle_CancelBeforeBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
	o := f.openOrder(t)
	_, err := f.lifecycle.AttachInsumos(ctx, o.ID, []entities.InsumoLine{{StockItemID: oil.ID, Quantity: 4}})
	require.NoError(t, err)

	cancelled, err := f.lifecycle.Cancel(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 10, f.quantity(t, oil.ID))

	awaiting := f.awaitingOrder(t)
	_, err = f.lifecycle.Cancel(ctx, awaiting.ID)
	assert.ErrorIs(t, err, entities.ErrInvalidState)
}

func TestOrderLifecycle_ExpireBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
	o := f.awaitingOrder(t, entities.InsumoLine{StockItemID: oil.ID, Quantity: 3})

	f.clock.Set(t0.Add(2*24*time.Hour + 23*time.Hour))
	expired, err := f.lifecycle.ExpireBudget(ctx, o.ID)
	assert.ErrorIs(t, err, entities.ErrNotEligibleForExpiration)
	assert.False(t, expired)
	assert.Equal(t, 7, f.quantity(t, oil.ID))

	f.clock.Set(t0.Add(72 * time.Hour))
	expired, err = f.lifecycle.ExpireBudget(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Equal(t, 10, f.quantity(t, oil.ID))

	got, err := f.lifecycle.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusBudgetExpired, got.Status)
	assert.Equal(t, entities.BudgetStatusExpired, got.Budget.Status)

	expired, err = f.lifecycle.ExpireBudget(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, 10, f.quantity(t, oil.ID), "expiring twice credits once")

	_, err = f.lifecycle.Approve(ctx, o.ID)
	assert.ErrorIs(t, err, entities.ErrInvalidState)
}

func TestOrderLifecycle_ApproveRacesExpire(t *testing.T) {
	for i := 0; i < 25; i++ {
		f := newFixture(t)
		ctx := context.Background()
		oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
		o := f.awaitingOrder(t, entities.InsumoLine{StockItemID: oil.ID, Quantity: 3})
		f.clock.Set(t0.Add(80 * time.Hour))

		var (
			wg         sync.WaitGroup
			start      = make(chan struct{})
			approveErr error
			expired    bool
			expireErr  error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, approveErr = f.lifecycle.Approve(ctx, o.ID)
		}()
		go func() {
			defer wg.Done()
			<-start
			expired, expireErr = f.lifecycle.ExpireBudget(ctx, o.ID)
		}()
		close(start)
		wg.Wait()

		require.NoError(t, expireErr)
		got, err := f.lifecycle.GetOrder(ctx, o.ID)
		require.NoError(t, err)

		if approveErr == nil {
			assert.False(t, expired, "both sides won")
			assert.Equal(t, entities.OrderStatusInExecution, got.Status)
			assert.Equal(t, entities.BudgetStatusApproved, got.Budget.Status)
			assert.Equal(t, 7, f.quantity(t, oil.ID))
		} else {
			assert.ErrorIs(t, approveErr, entities.ErrInvalidState)
			assert.True(t, expired, "nobody won")
			assert.Equal(t, entities.OrderStatusBudgetExpired, got.Status)
			assert.Equal(t, entities.BudgetStatusExpired, got.Budget.Status)
			assert.Equal(t, 10, f.quantity(t, oil.ID))
		}
		assert.Equal(t, int64(4), got.Version, "exactly one transition committed after submission")
	}
}

func TestOrderLifecycle_ConcurrentAttachInsumosOverdraw(t *testing.T) {
	for i := 0; i < 10; i++ {
		f := newFixture(t)
		ctx := context.Background()
		oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 0)
		first, second := f.openOrder(t), f.openOrder(t)

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			errs  = make([]error, 2)
		)
		for j, o := range []entities.Order{first, second} {
			wg.Add(1)
			go func(j int, id string) {
				defer wg.Done()
				<-start
				_, errs[j] = f.lifecycle.AttachInsumos(ctx, id, []entities.InsumoLine{{StockItemID: oil.ID, Quantity: 6}})
			}(j, o.ID)
		}
		close(start)
		wg.Wait()

		won := 0
		for _, err := range errs {
			if err == nil {
				won++
				continue
			}
			assert.ErrorIs(t, err, entities.ErrInsufficientStock)
		}
		require.Equal(t, 1, won, "exactly one reservation fits the stock")
		assert.Equal(t, 4, f.quantity(t, oil.ID))

		reserved := 0
		for _, o := range []entities.Order{first, second} {
			got, err := f.lifecycle.GetOrder(ctx, o.ID)
			require.NoError(t, err)
			reserved += len(got.ReservedInsumos())
		}
		assert.Equal(t, 1, reserved, "the refused order keeps no insumo rows")
	}
}

func TestOrderLifecycle_ListActiveOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	received := f.openOrder(t)
	f.clock.Advance(time.Minute)
	awaiting := f.awaitingOrder(t)
	f.clock.Advance(time.Minute)
	executing := f.awaitingOrder(t)
	_, err := f.lifecycle.Approve(ctx, executing.ID)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	diagnosing := f.openOrder(t)
	_, err = f.lifecycle.StartDiagnosis(ctx, diagnosing.ID)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	olderReceived := received
	newerReceived := f.openOrder(t)
	f.clock.Advance(time.Minute)
	cancelled := f.openOrder(t)
	_, err = f.lifecycle.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	active, err := f.lifecycle.ListActiveOrders(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(active))
	for _, o := range active {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{executing.ID, awaiting.ID, diagnosing.ID, olderReceived.ID, newerReceived.ID}, ids)

	t.Run("configured priority drops terminal statuses", func(t *testing.T) {
		custom := NewOrderLifecycleUseCase(OrderLifecycleDeps{
			Orders: f.store.Orders(),
			Clock:  f.clock,
			ActivePriority: []entities.OrderStatus{
				entities.OrderStatusReceived,
				entities.OrderStatusCancelled,
				entities.OrderStatusAwaitingApproval,
			},
		})
		active, err := custom.ListActiveOrders(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(active))
		for _, o := range active {
			ids = append(ids, o.ID)
		}
		assert.Equal(t, []string{olderReceived.ID, newerReceived.ID, awaiting.ID}, ids)
	})

	byStatus, err := f.lifecycle.ListByStatus(ctx, entities.OrderStatusCancelled)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, cancelled.ID, byStatus[0].ID)
}

func TestOrderLifecycle_CommitFailures(t *testing.T) {
	awaiting := func() entities.Order {
		o, _ := entities.NewOrder(entities.NewOrderParams{ClientID: "c", VehicleID: "v", ServiceID: "s"}, t0)
		o.Version = 3
		_, _ = o.GenerateBudget(decimal.NewFromInt(100), nil, t0)
		return o
	}

	cases := []struct {
		name      string
		commitErr error
		want      error
		notWant   error
	}{
		{"storage down", errors.New("dynamodb unavailable"), entities.ErrPersistenceFailure, entities.ErrInvalidState},
		{"stale version", interfaces.ErrVersionConflict, entities.ErrInvalidState, entities.ErrPersistenceFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIOrderRepository(ctrl)
			publisher := &recordingPublisher{}
			uc := NewOrderLifecycleUseCase(OrderLifecycleDeps{
				Orders:    repo,
				Publisher: publisher,
				Clock:     clock.NewManual(t0),
				Logger:    zap.NewNop(),
			})

			o := awaiting()
			repo.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)
			repo.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, c interfaces.OrderCommit) (entities.Order, error) {
					if c.ExpectedVersion != 3 || c.IsNew || c.Order.Status != entities.OrderStatusInExecution {
						t.Fatalf("unexpected commit: %+v", c)
					}
					return entities.Order{}, tc.commitErr
				},
			)

			_, err := uc.Approve(context.Background(), o.ID)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if errors.Is(err, tc.notWant) {
				t.Fatalf("did not expect %v in %v", tc.notWant, err)
			}
			if len(publisher.events) != 0 {
				t.Fatalf("no events may be published for a failed commit")
			}
		})
	}

	t.Run("stock condition at commit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		f := newFixture(t)
		oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
		uc := NewOrderLifecycleUseCase(OrderLifecycleDeps{
			Orders: repo,
			Ledger: f.ledger,
			Clock:  f.clock,
		})

		o, _ := entities.NewOrder(entities.NewOrderParams{ClientID: "c", VehicleID: "v", ServiceID: "s"}, t0)
		repo.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)
		repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrStockConditionFailed)

		_, err := uc.AttachInsumos(context.Background(), o.ID, []entities.InsumoLine{{StockItemID: oil.ID, Quantity: 1}})
		if !errors.Is(err, entities.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
	})

	t.Run("stock item collision is replayed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderLifecycleUseCase(OrderLifecycleDeps{
			Orders:              repo,
			Clock:               clock.NewManual(t0),
			CommitAttempts:      3,
			CommitRetryInterval: time.Millisecond,
		})

		o := awaiting()
		repo.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)
		var seen []int64
		gomock.InOrder(
			repo.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, c interfaces.OrderCommit) (entities.Order, error) {
					seen = append(seen, c.ExpectedVersion)
					return entities.Order{}, fmt.Errorf("%w: stock item oleo", interfaces.ErrCommitConflict)
				},
			),
			repo.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, c interfaces.OrderCommit) (entities.Order, error) {
					seen = append(seen, c.ExpectedVersion)
					stored := c.Order
					stored.Version = c.ExpectedVersion + 1
					return stored, nil
				},
			),
		)

		got, err := uc.Approve(context.Background(), o.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version != 4 || len(seen) != 2 || seen[0] != 3 || seen[1] != 3 {
			t.Fatalf("expected the same commit replayed once, got version %d and %v", got.Version, seen)
		}
	})

	t.Run("stock item collisions are bounded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderLifecycleUseCase(OrderLifecycleDeps{
			Orders:              repo,
			Clock:               clock.NewManual(t0),
			CommitAttempts:      2,
			CommitRetryInterval: time.Millisecond,
		})

		o := awaiting()
		repo.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)
		repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrCommitConflict).Times(2)

		_, err := uc.Approve(context.Background(), o.ID)
		if !errors.Is(err, entities.ErrPersistenceFailure) {
			t.Fatalf("expected ErrPersistenceFailure, got %v", err)
		}
	})

	t.Run("missing stock item at commit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		f := newFixture(t)
		oil := f.stockItem(t, "Oil 5W30", "25.00", 10, 2)
		uc := NewOrderLifecycleUseCase(OrderLifecycleDeps{
			Orders: repo,
			Ledger: f.ledger,
			Clock:  f.clock,
		})

		o, _ := entities.NewOrder(entities.NewOrderParams{ClientID: "c", VehicleID: "v", ServiceID: "s"}, t0)
		repo.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)
		repo.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrStockItemMissing)

		_, err := uc.AttachInsumos(context.Background(), o.ID, []entities.InsumoLine{{StockItemID: oil.ID, Quantity: 1}})
		if !errors.Is(err, ErrStockItemNotFound) || errors.Is(err, entities.ErrInsufficientStock) {
			t.Fatalf("expected ErrStockItemNotFound, got %v", err)
		}
	})

	t.Run("load failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderLifecycleUseCase(OrderLifecycleDeps{Orders: repo, Clock: clock.NewManual(t0)})

		repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.Order{}, errors.New("timeout"))

		_, err := uc.Finish(context.Background(), "os-1")
		if !errors.Is(err, entities.ErrPersistenceFailure) {
			t.Fatalf("expected ErrPersistenceFailure, got %v", err)
		}
	})
}

func TestOrderLifecycle_PublishesStatusEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.openOrder(t)
	_, err := f.lifecycle.StartDiagnosis(ctx, o.ID)
	require.NoError(t, err)

	require.NotEmpty(t, f.publisher.events)
	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, entities.EventOrderStatusChanged, last.Type)
	assert.Equal(t, entities.OrderStatusReceived, last.FromStatus)
	assert.Equal(t, entities.OrderStatusInDiagnosis, last.ToStatus)
	assert.Equal(t, "cliente@example.com", last.ClientEmail)
}
