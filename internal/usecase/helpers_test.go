package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"mecanica_xpto_os/internal/adapter/persistence/memory"
	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/infrastructure/clock"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var t0 = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

type sentMail struct {
	Recipients []string
	Subject    string
	Body       string
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []sentMail
}

func (d *recordingDispatcher) Send(_ context.Context, recipients []string, subject, body string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentMail{Recipients: recipients, Subject: subject, Body: body})
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

type staticRecipients []string

func (s staticRecipients) StockAlertRecipients(context.Context) ([]string, error) {
	return s, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entities.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events []entities.DomainEvent) {
	p.mu.Lock()
	p.events = append(p.events, events...)
	p.mu.Unlock()
}

type fixture struct {
	store      *memory.Store
	clock      *clock.Manual
	ledger     *StockLedgerUseCase
	alerter    *LowStockAlerter
	dispatcher *recordingDispatcher
	publisher  *recordingPublisher
	lifecycle  *OrderLifecycleUseCase
	service    entities.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:      memory.NewStore(),
		clock:      clock.NewManual(t0),
		dispatcher: &recordingDispatcher{},
		publisher:  &recordingPublisher{},
	}
	log := zap.NewNop()
	f.ledger = NewStockLedgerUseCase(f.store.StockItems(), f.clock, log, WithLedgerRetry(2, time.Millisecond))
	f.alerter = NewLowStockAlerter(f.store.StockItems(), f.store.Alerts(), staticRecipients{"estoque@oficina.com"}, f.dispatcher, f.clock, log, time.UTC)
	f.lifecycle = NewOrderLifecycleUseCase(OrderLifecycleDeps{
		Orders:    f.store.Orders(),
		Budgets:   NewBudgetLifecycle(f.store.Services(), f.store.StockItems()),
		Ledger:    f.ledger,
		Alerter:   f.alerter,
		Publisher: f.publisher,
		Clock:     f.clock,
		Logger:    log,
	})

	svc, err := entities.NewService("Troca de óleo", "", decimal.RequireFromString("150.00"), t0)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if f.service, err = f.store.Services().Create(context.Background(), svc); err != nil {
		t.Fatalf("create service: %v", err)
	}
	return f
}

func (f *fixture) stockItem(t *testing.T, name, price string, qty, min int) entities.StockItem {
	t.Helper()
	item, err := f.ledger.CreateItem(context.Background(), CreateStockItemInput{
		Name:            name,
		UnitPrice:       decimal.RequireFromString(price),
		Quantity:        qty,
		MinimumQuantity: min,
	})
	if err != nil {
		t.Fatalf("create stock item %s: %v", name, err)
	}
	return item
}

func (f *fixture) openOrder(t *testing.T) entities.Order {
	t.Helper()
	o, err := f.lifecycle.OpenOrder(context.Background(), OpenOrderInput{
		ClientID:    "client-1",
		ClientEmail: "cliente@example.com",
		VehicleID:   "vehicle-1",
		ServiceID:   f.service.ID,
	})
	if err != nil {
		t.Fatalf("open order: %v", err)
	}
	return o
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	item, err := f.ledger.GetItem(context.Background(), id)
	if err != nil {
		t.Fatalf("get item %s: %v", id, err)
	}
	return item.Quantity
}

// awaitingOrder opens an order, reserves the lines and submits its budget.
func (f *fixture) awaitingOrder(t *testing.T, lines ...entities.InsumoLine) entities.Order {
	t.Helper()
	ctx := context.Background()
	o := f.openOrder(t)
	if len(lines) > 0 {
		if _, err := f.lifecycle.AttachInsumos(ctx, o.ID, lines); err != nil {
			t.Fatalf("attach insumos: %v", err)
		}
	}
	if _, err := f.lifecycle.GenerateBudget(ctx, o.ID); err != nil {
		t.Fatalf("generate budget: %v", err)
	}
	got, err := f.lifecycle.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	return got
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
