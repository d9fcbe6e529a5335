package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/infrastructure/clock"
	mock_interfaces "mecanica_xpto_os/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func approvedOrder(t *testing.T) entities.Order {
	t.Helper()
	o, err := entities.NewOrder(entities.NewOrderParams{ClientID: "c", VehicleID: "v", ServiceID: "s"}, t0)
	if err != nil {
		t.Fatalf("new order: %v", err)
	}
	if _, err := o.GenerateBudget(mustDecimal("230.00"), nil, t0); err != nil {
		t.Fatalf("generate budget: %v", err)
	}
	if err := o.ApproveBudget(t0); err != nil {
		t.Fatalf("approve: %v", err)
	}
	return o
}

type paymentMocks struct {
	repo    *mock_interfaces.MockIBillingPaymentRepository
	orders  *mock_interfaces.MockIOrderRepository
	gateway *mock_interfaces.MockIPaymentGateway
}

func newPaymentUseCase(t *testing.T, settings PaymentSettings) (*BillingPaymentUseCase, paymentMocks) {
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		repo:    mock_interfaces.NewMockIBillingPaymentRepository(ctrl),
		orders:  mock_interfaces.NewMockIOrderRepository(ctrl),
		gateway: mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	uc := NewBillingPaymentUseCase(m.repo, m.orders, m.gateway, clock.NewManual(t0), zap.NewNop(), settings)
	return uc, m
}

func TestBillingPaymentUseCase_PayBudget_Validations(t *testing.T) {
	t.Run("empty order id", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, clock.System{}, zap.NewNop(), PaymentSettings{})
		_, err := uc.PayBudget(context.Background(), " ", json.RawMessage(`{}`))
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, clock.System{}, zap.NewNop(), PaymentSettings{})
		_, err := uc.PayBudget(context.Background(), "os-1", json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewBillingPaymentUseCase(nil, nil, nil, clock.System{}, zap.NewNop(), PaymentSettings{})
		_, err := uc.PayBudget(context.Background(), "os-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSettings{})
		m.orders.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.Order{}, nil)

		_, err := uc.PayBudget(context.Background(), "os-1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("budget not approved", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSettings{})
		o, _ := entities.NewOrder(entities.NewOrderParams{ClientID: "c", VehicleID: "v", ServiceID: "s"}, t0)
		m.orders.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)

		_, err := uc.PayBudget(context.Background(), o.ID, json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrBudgetNotApproved) || !errors.Is(err, entities.ErrInvalidState) {
			t.Fatalf("expected ErrBudgetNotApproved, got %v", err)
		}
	})

	t.Run("missing payment_method_id", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSettings{})
		o := approvedOrder(t)
		m.orders.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)

		_, err := uc.PayBudget(context.Background(), o.ID, json.RawMessage(`{"payer":{"email":"x@test.com"}}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("missing payer outside sandbox", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSettings{})
		o := approvedOrder(t)
		m.orders.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)

		_, err := uc.PayBudget(context.Background(), o.ID, json.RawMessage(`{"payment_method_id":"pix"}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_PayBudget_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "customer not found", err: errors.New(`{"code":2002}`), want: ErrPaymentGatewayCustomerNotFound},
		{name: "invalid users", err: errors.New(`invalid users involved`), want: ErrPaymentGatewayInvalidUsers},
		{name: "unauthorized", err: errors.New(`{"error":"unauthorized"}`), want: ErrPaymentGatewayUnauthorized},
		{name: "bad request", err: errors.New(`{"status":400}`), want: ErrPaymentGatewayBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newPaymentUseCase(t, PaymentSettings{})
			o := approvedOrder(t)
			m.orders.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)

			_, err := uc.PayBudget(context.Background(), o.ID, json.RawMessage(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBillingPaymentUseCase_PayBudget_Success(t *testing.T) {
	cases := []struct {
		name           string
		providerStatus string
		want           entities.PaymentStatus
	}{
		{name: "approved", providerStatus: "approved", want: entities.PaymentStatusAprovado},
		{name: "rejected", providerStatus: "rejected", want: entities.PaymentStatusNegado},
		{name: "in process", providerStatus: "in_process", want: entities.PaymentStatusPendente},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newPaymentUseCase(t, PaymentSettings{SandboxToken: true, TestPayerEmail: "sandbox@test.com"})
			o := approvedOrder(t)
			m.orders.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
					var sent map[string]any
					if err := json.Unmarshal(payload, &sent); err != nil {
						t.Fatalf("payload is not json: %v", err)
					}
					if sent["transaction_amount"] != 230.0 || sent["external_reference"] != o.ID {
						t.Fatalf("unexpected payload: %v", sent)
					}
					payer := sent["payer"].(map[string]any)
					if payer["email"] != "sandbox@test.com" || payer["type"] != "customer" {
						t.Fatalf("unexpected payer: %v", payer)
					}
					return "mp-123", tc.providerStatus, json.RawMessage(`{"id":123}`), nil
				},
			)
			m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.BillingPayment{})).DoAndReturn(
				func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
					return p, nil
				},
			)

			p, err := uc.PayBudget(context.Background(), o.ID, json.RawMessage(`{"payment_method_id":"pix","transaction_amount":1}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ID != "mp-123" || p.Status != tc.want || p.Amount.StringFixed(2) != "230.00" || p.BudgetID != o.Budget.ID {
				t.Fatalf("unexpected payment: %+v", p)
			}
			if !p.Date.Equal(t0) {
				t.Fatalf("expected payment date from clock, got %v", p.Date)
			}
		})
	}

	t.Run("persist failure", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSettings{MockMode: true})
		o := approvedOrder(t)
		m.orders.EXPECT().GetByID(gomock.Any(), o.ID).Return(o, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mock-1", "approved", json.RawMessage(`{}`), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.BillingPayment{}, errors.New("db"))

		_, err := uc.PayBudget(context.Background(), o.ID, nil)
		if !errors.Is(err, entities.ErrPersistenceFailure) {
			t.Fatalf("expected ErrPersistenceFailure, got %v", err)
		}
	})
}

func TestBillingPaymentUseCase_Reads(t *testing.T) {
	t.Run("get by id not found", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSettings{})
		m.repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.BillingPayment{}, nil)
		if _, err := uc.GetByID(context.Background(), "p-1"); !errors.Is(err, ErrBillingPaymentNotFound) {
			t.Fatalf("expected ErrBillingPaymentNotFound, got %v", err)
		}
	})

	t.Run("get by id invalid", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t, PaymentSettings{})
		if _, err := uc.GetByID(context.Background(), ""); !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("list by order", func(t *testing.T) {
		uc, m := newPaymentUseCase(t, PaymentSettings{})
		m.repo.EXPECT().ListByOrderID(gomock.Any(), "os-1").Return([]entities.BillingPayment{{ID: "p-1"}, {ID: "p-2"}}, nil)
		list, err := uc.ListByOrderID(context.Background(), " os-1 ")
		if err != nil || len(list) != 2 {
			t.Fatalf("unexpected result %v %v", list, err)
		}
	})
}
