package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mecanica_xpto_os/internal/adapter/http/handlers"
	"mecanica_xpto_os/internal/adapter/http/handlers/mocks"
	"mecanica_xpto_os/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockIOrderLifecycleUseCase, *mocks.MockIBillingPaymentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockIOrderLifecycleUseCase(ctrl)
	payments := mocks.NewMockIBillingPaymentUseCase(ctrl)
	log := zap.NewNop()

	r := NewRouter(Handlers{
		Orders:   handlers.NewOrderHandler(orders, log),
		Stock:    handlers.NewStockItemHandler(mocks.NewMockIStockLedgerUseCase(ctrl), log),
		Services: handlers.NewServiceHandler(mocks.NewMockIServiceCatalogUseCase(ctrl), log),
		Payments: handlers.NewBillingPaymentHandler(payments, false, log),
	}, log, "test")
	return r, orders, payments
}

func TestNewRouter_Ping(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestNewRouter_ActiveOrdersIsNotAnID(t *testing.T) {
	r, orders, _ := newTestRouter(t)
	orders.EXPECT().ListActiveOrders(gomock.Any()).Return([]entities.Order{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/active", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNewRouter_OrderPayments(t *testing.T) {
	r, _, payments := newTestRouter(t)
	payments.EXPECT().ListByOrderID(gomock.Any(), "os-1").Return(nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/os-1/payments", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/estimates", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
