package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mecanica_xpto_os/internal/adapter/http/handlers/mocks"
	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newOrderRouter(uc usecase.IOrderLifecycleUseCase) *gin.Engine {
	h := NewOrderHandler(uc, zap.NewNop())
	r := gin.New()
	r.POST("/v1/orders", h.OpenOrder)
	r.GET("/v1/orders", h.ListOrders)
	r.GET("/v1/orders/active", h.ListActiveOrders)
	r.GET("/v1/orders/:id", h.GetOrder)
	r.PATCH("/v1/orders/:id/diagnosis", h.StartDiagnosis)
	r.POST("/v1/orders/:id/insumos", h.AttachInsumos)
	r.GET("/v1/orders/:id/budget/preview", h.PreviewBudget)
	r.POST("/v1/orders/:id/budget", h.GenerateBudget)
	r.PATCH("/v1/orders/:id/budget/approve", h.ApproveBudget)
	r.PATCH("/v1/orders/:id/budget/reject", h.RejectBudget)
	r.PATCH("/v1/orders/:id/budget/expire", h.ExpireBudget)
	r.PATCH("/v1/orders/:id/cancel", h.CancelOrder)
	r.PATCH("/v1/orders/:id/finish", h.FinishOrder)
	r.PATCH("/v1/orders/:id/deliver", h.DeliverOrder)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_OpenOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)

		w := doJSON(newOrderRouter(uc), http.MethodPost, "/v1/orders", `{"client_id":"c-1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("service not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().OpenOrder(gomock.Any(), gomock.Any()).Return(entities.Order{}, usecase.ErrServiceNotFound)

		w := doJSON(newOrderRouter(uc), http.MethodPost, "/v1/orders", `{"client_id":"c-1","vehicle_id":"v-1","service_id":"s-9"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().OpenOrder(gomock.Any(), usecase.OpenOrderInput{
			ClientID:    "c-1",
			ClientEmail: "cliente@example.com",
			VehicleID:   "v-1",
			ServiceID:   "s-1",
		}).Return(entities.Order{ID: "os-1", ClientID: "c-1", Status: entities.OrderStatusReceived}, nil)

		w := doJSON(newOrderRouter(uc), http.MethodPost, "/v1/orders",
			`{"client_id":" c-1 ","client_email":"cliente@example.com","vehicle_id":"v-1","service_id":"s-1"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "os-1" || body["status"] != "recebida" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestOrderHandler_AttachInsumos(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)

		w := doJSON(newOrderRouter(uc), http.MethodPost, "/v1/orders/os-1/insumos", `{"insumos":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().AttachInsumos(gomock.Any(), "os-1", []entities.InsumoLine{{StockItemID: "i-1", Quantity: 5}}).
			Return(entities.Order{}, entities.ErrInsufficientStock)

		w := doJSON(newOrderRouter(uc), http.MethodPost, "/v1/orders/os-1/insumos", `{"insumos":[{"stock_item_id":"i-1","quantity":5}]}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("attached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		order := entities.Order{
			ID:     "os-1",
			Status: entities.OrderStatusInDiagnosis,
			Insumos: []entities.OrderInsumo{
				{ID: "oi-1", StockItemID: "i-1", Quantity: 2, Status: entities.OrderInsumoStatusReserved},
			},
		}
		uc.EXPECT().AttachInsumos(gomock.Any(), "os-1", gomock.Len(1)).Return(order, nil)

		w := doJSON(newOrderRouter(uc), http.MethodPost, "/v1/orders/os-1/insumos", `{"insumos":[{"stock_item_id":"i-1","quantity":2}]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Insumos []map[string]any `json:"insumos"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body.Insumos) != 1 || body.Insumos[0]["stock_item_id"] != "i-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestOrderHandler_Budget(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("preview", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().PreviewBudget(gomock.Any(), "os-1").Return(decimal.RequireFromString("230"), nil)

		w := doJSON(newOrderRouter(uc), http.MethodGet, "/v1/orders/os-1/budget/preview", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["value"] != "230.00" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("generate conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().GenerateBudget(gomock.Any(), "os-1").Return(entities.Budget{}, entities.ErrActiveBudgetExists)

		w := doJSON(newOrderRouter(uc), http.MethodPost, "/v1/orders/os-1/budget", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("generate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		submitted := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		uc.EXPECT().GenerateBudget(gomock.Any(), "os-1").Return(entities.Budget{
			ID:          "b-1",
			OrderID:     "os-1",
			Value:       decimal.RequireFromString("230"),
			Status:      entities.BudgetStatusAwaitingApproval,
			SubmittedAt: &submitted,
		}, nil)

		w := doJSON(newOrderRouter(uc), http.MethodPost, "/v1/orders/os-1/budget", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["value"] != "230.00" || body["expires_at"] != "2025-03-13T12:00:00Z" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("approve with insufficient stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().Approve(gomock.Any(), "os-1").Return(entities.Order{}, entities.ErrInsufficientStock)

		w := doJSON(newOrderRouter(uc), http.MethodPatch, "/v1/orders/os-1/budget/approve", "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("reject", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().Reject(gomock.Any(), "os-1").Return(entities.Order{ID: "os-1", Status: entities.OrderStatusCancelled}, nil)

		w := doJSON(newOrderRouter(uc), http.MethodPatch, "/v1/orders/os-1/budget/reject", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("expire not eligible", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().ExpireBudget(gomock.Any(), "os-1").Return(false, entities.ErrNotEligibleForExpiration)

		w := doJSON(newOrderRouter(uc), http.MethodPatch, "/v1/orders/os-1/budget/expire", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("expire noop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().ExpireBudget(gomock.Any(), "os-1").Return(false, nil)

		w := doJSON(newOrderRouter(uc), http.MethodPatch, "/v1/orders/os-1/budget/expire", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body ExpireBudgetResponse
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.OrderID != "os-1" || body.Expired {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestOrderHandler_Transitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		path   string
		expect func(uc *mocks.MockIOrderLifecycleUseCase) *gomock.Call
	}{
		{"get", "/v1/orders/os-1", func(uc *mocks.MockIOrderLifecycleUseCase) *gomock.Call {
			return uc.EXPECT().GetOrder(gomock.Any(), "os-1")
		}},
		{"diagnosis", "/v1/orders/os-1/diagnosis", func(uc *mocks.MockIOrderLifecycleUseCase) *gomock.Call {
			return uc.EXPECT().StartDiagnosis(gomock.Any(), "os-1")
		}},
		{"cancel", "/v1/orders/os-1/cancel", func(uc *mocks.MockIOrderLifecycleUseCase) *gomock.Call {
			return uc.EXPECT().Cancel(gomock.Any(), "os-1")
		}},
		{"finish", "/v1/orders/os-1/finish", func(uc *mocks.MockIOrderLifecycleUseCase) *gomock.Call {
			return uc.EXPECT().Finish(gomock.Any(), "os-1")
		}},
		{"deliver", "/v1/orders/os-1/deliver", func(uc *mocks.MockIOrderLifecycleUseCase) *gomock.Call {
			return uc.EXPECT().Deliver(gomock.Any(), "os-1")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name+" conflict", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
			tc.expect(uc).Return(entities.Order{}, entities.ErrInvalidState)

			method := http.MethodPatch
			if tc.name == "get" {
				method = http.MethodGet
			}
			w := doJSON(newOrderRouter(uc), method, tc.path, "")
			if w.Code != http.StatusConflict {
				t.Fatalf("expected 409, got %d", w.Code)
			}
		})

		t.Run(tc.name+" ok", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
			tc.expect(uc).Return(entities.Order{ID: "os-1", Status: entities.OrderStatusInExecution}, nil)

			method := http.MethodPatch
			if tc.name == "get" {
				method = http.MethodGet
			}
			w := doJSON(newOrderRouter(uc), method, tc.path, "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
		})
	}
}

func TestOrderHandler_Lists(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().ListActiveOrders(gomock.Any()).Return([]entities.Order{
			{ID: "os-2", Status: entities.OrderStatusInExecution},
			{ID: "os-1", Status: entities.OrderStatusReceived},
		}, nil)

		w := doJSON(newOrderRouter(uc), http.MethodGet, "/v1/orders/active", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 || body[0]["id"] != "os-2" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)

		w := doJSON(newOrderRouter(uc), http.MethodGet, "/v1/orders?status=paused", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("by status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().ListByStatus(gomock.Any(), entities.OrderStatusAwaitingApproval).Return(nil, nil)

		w := doJSON(newOrderRouter(uc), http.MethodGet, "/v1/orders?status=aguardando_aprovacao", "")
		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("expected 200 with empty list, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("persistence failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderLifecycleUseCase(ctrl)
		uc.EXPECT().ListActiveOrders(gomock.Any()).Return(nil, entities.ErrPersistenceFailure)

		w := doJSON(newOrderRouter(uc), http.MethodGet, "/v1/orders/active", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
