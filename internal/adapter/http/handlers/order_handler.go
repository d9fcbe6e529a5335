package handlers

import (
	"context"
	"net/http"

	request "mecanica_xpto_os/internal/adapter/http/dto/request"
	response "mecanica_xpto_os/internal/adapter/http/dto/response"
	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes the service order lifecycle.
type OrderHandler struct {
	usecase usecase.IOrderLifecycleUseCase
	log     *zap.Logger
}

type ExpireBudgetResponse struct {
	OrderID string `json:"order_id"`
	Expired bool   `json:"expired"`
}

func NewOrderHandler(uc usecase.IOrderLifecycleUseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{usecase: uc, log: log}
}

// OpenOrder godoc
// @Summary  Abre uma ordem de serviço
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    body body request.OpenOrderRequest true "Order"
// @Success  201 {object} response.OrderResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  404 {object} pkg.HTTPError
// @Router   /orders [post]
func (h *OrderHandler) OpenOrder(c *gin.Context) {
	var payload request.OpenOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidRequest(c)
		return
	}

	order, err := h.usecase.OpenOrder(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, h.log, "[order][handler] open", err, zap.String("client_id", payload.ClientID))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// GetOrder godoc
// @Summary  Consulta uma ordem de serviço
// @Tags     orders
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} response.OrderResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	h.orderAction(c, "[order][handler] get", http.StatusOK, h.usecase.GetOrder)
}

// StartDiagnosis godoc
// @Summary  Inicia o diagnóstico
// @Tags     orders
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} response.OrderResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/diagnosis [patch]
func (h *OrderHandler) StartDiagnosis(c *gin.Context) {
	h.orderAction(c, "[order][handler] start-diagnosis", http.StatusOK, h.usecase.StartDiagnosis)
}

// AttachInsumos godoc
// @Summary  Reserva insumos para a ordem
// @Description Debits every line atomically; nothing is reserved when one line lacks stock.
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id   path string true "Order ID"
// @Param    body body request.AttachInsumosRequest true "Insumo lines"
// @Success  200 {object} response.OrderResponse
// @Failure  409 {object} pkg.HTTPError
// @Failure  422 {object} pkg.HTTPError
// @Router   /orders/{id}/insumos [post]
func (h *OrderHandler) AttachInsumos(c *gin.Context) {
	id := c.Param("id")
	var payload request.AttachInsumosRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidRequest(c)
		return
	}

	order, err := h.usecase.AttachInsumos(c.Request.Context(), id, payload.ToLines())
	if err != nil {
		respondError(c, h.log, "[order][handler] attach-insumos", err, zap.String("order_id", id))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// PreviewBudget godoc
// @Summary  Calcula o valor do orçamento sem submetê-lo
// @Tags     budgets
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} response.BudgetPreviewResponse
// @Router   /orders/{id}/budget/preview [get]
func (h *OrderHandler) PreviewBudget(c *gin.Context) {
	id := c.Param("id")
	value, err := h.usecase.PreviewBudget(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "[order][handler] preview-budget", err, zap.String("order_id", id))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgetPreview(id, value))
}

// GenerateBudget godoc
// @Summary  Gera e submete o orçamento
// @Tags     budgets
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  201 {object} response.BudgetResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/budget [post]
func (h *OrderHandler) GenerateBudget(c *gin.Context) {
	id := c.Param("id")
	budget, err := h.usecase.GenerateBudget(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "[order][handler] generate-budget", err, zap.String("order_id", id))
		return
	}
	c.JSON(http.StatusCreated, response.FromBudget(budget))
}

// ApproveBudget godoc
// @Summary  Aprova o orçamento
// @Tags     budgets
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} response.OrderResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/budget/approve [patch]
func (h *OrderHandler) ApproveBudget(c *gin.Context) {
	h.orderAction(c, "[order][handler] approve", http.StatusOK, h.usecase.Approve)
}

// RejectBudget godoc
// @Summary  Recusa o orçamento e devolve os insumos
// @Tags     budgets
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} response.OrderResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/budget/reject [patch]
func (h *OrderHandler) RejectBudget(c *gin.Context) {
	h.orderAction(c, "[order][handler] reject", http.StatusOK, h.usecase.Reject)
}

// ExpireBudget godoc
// @Summary  Expira um orçamento vencido
// @Tags     budgets
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} ExpireBudgetResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/budget/expire [patch]
func (h *OrderHandler) ExpireBudget(c *gin.Context) {
	id := c.Param("id")
	expired, err := h.usecase.ExpireBudget(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "[order][handler] expire", err, zap.String("order_id", id))
		return
	}
	c.JSON(http.StatusOK, ExpireBudgetResponse{OrderID: id, Expired: expired})
}

// CancelOrder godoc
// @Summary  Cancela uma ordem ainda não orçada
// @Tags     orders
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} response.OrderResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/cancel [patch]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	h.orderAction(c, "[order][handler] cancel", http.StatusOK, h.usecase.Cancel)
}

// FinishOrder godoc
// @Summary  Finaliza a execução
// @Tags     orders
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} response.OrderResponse
// @Router   /orders/{id}/finish [patch]
func (h *OrderHandler) FinishOrder(c *gin.Context) {
	h.orderAction(c, "[order][handler] finish", http.StatusOK, h.usecase.Finish)
}

// DeliverOrder godoc
// @Summary  Registra a entrega do veículo
// @Tags     orders
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {object} response.OrderResponse
// @Router   /orders/{id}/deliver [patch]
func (h *OrderHandler) DeliverOrder(c *gin.Context) {
	h.orderAction(c, "[order][handler] deliver", http.StatusOK, h.usecase.Deliver)
}

// ListActiveOrders godoc
// @Summary  Lista a fila de trabalho por prioridade
// @Tags     orders
// @Produce  json
// @Success  200 {array} response.OrderResponse
// @Router   /orders/active [get]
func (h *OrderHandler) ListActiveOrders(c *gin.Context) {
	orders, err := h.usecase.ListActiveOrders(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "[order][handler] list-active", err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// ListOrders godoc
// @Summary  Lista ordens por status
// @Tags     orders
// @Produce  json
// @Param    status query string true "Order status"
// @Success  200 {array} response.OrderResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	status, ok := entities.ParseOrderStatus(c.Query("status"))
	if !ok {
		respondInvalidRequest(c)
		return
	}
	orders, err := h.usecase.ListByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, h.log, "[order][handler] list-by-status", err, zap.String("status", string(status)))
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

func (h *OrderHandler) orderAction(
	c *gin.Context,
	action string,
	status int,
	fn func(ctx context.Context, id string) (entities.Order, error),
) {
	id := c.Param("id")
	order, err := fn(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, action, err, zap.String("order_id", id))
		return
	}
	c.JSON(status, response.FromOrder(order))
}
