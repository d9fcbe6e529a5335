package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	response "mecanica_xpto_os/internal/adapter/http/dto/response"
	"mecanica_xpto_os/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillingPaymentHandler handles HTTP requests for budget payments.
type BillingPaymentHandler struct {
	usecase  usecase.IBillingPaymentUseCase
	mockMode bool
	log      *zap.Logger
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase, mockMode bool, log *zap.Logger) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc, mockMode: mockMode, log: log}
}

// PayBudget godoc
// @Summary  Paga o orçamento aprovado de uma ordem
// @Description Body is the Mercado Pago payment payload, raw or wrapped in mp_payload.
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id   path string true "Order ID"
// @Param    body body request.BillingPaymentCreateRequest false "Mercado Pago payload"
// @Success  201 {object} response.BillingPaymentResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  409 {object} pkg.HTTPError
// @Router   /orders/{id}/payments [post]
func (h *BillingPaymentHandler) PayBudget(c *gin.Context) {
	orderID := c.Param("id")
	h.log.Info("[payment][handler] pay start", zap.String("order_id", orderID))
	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			h.log.Info("[payment][handler] invalid payload", zap.String("order_id", orderID), zap.Error(err))
			respondInvalidRequest(c)
			return
		}
		h.log.Debug("[payment][handler] payload invalid in mock mode; fallback to empty payload", zap.String("order_id", orderID))
		mpPayload = json.RawMessage("{}")
	}

	created, err := h.usecase.PayBudget(c.Request.Context(), orderID, mpPayload)
	if err != nil {
		respondError(c, h.log, "[payment][handler] pay", err, zap.String("order_id", orderID))
		return
	}
	h.log.Info("[payment][handler] pay success",
		zap.String("order_id", orderID),
		zap.String("payment_id", created.ID),
		zap.String("status", string(created.Status)),
	)
	c.JSON(http.StatusCreated, response.FromBillingPayment(created))
}

// ListOrderPayments godoc
// @Summary  Lista os pagamentos de uma ordem
// @Tags     payments
// @Produce  json
// @Param    id path string true "Order ID"
// @Success  200 {array} response.BillingPaymentResponse
// @Router   /orders/{id}/payments [get]
func (h *BillingPaymentHandler) ListOrderPayments(c *gin.Context) {
	orderID := c.Param("id")
	payments, err := h.usecase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, h.log, "[payment][handler] list-by-order", err, zap.String("order_id", orderID))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayments(payments))
}

// GetPayment godoc
// @Summary  Consulta um pagamento
// @Tags     payments
// @Produce  json
// @Param    payment_id path string true "Payment ID"
// @Success  200 {object} response.BillingPaymentResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /payments/{payment_id} [get]
func (h *BillingPaymentHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")
	p, err := h.usecase.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, h.log, "[payment][handler] get", err, zap.String("payment_id", paymentID))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(p))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
