package handlers

import (
	"net/http"

	request "mecanica_xpto_os/internal/adapter/http/dto/request"
	response "mecanica_xpto_os/internal/adapter/http/dto/response"
	"mecanica_xpto_os/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StockItemHandler exposes the stock ledger.
type StockItemHandler struct {
	usecase usecase.IStockLedgerUseCase
	log     *zap.Logger
}

func NewStockItemHandler(uc usecase.IStockLedgerUseCase, log *zap.Logger) *StockItemHandler {
	return &StockItemHandler{usecase: uc, log: log}
}

// CreateStockItem godoc
// @Summary  Cadastra um insumo
// @Tags     stock
// @Accept   json
// @Produce  json
// @Param    body body request.CreateStockItemRequest true "Stock item"
// @Success  201 {object} response.StockItemResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /stock-items [post]
func (h *StockItemHandler) CreateStockItem(c *gin.Context) {
	var payload request.CreateStockItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidRequest(c)
		return
	}
	item, err := h.usecase.CreateItem(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, h.log, "[stock][handler] create", err, zap.String("name", payload.Name))
		return
	}
	c.JSON(http.StatusCreated, response.FromStockItem(item))
}

// GetStockItem godoc
// @Summary  Consulta um insumo
// @Tags     stock
// @Produce  json
// @Param    id path string true "Stock item ID"
// @Success  200 {object} response.StockItemResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /stock-items/{id} [get]
func (h *StockItemHandler) GetStockItem(c *gin.Context) {
	id := c.Param("id")
	item, err := h.usecase.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "[stock][handler] get", err, zap.String("stock_item_id", id))
		return
	}
	c.JSON(http.StatusOK, response.FromStockItem(item))
}

// ListStockItems godoc
// @Summary  Lista os insumos
// @Tags     stock
// @Produce  json
// @Success  200 {array} response.StockItemResponse
// @Router   /stock-items [get]
func (h *StockItemHandler) ListStockItems(c *gin.Context) {
	items, err := h.usecase.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "[stock][handler] list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromStockItems(items))
}

// ListCriticalStockItems godoc
// @Summary  Lista os insumos no estoque mínimo ou abaixo
// @Tags     stock
// @Produce  json
// @Success  200 {array} response.StockItemResponse
// @Router   /stock-items/critical [get]
func (h *StockItemHandler) ListCriticalStockItems(c *gin.Context) {
	items, err := h.usecase.ListCritical(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "[stock][handler] list-critical", err)
		return
	}
	c.JSON(http.StatusOK, response.FromStockItems(items))
}

// DebitStockItem godoc
// @Summary  Baixa manual de estoque
// @Tags     stock
// @Accept   json
// @Produce  json
// @Param    id   path string true "Stock item ID"
// @Param    body body request.StockMovementRequest true "Quantity"
// @Success  200 {object} response.DebitResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /stock-items/{id}/debit [post]
func (h *StockItemHandler) DebitStockItem(c *gin.Context) {
	id := c.Param("id")
	var payload request.StockMovementRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidRequest(c)
		return
	}
	result, err := h.usecase.Debit(c.Request.Context(), id, payload.Quantity)
	if err != nil {
		respondError(c, h.log, "[stock][handler] debit", err, zap.String("stock_item_id", id), zap.Int("quantity", payload.Quantity))
		return
	}
	c.JSON(http.StatusOK, response.FromDebitResult(result))
}

// CreditStockItem godoc
// @Summary  Entrada de estoque
// @Tags     stock
// @Accept   json
// @Produce  json
// @Param    id   path string true "Stock item ID"
// @Param    body body request.StockMovementRequest true "Quantity"
// @Success  200 {object} response.StockItemResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /stock-items/{id}/credit [post]
func (h *StockItemHandler) CreditStockItem(c *gin.Context) {
	id := c.Param("id")
	var payload request.StockMovementRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidRequest(c)
		return
	}
	item, err := h.usecase.Credit(c.Request.Context(), id, payload.Quantity)
	if err != nil {
		respondError(c, h.log, "[stock][handler] credit", err, zap.String("stock_item_id", id), zap.Int("quantity", payload.Quantity))
		return
	}
	c.JSON(http.StatusOK, response.FromStockItem(item))
}

// UpdateUnitPrice godoc
// @Summary  Atualiza o preço unitário
// @Description Budgets already submitted keep their value.
// @Tags     stock
// @Accept   json
// @Produce  json
// @Param    id   path string true "Stock item ID"
// @Param    body body request.UpdateUnitPriceRequest true "Unit price"
// @Success  200 {object} response.StockItemResponse
// @Router   /stock-items/{id}/price [patch]
func (h *StockItemHandler) UpdateUnitPrice(c *gin.Context) {
	id := c.Param("id")
	var payload request.UpdateUnitPriceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidRequest(c)
		return
	}
	item, err := h.usecase.UpdateUnitPrice(c.Request.Context(), id, payload.UnitPrice)
	if err != nil {
		respondError(c, h.log, "[stock][handler] update-price", err, zap.String("stock_item_id", id))
		return
	}
	c.JSON(http.StatusOK, response.FromStockItem(item))
}
