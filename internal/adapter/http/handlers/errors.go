package handlers

import (
	"errors"
	"net/http"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase"
	"mecanica_xpto_os/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// mapDomainError translates use case errors into the HTTP error contract.
// Specific sentinels come first because several of them wrap the generic
// taxonomy errors.
func mapDomainError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidStockItemID),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidMPPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest),
		errors.Is(err, entities.ErrInvalidOrderFields),
		errors.Is(err, entities.ErrInvalidStockItemFields),
		errors.Is(err, entities.ErrInvalidServiceFields),
		errors.Is(err, entities.ErrInvalidUnitPrice),
		errors.Is(err, entities.ErrMinimumAboveQuantity):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", err, http.StatusServiceUnavailable)

	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrStockItemNotFound):
		return pkg.NewDomainErrorSimple("STOCK_ITEM_NOT_FOUND", "Stock item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Resource not found", http.StatusNotFound)

	case errors.Is(err, entities.ErrActiveBudgetExists):
		return pkg.NewDomainErrorSimple("ACTIVE_BUDGET_EXISTS", "Order already has an active budget", http.StatusConflict)
	case errors.Is(err, usecase.ErrBudgetNotApproved):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_APPROVED", "Budget not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Order was changed by another request", http.StatusConflict)
	case errors.Is(err, entities.ErrNotEligibleForExpiration):
		return pkg.NewDomainErrorSimple("NOT_ELIGIBLE_FOR_EXPIRATION", "Budget is not eligible for expiration yet", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidState):
		return pkg.NewDomainErrorSimple("INVALID_STATE", "Operation not allowed in the current status", http.StatusConflict)

	case errors.Is(err, entities.ErrInsufficientStock):
		return pkg.NewDomainErrorSimple("INSUFFICIENT_STOCK", "Insufficient stock", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrInvalidQuantity):
		return pkg.NewDomainErrorSimple("INVALID_QUANTITY", "Quantity must be greater than zero", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrInvalidBudgetValue):
		return pkg.NewDomainErrorSimple("INVALID_BUDGET_VALUE", "Budget value must be greater than zero", http.StatusUnprocessableEntity)

	case errors.Is(err, entities.ErrPersistenceFailure):
		return pkg.NewDomainError("PERSISTENCE_FAILURE", "Storage temporarily unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func respondError(c *gin.Context, log *zap.Logger, action string, err error, fields ...zap.Field) {
	appErr := mapDomainError(err)
	fields = append(fields, zap.String("code", appErr.Code), zap.Int("status", appErr.HTTPStatus), zap.Error(err))
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error(action+" failed", fields...)
	} else {
		log.Info(action+" rejected", fields...)
	}
	_ = c.Error(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func respondInvalidRequest(c *gin.Context) {
	c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
}
