package routes

import (
	"mecanica_xpto_os/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.BillingPaymentHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("/:id/payments", h.PayBudget)
		orders.GET("/:id/payments", h.ListOrderPayments)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:payment_id", h.GetPayment)
	}
}
