package routes

import (
	"net/http"

	_ "mecanica_xpto_os/docs"
	"mecanica_xpto_os/internal/adapter/http/handlers"
	"mecanica_xpto_os/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	PathOrders     = "/orders"
	PathStockItems = "/stock-items"
	PathServices   = "/services"
	PathPayments   = "/payments"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Orders   *handlers.OrderHandler
	Stock    *handlers.StockItemHandler
	Services *handlers.ServiceHandler
	Payments *handlers.BillingPaymentHandler
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 API.
func NewRouter(h Handlers, log *zap.Logger, serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		otelgin.Middleware(serviceName),
		middleware.Logger(log),
		middleware.Recovery(log),
	)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addOrderRoutes(v1, h.Orders)
	addStockRoutes(v1, h.Stock)
	addServiceRoutes(v1, h.Services)
	addPaymentRoutes(v1, h.Payments)
	return router
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", h.OpenOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/active", h.ListActiveOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id/diagnosis", h.StartDiagnosis)
		orders.POST("/:id/insumos", h.AttachInsumos)
		orders.GET("/:id/budget/preview", h.PreviewBudget)
		orders.POST("/:id/budget", h.GenerateBudget)
		orders.PATCH("/:id/budget/approve", h.ApproveBudget)
		orders.PATCH("/:id/budget/reject", h.RejectBudget)
		orders.PATCH("/:id/budget/expire", h.ExpireBudget)
		orders.PATCH("/:id/cancel", h.CancelOrder)
		orders.PATCH("/:id/finish", h.FinishOrder)
		orders.PATCH("/:id/deliver", h.DeliverOrder)
	}
}

func addStockRoutes(rg *gin.RouterGroup, h *handlers.StockItemHandler) {
	items := rg.Group(PathStockItems)
	{
		items.POST("", h.CreateStockItem)
		items.GET("", h.ListStockItems)
		items.GET("/critical", h.ListCriticalStockItems)
		items.GET("/:id", h.GetStockItem)
		items.POST("/:id/debit", h.DebitStockItem)
		items.POST("/:id/credit", h.CreditStockItem)
		items.PATCH("/:id/price", h.UpdateUnitPrice)
	}
}

func addServiceRoutes(rg *gin.RouterGroup, h *handlers.ServiceHandler) {
	services := rg.Group(PathServices)
	{
		services.POST("", h.CreateService)
		services.GET("/:id", h.GetService)
	}
}
