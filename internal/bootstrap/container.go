package bootstrap

import (
	"context"
	"fmt"

	"mecanica_xpto_os/internal/adapter/events"
	"mecanica_xpto_os/internal/adapter/http/handlers"
	"mecanica_xpto_os/internal/adapter/http/routes"
	"mecanica_xpto_os/internal/adapter/persistence/memory"
	"mecanica_xpto_os/internal/adapter/persistence/repository"
	"mecanica_xpto_os/internal/config"
	"mecanica_xpto_os/internal/infrastructure/cache"
	"mecanica_xpto_os/internal/infrastructure/clock"
	"mecanica_xpto_os/internal/infrastructure/database"
	"mecanica_xpto_os/internal/infrastructure/notification"
	"mecanica_xpto_os/internal/infrastructure/payments"
	"mecanica_xpto_os/internal/infrastructure/scheduler"
	"mecanica_xpto_os/internal/usecase"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	JobExpireBudgets = "expire-budgets"
	JobStockAlerts   = "stock-alerts"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config    *config.Config
	Log       *zap.Logger
	Router    *gin.Engine
	Outbox    *events.Outbox
	Scheduler *scheduler.Scheduler
	Jobs      map[string]scheduler.Job

	Orders  *usecase.OrderLifecycleUseCase
	Ledger  *usecase.StockLedgerUseCase
	Sweeper *usecase.ExpirationSweeper
	Alerter *usecase.LowStockAlerter

	closers []func() error
}

type repositories struct {
	orders   interfaces.IOrderRepository
	stock    interfaces.IStockItemRepository
	services interfaces.IServiceRepository
	alerts   interfaces.IAlertRecordRepository
	payments interfaces.IBillingPaymentRepository
}

// New wires repositories, use cases, HTTP handlers and jobs from cfg.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	repos, err := newRepositories(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	priority, err := cfg.ActivePriority()
	if err != nil {
		return nil, err
	}
	location, err := cfg.AlertLocation()
	if err != nil {
		return nil, err
	}

	sysClock := clock.System{}
	dispatcher := newDispatcher(cfg, log)

	c.Outbox = events.NewOutbox(cfg.Jobs.OutboxBuffer, log)
	c.Outbox.Register(usecase.NewOrderStatusNotifier(dispatcher, log))

	c.Ledger = usecase.NewStockLedgerUseCase(repos.stock, sysClock, log,
		usecase.WithLedgerRetry(cfg.Ledger.RetryAttempts, cfg.Ledger.RetryInterval))
	c.Alerter = usecase.NewLowStockAlerter(
		repos.stock,
		repos.alerts,
		notification.StaticRecipients(cfg.StockAlertRecipients()),
		dispatcher,
		sysClock,
		log,
		location,
	)
	c.Orders = usecase.NewOrderLifecycleUseCase(usecase.OrderLifecycleDeps{
		Orders:         repos.orders,
		Budgets:        usecase.NewBudgetLifecycle(repos.services, repos.stock),
		Ledger:         c.Ledger,
		Alerter:        c.Alerter,
		Publisher:      c.Outbox,
		Clock:          sysClock,
		Logger:         log,
		ActivePriority: priority,

		CommitAttempts:      cfg.Ledger.RetryAttempts,
		CommitRetryInterval: cfg.Ledger.RetryInterval,
	})
	c.Sweeper = usecase.NewExpirationSweeper(repos.orders, c.Orders, sysClock, log)

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments, log)
	if err != nil {
		log.Warn("[bootstrap] Mercado Pago gateway not configured", zap.Error(err))
	} else {
		gateway = mpGateway
	}
	paymentUseCase := usecase.NewBillingPaymentUseCase(repos.payments, repos.orders, gateway, sysClock, log, usecase.PaymentSettings{
		MockMode:        cfg.Payments.Mock,
		SandboxToken:    payments.IsSandboxToken(cfg.Payments.AccessToken),
		TestPayerEmail:  cfg.Payments.TestPayerEmail,
		TestPayerUserID: cfg.Payments.TestPayerUserID,
	})
	serviceUseCase := usecase.NewServiceCatalogUseCase(repos.services, sysClock, log)

	c.Router = routes.NewRouter(routes.Handlers{
		Orders:   handlers.NewOrderHandler(c.Orders, log),
		Stock:    handlers.NewStockItemHandler(c.Ledger, log),
		Services: handlers.NewServiceHandler(serviceUseCase, log),
		Payments: handlers.NewBillingPaymentHandler(paymentUseCase, cfg.Payments.Mock, log),
	}, log, cfg.Telemetry.ServiceName)

	c.Jobs = map[string]scheduler.Job{
		JobExpireBudgets: {
			Name:     JobExpireBudgets,
			Interval: cfg.Jobs.ExpirationInterval,
			Run: func(ctx context.Context) error {
				_, err := c.Sweeper.RunOnce(ctx)
				return err
			},
		},
		JobStockAlerts: {
			Name:     JobStockAlerts,
			Interval: cfg.Jobs.StockAlertInterval,
			Run: func(ctx context.Context) error {
				_, err := c.Alerter.RunOnce(ctx)
				return err
			},
		},
	}
	c.Scheduler = scheduler.New(c.newJobLock(cfg, log), cfg.Jobs.LockTTL, log,
		c.Jobs[JobExpireBudgets], c.Jobs[JobStockAlerts])

	log.Info("[bootstrap] container ready",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("notification", cfg.Notification.Driver),
		zap.Bool("payments_mock", cfg.Payments.Mock),
		zap.Bool("redis_lock", cfg.Redis.Addr != ""),
	)
	return c, nil
}

// StartOutbox delivers published events until the returned stop is called.
// Cancelling ctx does not stop delivery, so requests still finishing after a
// shutdown signal keep their notifications; stop drains the queue and waits.
func (c *Container) StartOutbox(ctx context.Context) (stop func()) {
	outboxCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Outbox.Run(outboxCtx)
	}()
	return func() {
		cancel()
		<-done
	}
}

// Close releases external clients opened by New.
func (c *Container) Close() error {
	var errs error
	for _, closeFn := range c.closers {
		errs = multierr.Append(errs, closeFn())
	}
	return errs
}

func newRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (repositories, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		store := memory.NewStore()
		return repositories{
			orders:   store.Orders(),
			stock:    store.StockItems(),
			services: store.Services(),
			alerts:   store.Alerts(),
			payments: store.Payments(),
		}, nil
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.Storage, log)
	if err != nil {
		return repositories{}, fmt.Errorf("connect dynamodb: %w", err)
	}
	s := cfg.Storage
	return repositories{
		orders:   repository.NewOrderDynamoRepository(ddb, s.OrdersTable, s.StockItemsTable),
		stock:    repository.NewStockItemDynamoRepository(ddb, s.StockItemsTable),
		services: repository.NewServiceDynamoRepository(ddb, s.ServicesTable),
		alerts:   repository.NewAlertRecordDynamoRepository(ddb, s.AlertsTable),
		payments: repository.NewBillingPaymentDynamoRepository(ddb, s.PaymentsTable),
	}, nil
}

func newDispatcher(cfg *config.Config, log *zap.Logger) interfaces.INotificationDispatcher {
	if cfg.Notification.Driver == config.NotificationHTTP {
		return notification.NewHTTPMailDispatcher(cfg.Notification, log)
	}
	return notification.NewLogDispatcher(log)
}

func (c *Container) newJobLock(cfg *config.Config, log *zap.Logger) interfaces.IJobLock {
	if cfg.Redis.Addr == "" {
		return cache.NewLocalJobLock()
	}
	rdb := cache.NewRedisClient(cfg.Redis)
	c.closers = append(c.closers, rdb.Close)
	return cache.NewRedisJobLock(rdb, log)
}
