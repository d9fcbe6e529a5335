package usecase

import (
	"context"
	"fmt"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// IBudgetExpirer is the lifecycle path the sweeper drives; it must be a
// no-op for orders that already left AwaitingApproval.
type IBudgetExpirer interface {
	ExpireBudget(ctx context.Context, id string) (bool, error)
}

type SweepFailure struct {
	OrderID string
	Err     error
}

type SweepReport struct {
	Scanned     int
	Expired     int
	Skipped     int
	Failures    []SweepFailure
	Interrupted bool
}

// ExpirationSweeper expires budgets left waiting for approval longer than
// entities.BudgetExpirationWindow. Each order commits on its own, so a
// failure never rolls back the others.
type ExpirationSweeper struct {
	orders  interfaces.IOrderRepository
	expirer IBudgetExpirer
	clock   interfaces.IClock
	log     *zap.Logger
	expired metric.Int64Counter
}

func NewExpirationSweeper(orders interfaces.IOrderRepository, expirer IBudgetExpirer, clock interfaces.IClock, log *zap.Logger) *ExpirationSweeper {
	return &ExpirationSweeper{
		orders:  orders,
		expirer: expirer,
		clock:   clock,
		log:     log,
		expired: newCounter("os.budget.expired", "Budgets expired by the sweeper"),
	}
}

// RunOnce performs one sweep. The returned error aggregates every per-order
// failure; it also carries ctx.Err() when the sweep stopped early.
func (s *ExpirationSweeper) RunOnce(ctx context.Context) (SweepReport, error) {
	ctx, span := tracer.Start(ctx, "order.expiration_sweep")
	defer span.End()

	cutoff := s.clock.Now().Add(-entities.BudgetExpirationWindow)
	due, err := s.orders.FindAwaitingApprovalPastDue(ctx, cutoff)
	if err != nil {
		span.RecordError(err)
		s.log.Error("[order][sweeper] query failed", zap.Error(err))
		return SweepReport{}, persistenceFailure(err)
	}

	var (
		report SweepReport
		errs   error
	)
	for _, o := range due {
		if err := ctx.Err(); err != nil {
			report.Interrupted = true
			errs = multierr.Append(errs, err)
			break
		}
		report.Scanned++

		expired, err := s.expirer.ExpireBudget(ctx, o.ID)
		switch {
		case err != nil:
			report.Failures = append(report.Failures, SweepFailure{OrderID: o.ID, Err: err})
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", o.ID, err))
			s.log.Warn("[order][sweeper] expire failed", zap.String("order_id", o.ID), zap.Error(err))
		case expired:
			report.Expired++
		default:
			report.Skipped++
		}
	}

	s.expired.Add(ctx, int64(report.Expired))
	span.SetAttributes(
		attribute.Int("sweep.scanned", report.Scanned),
		attribute.Int("sweep.expired", report.Expired),
		attribute.Int("sweep.failed", len(report.Failures)),
	)
	s.log.Info("[order][sweeper] sweep finished",
		zap.Int("due", len(due)),
		zap.Int("expired", report.Expired),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", len(report.Failures)),
		zap.Bool("interrupted", report.Interrupted),
	)
	return report, errs
}
