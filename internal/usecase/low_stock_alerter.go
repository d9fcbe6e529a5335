package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// AlertReport summarizes one alerter pass.
type AlertReport struct {
	Checked int
	Alerted int
	Skipped int
	Failed  int
}

// LowStockAlerter notifies the stock-alert recipients about critical items,
// at most once per item per calendar day.
type LowStockAlerter struct {
	items      interfaces.IStockItemRepository
	alerts     interfaces.IAlertRecordRepository
	recipients interfaces.IRecipientSource
	dispatcher interfaces.INotificationDispatcher
	clock      interfaces.IClock
	log        *zap.Logger
	location   *time.Location
	sent       metric.Int64Counter
}

var _ ILowStockTrigger = (*LowStockAlerter)(nil)

func NewLowStockAlerter(
	items interfaces.IStockItemRepository,
	alerts interfaces.IAlertRecordRepository,
	recipients interfaces.IRecipientSource,
	dispatcher interfaces.INotificationDispatcher,
	clock interfaces.IClock,
	log *zap.Logger,
	location *time.Location,
) *LowStockAlerter {
	if location == nil {
		location = time.UTC
	}
	return &LowStockAlerter{
		items:      items,
		alerts:     alerts,
		recipients: recipients,
		dispatcher: dispatcher,
		clock:      clock,
		log:        log,
		location:   location,
		sent:       newCounter("os.stock.low_alerts", "Low stock alerts recorded"),
	}
}

// RunOnce alerts on every critical stock item.
func (a *LowStockAlerter) RunOnce(ctx context.Context) (AlertReport, error) {
	ctx, span := tracer.Start(ctx, "stock.low_stock_alerter")
	defer span.End()

	critical, err := a.items.ListCritical(ctx)
	if err != nil {
		span.RecordError(err)
		return AlertReport{}, persistenceFailure(err)
	}
	return a.alert(ctx, critical)
}

// CheckItems alerts on the given items that are critical right now.
func (a *LowStockAlerter) CheckItems(ctx context.Context, stockItemIDs []string) (AlertReport, error) {
	if len(stockItemIDs) == 0 {
		return AlertReport{}, nil
	}
	items, err := a.items.GetMany(ctx, stockItemIDs)
	if err != nil {
		return AlertReport{}, persistenceFailure(err)
	}

	critical := make([]entities.StockItem, 0, len(items))
	for _, id := range stockItemIDs {
		if item, ok := items[id]; ok && item.IsCritical() {
			critical = append(critical, item)
		}
	}
	return a.alert(ctx, critical)
}

func (a *LowStockAlerter) alert(ctx context.Context, critical []entities.StockItem) (AlertReport, error) {
	now := a.clock.Now()
	day := entities.AlertDay(now, a.location)

	var (
		report     AlertReport
		errs       error
		recipients []string
		resolved   bool
	)
	for _, item := range critical {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		report.Checked++

		exists, err := a.alerts.Exists(ctx, item.ID, day)
		if err != nil {
			report.Failed++
			errs = multierr.Append(errs, fmt.Errorf("stock item %s: %w", item.ID, persistenceFailure(err)))
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		if !resolved {
			recipients, err = a.recipients.StockAlertRecipients(ctx)
			if err != nil {
				report.Failed++
				return report, multierr.Append(errs, fmt.Errorf("resolve recipients: %w", err))
			}
			resolved = true
		}

		// The record is the claim: only the pass that creates it notifies.
		created, err := a.alerts.Create(ctx, entities.NewAlertRecord(item.ID, day, recipients, now))
		if err != nil {
			report.Failed++
			errs = multierr.Append(errs, fmt.Errorf("stock item %s: %w", item.ID, persistenceFailure(err)))
			continue
		}
		if !created {
			report.Skipped++
			continue
		}

		if len(recipients) > 0 {
			subject, body := lowStockMessage(item, now, a.location)
			if err := a.dispatcher.Send(ctx, recipients, subject, body); err != nil {
				a.log.Warn("[stock][alerter] dispatch failed", zap.String("stock_item_id", item.ID), zap.Error(err))
				report.Failed++
				errs = multierr.Append(errs, fmt.Errorf("stock item %s: %w", item.ID, err))
				if derr := a.alerts.Delete(ctx, item.ID, day); derr != nil {
					a.log.Error("[stock][alerter] release alert claim failed", zap.String("stock_item_id", item.ID), zap.Error(derr))
					errs = multierr.Append(errs, fmt.Errorf("stock item %s: %w", item.ID, persistenceFailure(derr)))
				}
				continue
			}
		} else {
			a.log.Warn("[stock][alerter] no recipients configured", zap.String("stock_item_id", item.ID))
		}

		report.Alerted++
		a.sent.Add(ctx, 1, metric.WithAttributes(attribute.String("stock_item_id", item.ID)))
		a.log.Info("[stock][alerter] low stock alert recorded",
			zap.String("stock_item_id", item.ID),
			zap.Int("quantity", item.Quantity),
			zap.Int("minimum", item.MinimumQuantity),
			zap.Int("recipients", len(recipients)),
		)
	}
	return report, errs
}

func lowStockMessage(item entities.StockItem, now time.Time, loc *time.Location) (string, string) {
	name := html.EscapeString(item.Name)
	subject := fmt.Sprintf("Estoque baixo: %s", item.Name)

	var b strings.Builder
	b.WriteString("<h2>Alerta de estoque baixo</h2>")
	fmt.Fprintf(&b, "<p>O insumo <strong>%s</strong> atingiu o estoque mínimo.</p>", name)
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Quantidade atual: %d</li>", item.Quantity)
	fmt.Fprintf(&b, "<li>Quantidade mínima: %d</li>", item.MinimumQuantity)
	fmt.Fprintf(&b, "<li>Verificado em: %s</li>", now.In(loc).Format("02/01/2006 15:04"))
	b.WriteString("</ul>")
	return subject, b.String()
}
