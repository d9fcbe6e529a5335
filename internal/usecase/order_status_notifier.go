package usecase

import (
	"context"
	"fmt"
	"html"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var orderStatusLabels = map[entities.OrderStatus]string{
	entities.OrderStatusReceived:         "Recebida",
	entities.OrderStatusInDiagnosis:      "Em diagnóstico",
	entities.OrderStatusInBudgeting:      "Em elaboração de orçamento",
	entities.OrderStatusAwaitingApproval: "Aguardando aprovação",
	entities.OrderStatusInExecution:      "Em execução",
	entities.OrderStatusFinished:         "Finalizada",
	entities.OrderStatusDelivered:        "Entregue",
	entities.OrderStatusCancelled:        "Cancelada",
	entities.OrderStatusBudgetExpired:    "Orçamento expirado",
}

// OrderStatusNotifier emails the client whenever their order changes status.
// It is registered as an outbox handler, so it only sees committed changes.
type OrderStatusNotifier struct {
	dispatcher interfaces.INotificationDispatcher
	log        *zap.Logger
}

func NewOrderStatusNotifier(dispatcher interfaces.INotificationDispatcher, log *zap.Logger) *OrderStatusNotifier {
	return &OrderStatusNotifier{dispatcher: dispatcher, log: log}
}

func (n *OrderStatusNotifier) Handle(ctx context.Context, evt entities.DomainEvent) error {
	if evt.Type != entities.EventOrderStatusChanged {
		return nil
	}
	if evt.ClientEmail == "" {
		n.log.Debug("[order][notifier] client without email", zap.String("order_id", evt.OrderID))
		return nil
	}

	label := statusLabel(evt.ToStatus)
	subject := fmt.Sprintf("Ordem de serviço %s: %s", shortID(evt.OrderID), label)
	body := fmt.Sprintf("<p>Sua ordem de serviço <strong>%s</strong> mudou de <em>%s</em> para <em>%s</em>.</p>",
		html.EscapeString(evt.OrderID), html.EscapeString(statusLabel(evt.FromStatus)), html.EscapeString(label))
	if evt.ToStatus == entities.OrderStatusAwaitingApproval && evt.BudgetValue.IsPositive() {
		body += fmt.Sprintf("<p>Valor do orçamento: R$ %s. O orçamento expira em 3 dias.</p>", evt.BudgetValue.StringFixed(2))
	}

	if err := n.dispatcher.Send(ctx, []string{evt.ClientEmail}, subject, body); err != nil {
		return fmt.Errorf("notify order %s: %w", evt.OrderID, err)
	}
	n.log.Info("[order][notifier] client notified", zap.String("order_id", evt.OrderID), zap.String("status", string(evt.ToStatus)))
	return nil
}

func statusLabel(s entities.OrderStatus) string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
