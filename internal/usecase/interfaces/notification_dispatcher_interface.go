package interfaces

import "context"

// INotificationDispatcher delivers an HTML message to a list of recipients.
type INotificationDispatcher interface {
	Send(ctx context.Context, recipients []string, subject, bodyHTML string) error
}

// IRecipientSource resolves who receives low stock alerts.
type IRecipientSource interface {
	StockAlertRecipients(ctx context.Context) ([]string, error)
}
