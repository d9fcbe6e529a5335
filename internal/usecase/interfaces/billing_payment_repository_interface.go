package interfaces

import (
	"context"

	"mecanica_xpto_os/internal/domain/entities"
)

// IBillingPaymentRepository abstracts persistence for BillingPayment.
// GetByID returns a zero value when the payment does not exist.
type IBillingPaymentRepository interface {
	Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.BillingPayment, error)
}
