package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// BillingPayment is the charge of an approved order budget.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//
// MPPayloadRaw keeps the provider response for audit; MPPayload is its parsed form.
type BillingPayment struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"order_id"`
	BudgetID string          `json:"budget_id"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Status   PaymentStatus   `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

// PaymentStatusFromProvider maps a Mercado Pago status into ours.
func PaymentStatusFromProvider(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved", "authorized":
		return PaymentStatusAprovado
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusNegado
	default:
		return PaymentStatusPendente
	}
}
