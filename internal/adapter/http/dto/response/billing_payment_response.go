package response

import (
	"time"

	"mecanica_xpto_os/internal/domain/entities"
)

type BillingPaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	BudgetID    string    `json:"budget_id"`
	Amount      string    `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Status      string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		PaymentID:    p.ID,
		ID:           p.ID,
		OrderID:      p.OrderID,
		BudgetID:     p.BudgetID,
		Amount:       p.Amount.StringFixed(2),
		PaymentDate:  p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}

func FromBillingPayments(payments []entities.BillingPayment) []BillingPaymentResponse {
	out := make([]BillingPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromBillingPayment(p))
	}
	return out
}
