package request

import "encoding/json"

// BillingPaymentCreateRequest is the payload for "paga orçamento".
//
// `mp_payload` is forwarded to Mercado Pago as-is; the amount always comes
// from the approved budget. A bare Mercado Pago body is accepted too.
type BillingPaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}
