package response

import (
	"time"

	"mecanica_xpto_os/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type BudgetResponse struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	Value       string     `json:"value" example:"230.00"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type OrderInsumoResponse struct {
	ID          string    `json:"id"`
	StockItemID string    `json:"stock_item_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID                string                `json:"id"`
	ClientID          string                `json:"client_id"`
	ClientEmail       string                `json:"client_email,omitempty"`
	VehicleID         string                `json:"vehicle_id"`
	ServiceID         string                `json:"service_id"`
	Description       string                `json:"description,omitempty"`
	Status            string                `json:"status"`
	Budget            *BudgetResponse       `json:"budget,omitempty"`
	Insumos           []OrderInsumoResponse `json:"insumos"`
	BudgetSubmittedAt *time.Time            `json:"budget_submitted_at,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	FinishedAt        *time.Time            `json:"finished_at,omitempty"`
	DeliveredAt       *time.Time            `json:"delivered_at,omitempty"`
	Version           int64                 `json:"version"`
}

type BudgetPreviewResponse struct {
	OrderID string `json:"order_id"`
	Value   string `json:"value" example:"230.00"`
}

func FromBudget(b entities.Budget) BudgetResponse {
	res := BudgetResponse{
		ID:          b.ID,
		OrderID:     b.OrderID,
		Value:       b.Value.StringFixed(2),
		Status:      string(b.Status),
		SubmittedAt: b.SubmittedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.SubmittedAt != nil && b.Status == entities.BudgetStatusAwaitingApproval {
		expires := b.SubmittedAt.Add(entities.BudgetExpirationWindow)
		res.ExpiresAt = &expires
	}
	return res
}

func FromOrder(o entities.Order) OrderResponse {
	res := OrderResponse{
		ID:                o.ID,
		ClientID:          o.ClientID,
		ClientEmail:       o.ClientEmail,
		VehicleID:         o.VehicleID,
		ServiceID:         o.ServiceID,
		Description:       o.Description,
		Status:            string(o.Status),
		Insumos:           make([]OrderInsumoResponse, 0, len(o.Insumos)),
		BudgetSubmittedAt: o.BudgetSubmittedAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		FinishedAt:        o.FinishedAt,
		DeliveredAt:       o.DeliveredAt,
		Version:           o.Version,
	}
	if o.Budget != nil {
		b := FromBudget(*o.Budget)
		res.Budget = &b
	}
	for _, in := range o.Insumos {
		res.Insumos = append(res.Insumos, OrderInsumoResponse{
			ID:          in.ID,
			StockItemID: in.StockItemID,
			Quantity:    in.Quantity,
			Status:      string(in.Status),
			CreatedAt:   in.CreatedAt,
		})
	}
	return res
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func FromBudgetPreview(orderID string, value decimal.Decimal) BudgetPreviewResponse {
	return BudgetPreviewResponse{OrderID: orderID, Value: value.StringFixed(2)}
}
