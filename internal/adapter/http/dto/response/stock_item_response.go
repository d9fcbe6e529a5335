package response

import (
	"time"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase"
)

type StockItemResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	UnitPrice       string    `json:"unit_price" example:"39.90"`
	Quantity        int       `json:"quantity"`
	MinimumQuantity int       `json:"minimum_quantity"`
	Critical        bool      `json:"critical"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DebitResponse struct {
	Item          StockItemResponse `json:"item"`
	QuantityAfter int               `json:"quantity_after"`
	BelowMinimum  bool              `json:"below_minimum"`
}

type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price" example:"150.00"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromStockItem(s entities.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		UnitPrice:       s.UnitPrice.StringFixed(2),
		Quantity:        s.Quantity,
		MinimumQuantity: s.MinimumQuantity,
		Critical:        s.IsCritical(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func FromStockItems(items []entities.StockItem) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromStockItem(s))
	}
	return out
}

func FromDebitResult(r usecase.DebitResult) DebitResponse {
	return DebitResponse{
		Item:          FromStockItem(r.Item),
		QuantityAfter: r.QuantityAfter,
		BelowMinimum:  r.BelowMinimum,
	}
}

func FromService(s entities.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.StringFixed(2),
		CreatedAt:   s.CreatedAt,
	}
}
