package request

import (
	"strings"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase"
)

// OpenOrderRequest opens a service order ("abre OS").
type OpenOrderRequest struct {
	ClientID    string `json:"client_id" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	VehicleID   string `json:"vehicle_id" binding:"required"`
	ServiceID   string `json:"service_id" binding:"required"`
	Description string `json:"description"`
}

func (r OpenOrderRequest) ToInput() usecase.OpenOrderInput {
	return usecase.OpenOrderInput{
		ClientID:    strings.TrimSpace(r.ClientID),
		ClientEmail: strings.TrimSpace(r.ClientEmail),
		VehicleID:   strings.TrimSpace(r.VehicleID),
		ServiceID:   strings.TrimSpace(r.ServiceID),
		Description: r.Description,
	}
}

type InsumoLineRequest struct {
	StockItemID string `json:"stock_item_id" binding:"required"`
	Quantity    int    `json:"quantity"`
}

// AttachInsumosRequest reserves stock for an order. Quantities are validated
// by the ledger so that a bad line is reported as a quantity error.
type AttachInsumosRequest struct {
	Insumos []InsumoLineRequest `json:"insumos" binding:"required,min=1,dive"`
}

func (r AttachInsumosRequest) ToLines() []entities.InsumoLine {
	lines := make([]entities.InsumoLine, 0, len(r.Insumos))
	for _, in := range r.Insumos {
		lines = append(lines, entities.InsumoLine{
			StockItemID: strings.TrimSpace(in.StockItemID),
			Quantity:    in.Quantity,
		})
	}
	return lines
}
