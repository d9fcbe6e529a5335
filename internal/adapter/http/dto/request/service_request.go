package request

import (
	"mecanica_xpto_os/internal/usecase"

	"github.com/shopspring/decimal"
)

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"150.00"`
}

func (r CreateServiceRequest) ToInput() usecase.CreateServiceInput {
	return usecase.CreateServiceInput{Name: r.Name, Description: r.Description, Price: r.Price}
}
