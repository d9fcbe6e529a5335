package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a catalogue entry (e.g. "troca de óleo") an order is opened for.
// Its price is the base of every budget.
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewService(name, description string, price decimal.Decimal, now time.Time) (Service, error) {
	name = strings.TrimSpace(name)
	if name == "" || price.IsNegative() {
		return Service{}, ErrInvalidServiceFields
	}
	return Service{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
