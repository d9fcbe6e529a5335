package interfaces

import (
	"context"

	"mecanica_xpto_os/internal/domain/entities"
)

// IServiceRepository reads the service catalogue used to price budgets.
type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
}
