package usecase

import (
	"context"
	"strings"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IServiceCatalogUseCase manages the services orders are opened for.
type IServiceCatalogUseCase interface {
	CreateService(ctx context.Context, in CreateServiceInput) (entities.Service, error)
	GetService(ctx context.Context, id string) (entities.Service, error)
}

type CreateServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

type ServiceCatalogUseCase struct {
	repo  interfaces.IServiceRepository
	clock interfaces.IClock
	log   *zap.Logger
}

var _ IServiceCatalogUseCase = (*ServiceCatalogUseCase)(nil)

func NewServiceCatalogUseCase(repo interfaces.IServiceRepository, clock interfaces.IClock, log *zap.Logger) *ServiceCatalogUseCase {
	return &ServiceCatalogUseCase{repo: repo, clock: clock, log: log}
}

func (u *ServiceCatalogUseCase) CreateService(ctx context.Context, in CreateServiceInput) (entities.Service, error) {
	svc, err := entities.NewService(in.Name, in.Description, in.Price, u.clock.Now())
	if err != nil {
		return entities.Service{}, err
	}
	created, err := u.repo.Create(ctx, svc)
	if err != nil {
		u.log.Error("[service][usecase] create failed", zap.String("name", svc.Name), zap.Error(err))
		return entities.Service{}, persistenceFailure(err)
	}
	u.log.Info("[service][usecase] service created", zap.String("service_id", created.ID), zap.String("price", created.Price.StringFixed(2)))
	return created, nil
}

func (u *ServiceCatalogUseCase) GetService(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	svc, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, persistenceFailure(err)
	}
	if svc.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return svc, nil
}
