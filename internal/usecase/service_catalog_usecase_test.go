package usecase

import (
	"context"
	"errors"
	"testing"

	"mecanica_xpto_os/internal/domain/entities"
	"mecanica_xpto_os/internal/infrastructure/clock"
	mock_interfaces "mecanica_xpto_os/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestServiceCatalogUseCase_CreateService(t *testing.T) {
	t.Run("invalid fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		uc := NewServiceCatalogUseCase(repo, clock.NewManual(t0), zap.NewNop())

		_, err := uc.CreateService(context.Background(), CreateServiceInput{Name: " ", Price: decimal.NewFromInt(10)})
		if !errors.Is(err, entities.ErrInvalidServiceFields) {
			t.Fatalf("expected ErrInvalidServiceFields, got %v", err)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		uc := NewServiceCatalogUseCase(repo, clock.NewManual(t0), zap.NewNop())
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Service{}, errors.New("down"))

		_, err := uc.CreateService(context.Background(), CreateServiceInput{Name: "Troca de óleo", Price: decimal.NewFromInt(150)})
		if !errors.Is(err, entities.ErrPersistenceFailure) {
			t.Fatalf("expected ErrPersistenceFailure, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		uc := NewServiceCatalogUseCase(repo, clock.NewManual(t0), zap.NewNop())
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s entities.Service) (entities.Service, error) {
			return s, nil
		})

		svc, err := uc.CreateService(context.Background(), CreateServiceInput{Name: " Troca de óleo ", Price: decimal.NewFromInt(150)})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if svc.Name != "Troca de óleo" || !svc.CreatedAt.Equal(t0) || svc.ID == "" {
			t.Fatalf("unexpected service %+v", svc)
		}
	})
}

func TestServiceCatalogUseCase_GetService(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIServiceRepository(ctrl)
	uc := NewServiceCatalogUseCase(repo, clock.NewManual(t0), zap.NewNop())

	repo.EXPECT().GetByID(gomock.Any(), "svc-x").Return(entities.Service{}, nil)
	if _, err := uc.GetService(context.Background(), "svc-x"); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.GetService(context.Background(), ""); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}
