package usecase

import (
	"errors"
	"fmt"

	"mecanica_xpto_os/internal/domain/entities"
)

var (
	ErrOrderNotFound      = fmt.Errorf("order %w", entities.ErrNotFound)
	ErrStockItemNotFound  = fmt.Errorf("stock item %w", entities.ErrNotFound)
	ErrServiceNotFound    = fmt.Errorf("service %w", entities.ErrNotFound)
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidStockItemID = errors.New("invalid stock item id")
	ErrConcurrentUpdate   = fmt.Errorf("%w: order changed concurrently", entities.ErrInvalidState)
)

func persistenceFailure(err error) error {
	if err == nil || errors.Is(err, entities.ErrPersistenceFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", entities.ErrPersistenceFailure, err)
}
