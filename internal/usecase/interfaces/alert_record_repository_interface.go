package interfaces

import (
	"context"

	"mecanica_xpto_os/internal/domain/entities"
)

// IAlertRecordRepository stores the once-per-day low stock markers.
// Create is the claim on a (stock item, day): it reports false without error
// when the record already exists. Delete releases a claim whose notification
// could not be sent.
type IAlertRecordRepository interface {
	Exists(ctx context.Context, stockItemID, day string) (bool, error)
	Create(ctx context.Context, rec entities.AlertRecord) (bool, error)
	Delete(ctx context.Context, stockItemID, day string) error
}
