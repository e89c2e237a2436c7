package storage

import (
	"context"

	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad: mutación de entidades, cascadas y fila de
// bitácora comitean juntas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		storageRepo repository.StorageRepository,
		blockRepo repository.BlockRepository,
		boxRepo repository.BoxRepository,
		logRepo repository.ActivityLogRepository,
	) error) error
}
