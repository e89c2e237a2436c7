package repository

import (
	"time"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
)

// ActivityLogRepository define el puerto para la bitácora append-only de un storage.
// Solo inserta y lee: las filas nunca se actualizan ni se borran.
type ActivityLogRepository interface {
	Append(log *entity.ActivityLog) error
	// ListByStorage devuelve entradas anteriores a `before`, ordenadas por
	// timestamp descendente con seq como desempate de inserción.
	ListByStorage(storageID string, before time.Time, limit int) ([]*entity.ActivityLogEntry, error)
}
