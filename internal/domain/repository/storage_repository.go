package repository

import (
	"time"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
)

// StorageRepository define el puerto de persistencia para Storage (DIP).
// Todas las lecturas excluyen filas soft-deleted.
type StorageRepository interface {
	Create(storage *entity.Storage) error
	GetByID(id string) (*entity.Storage, error)
	// GetByName busca por nombre exacto entre los no eliminados (pre-chequeo de unicidad).
	GetByName(name string) (*entity.Storage, error)
	// ExistsByProduct indica si algún storage activo referencia el producto.
	ExistsByProduct(productID string) (bool, error)
	List(namePrefix string, limit, offset int) ([]*entity.StorageSummary, error)
	Count(namePrefix string) (int, error)
	SoftDelete(id, byUserID string, at time.Time) error
}
