package repository

import (
	"time"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
)

// BlockRepository define el puerto de persistencia para Block (DIP).
type BlockRepository interface {
	// CreateMany inserta todos los bloques de una grilla recién generada.
	CreateMany(blocks []*entity.Block) error
	// GetByID busca el bloque dentro del storage indicado, excluyendo eliminados.
	GetByID(storageID, blockID string) (*entity.Block, error)
	ListByStorage(storageID string) ([]*entity.Block, error)
	// IDsByStorage devuelve los IDs de todos los bloques del storage (incluidos
	// los ya eliminados: el cascade de soft-delete debe cubrir sus cajas igual).
	IDsByStorage(storageID string) ([]string, error)
	SoftDeleteByStorage(storageID string, at time.Time) error
}
