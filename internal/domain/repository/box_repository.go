package repository

import (
	"time"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
)

// BoxRepository define el puerto de persistencia para Box y su join con países (DIP).
type BoxRepository interface {
	Create(box *entity.Box) error
	// AddCountries inserta una fila de join por país para la caja.
	AddCountries(boxID string, countryIDs []string) error
	// GetByID busca la caja dentro del bloque indicado, excluyendo eliminadas.
	GetByID(blockID, boxID string) (*entity.Box, error)
	// ListByBlock lista cajas no retiradas del bloque, filtrando por prefijo de
	// nombre de producto, con países y referencias resueltas.
	ListByBlock(blockID, productPrefix string, limit, offset int) ([]*entity.BoxDetails, error)
	CountByBlock(blockID, productPrefix string) (int, error)
	// Checkout aplica el incremento acotado de forma atómica: suma quantity a
	// checked_out_boxes solo si no excede total_boxes y la caja sigue abierta,
	// sellando checked_out_at cuando el nuevo total iguala al total.
	// Devuelve la caja actualizada, o nil si ninguna fila calificó.
	Checkout(boxID string, quantity int, at time.Time) (*entity.Box, error)
	SoftDelete(boxID string, at time.Time) error
	// SoftDeleteByBlocks marca eliminadas todas las cajas de los bloques dados.
	SoftDeleteByBlocks(blockIDs []string, at time.Time) error
}
