package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

var _ repository.BlockRepository = (*BlockRepo)(nil)

// BlockRepo implementación del puerto BlockRepository sobre PostgreSQL (usable con pool o tx).
type BlockRepo struct {
	q Querier
}

// NewBlockRepository construye el adaptador de persistencia para bloques. Pasar pool o tx (Querier).
func NewBlockRepository(q Querier) *BlockRepo {
	return &BlockRepo{q: q}
}

// CreateMany inserta la grilla completa en un solo round-trip vía batch pipeline.
// Hasta 49 bloques (7x7); no amerita COPY.
func (r *BlockRepo) CreateMany(blocks []*entity.Block) error {
	if len(blocks) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, b := range blocks {
		batch.Queue(
			`INSERT INTO blocks (id, storage_id, name, grid_row, grid_column, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			b.ID, b.StorageID, b.Name, b.Row, b.Column, b.CreatedAt,
		)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range blocks {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert block: %w", err)
		}
	}
	return nil
}

// GetByID busca el bloque dentro del storage indicado, excluyendo eliminados.
func (r *BlockRepo) GetByID(storageID, blockID string) (*entity.Block, error) {
	query := `
		SELECT id, storage_id, name, grid_row, grid_column, created_at, updated_at, deleted_at
		FROM blocks WHERE storage_id = $1 AND id = $2 AND deleted_at IS NULL`
	var b entity.Block
	err := r.q.QueryRow(context.Background(), query, storageID, blockID).Scan(
		&b.ID, &b.StorageID, &b.Name, &b.Row, &b.Column, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get block: %w", err)
	}
	return &b, nil
}

// ListByStorage lista los bloques activos del storage en orden de grilla.
func (r *BlockRepo) ListByStorage(storageID string) ([]*entity.Block, error) {
	query := `
		SELECT id, storage_id, name, grid_row, grid_column, created_at, updated_at, deleted_at
		FROM blocks WHERE storage_id = $1 AND deleted_at IS NULL
		ORDER BY grid_row, grid_column`
	rows, err := r.q.Query(context.Background(), query, storageID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	var list []*entity.Block
	for rows.Next() {
		var b entity.Block
		if err := rows.Scan(&b.ID, &b.StorageID, &b.Name, &b.Row, &b.Column, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// IDsByStorage devuelve los IDs de todos los bloques del storage, incluidos los
// ya eliminados: la cascada de soft-delete debe cubrir sus cajas igual.
func (r *BlockRepo) IDsByStorage(storageID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id FROM blocks WHERE storage_id = $1`, storageID)
	if err != nil {
		return nil, fmt.Errorf("list block ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan block id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SoftDeleteByStorage marca eliminados todos los bloques activos del storage.
func (r *BlockRepo) SoftDeleteByStorage(storageID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE blocks SET deleted_at = $2, updated_at = $2 WHERE storage_id = $1 AND deleted_at IS NULL`,
		storageID, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete blocks: %w", err)
	}
	return nil
}
