package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tetoy/tetoy-api/internal/domain"
	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

var _ repository.StorageRepository = (*StorageRepo)(nil)

// StorageRepo implementación del puerto StorageRepository sobre PostgreSQL (usable con pool o tx).
type StorageRepo struct {
	q Querier
}

// NewStorageRepository construye el adaptador de persistencia para storages. Pasar pool o tx (Querier).
func NewStorageRepository(q Querier) *StorageRepo {
	return &StorageRepo{q: q}
}

const storageColumns = `id, name, dimension, capacity, product_id, supervisor_id, created_by_id, updated_by_id, created_at, updated_at, deleted_at`

// Create persiste un nuevo storage. El índice único parcial sobre name (filas no
// eliminadas) convierte la carrera de nombres duplicados en ErrDuplicateName.
func (r *StorageRepo) Create(storage *entity.Storage) error {
	query := `
		INSERT INTO storages (id, name, dimension, capacity, product_id, supervisor_id, created_by_id, updated_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '', $8)`
	_, err := r.q.Exec(context.Background(), query,
		storage.ID, storage.Name, storage.Dimension, storage.Capacity,
		storage.ProductID, storage.SupervisorID, storage.CreatedByID, storage.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert storage: %w", err)
	}
	return nil
}

// GetByID obtiene un storage activo por ID.
func (r *StorageRepo) GetByID(id string) (*entity.Storage, error) {
	query := `SELECT ` + storageColumns + ` FROM storages WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName busca por nombre exacto entre storages no eliminados.
func (r *StorageRepo) GetByName(name string) (*entity.Storage, error) {
	query := `SELECT ` + storageColumns + ` FROM storages WHERE name = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name))
}

// ExistsByProduct indica si algún storage activo referencia el producto.
func (r *StorageRepo) ExistsByProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM storages WHERE product_id = $1 AND deleted_at IS NULL)`,
		productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists storage by product: %w", err)
	}
	return exists, nil
}

// List lista storages activos por prefijo de nombre, con producto y supervisor resueltos.
func (r *StorageRepo) List(namePrefix string, limit, offset int) ([]*entity.StorageSummary, error) {
	query := `
		SELECT s.id, s.name, s.dimension, s.capacity, s.product_id, s.supervisor_id,
		       s.created_by_id, s.updated_by_id, s.created_at, s.updated_at, s.deleted_at,
		       p.name, u.display_name
		FROM storages s
		JOIN products p ON p.id = s.product_id
		LEFT JOIN users u ON u.id = s.supervisor_id
		WHERE s.deleted_at IS NULL AND s.name ILIKE $1 || '%'
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, namePrefix, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storages: %w", err)
	}
	defer rows.Close()

	var list []*entity.StorageSummary
	for rows.Next() {
		var s entity.StorageSummary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Dimension, &s.Capacity, &s.ProductID, &s.SupervisorID,
			&s.CreatedByID, &s.UpdatedByID, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
			&s.ProductName, &s.SupervisorName,
		); err != nil {
			return nil, fmt.Errorf("scan storage summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count cuenta storages activos por prefijo de nombre.
func (r *StorageRepo) Count(namePrefix string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM storages WHERE deleted_at IS NULL AND name ILIKE $1 || '%'`,
		namePrefix,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count storages: %w", err)
	}
	return n, nil
}

// SoftDelete marca el storage eliminado y registra quién lo hizo.
func (r *StorageRepo) SoftDelete(id, byUserID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE storages SET deleted_at = $3, updated_at = $3, updated_by_id = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, byUserID, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete storage: %w", err)
	}
	return nil
}

func (r *StorageRepo) scanOne(row pgx.Row) (*entity.Storage, error) {
	var s entity.Storage
	err := row.Scan(
		&s.ID, &s.Name, &s.Dimension, &s.Capacity, &s.ProductID, &s.SupervisorID,
		&s.CreatedByID, &s.UpdatedByID, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage: %w", err)
	}
	return &s, nil
}
