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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category_id, sub_category_id, created_by_id, updated_by_id, created_at, updated_at, deleted_at`

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category_id, sub_category_id, created_by_id, updated_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, '', $6)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, product.SubCategoryID,
		product.CreatedByID, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto activo por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName busca por nombre (case-insensitive) entre no eliminados,
// excluyendo opcionalmente un ID (para update).
func (r *ProductRepo) GetByName(name, excludeID string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE lower(name) = lower($1) AND deleted_at IS NULL AND ($2 = '' OR id <> $2)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, excludeID))
}

// List lista productos activos por prefijo de nombre.
func (r *ProductRepo) List(namePrefix string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE deleted_at IS NULL AND name ILIKE $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, namePrefix, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.SubCategoryID, &p.CreatedByID, &p.UpdatedByID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta productos activos por prefijo de nombre.
func (r *ProductRepo) Count(namePrefix string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE deleted_at IS NULL AND name ILIKE $1 || '%'`,
		namePrefix,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Update actualiza nombre y clasificación, y registra quién lo hizo.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, sub_category_id = $4, updated_by_id = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, product.SubCategoryID,
		product.UpdatedByID, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SoftDelete marca el producto eliminado y registra quién lo hizo.
func (r *ProductRepo) SoftDelete(id, byUserID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET deleted_at = $3, updated_at = $3, updated_by_id = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, byUserID, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.SubCategoryID, &p.CreatedByID, &p.UpdatedByID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
