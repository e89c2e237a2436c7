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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, name, created_by_id, updated_by_id, created_at, updated_at, deleted_at`

// Create persiste una categoría nueva.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, created_by_id, updated_by_id, created_at)
		VALUES ($1, $2, $3, '', $4)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.CreatedByID, category.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// CreateSubCategories inserta las sub-categorías en un solo round-trip.
func (r *CategoryRepo) CreateSubCategories(subs []*entity.SubCategory) error {
	if len(subs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, s := range subs {
		batch.Queue(
			`INSERT INTO sub_categories (id, category_id, name, created_at) VALUES ($1, $2, $3, $4)`,
			s.ID, s.CategoryID, s.Name, s.CreatedAt,
		)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range subs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert sub category: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una categoría activa por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName busca por nombre (case-insensitive) entre no eliminadas,
// excluyendo opcionalmente un ID (para update).
func (r *CategoryRepo) GetByName(name, excludeID string) (*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + ` FROM categories
		WHERE lower(name) = lower($1) AND deleted_at IS NULL AND ($2 = '' OR id <> $2)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, excludeID))
}

// List lista categorías activas por prefijo de nombre.
func (r *CategoryRepo) List(namePrefix string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + ` FROM categories
		WHERE deleted_at IS NULL AND name ILIKE $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, namePrefix, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedByID, &c.UpdatedByID, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Count cuenta categorías activas por prefijo de nombre.
func (r *CategoryRepo) Count(namePrefix string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM categories WHERE deleted_at IS NULL AND name ILIKE $1 || '%'`,
		namePrefix,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// SubCategoriesByCategory lista las sub-categorías activas de la categoría.
func (r *CategoryRepo) SubCategoriesByCategory(categoryID string) ([]*entity.SubCategory, error) {
	query := `
		SELECT id, category_id, name, created_at, updated_at, deleted_at
		FROM sub_categories WHERE category_id = $1 AND deleted_at IS NULL
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list sub categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.SubCategory
	for rows.Next() {
		var s entity.SubCategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan sub category: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetSubCategory busca la sub-categoría dentro de la categoría indicada, excluyendo eliminadas.
func (r *CategoryRepo) GetSubCategory(categoryID, subCategoryID string) (*entity.SubCategory, error) {
	query := `
		SELECT id, category_id, name, created_at, updated_at, deleted_at
		FROM sub_categories WHERE category_id = $1 AND id = $2 AND deleted_at IS NULL`
	var s entity.SubCategory
	err := r.q.QueryRow(context.Background(), query, categoryID, subCategoryID).Scan(
		&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sub category: %w", err)
	}
	return &s, nil
}

// Update renombra la categoría y registra quién la actualizó.
func (r *CategoryRepo) Update(category *entity.Category) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET name = $2, updated_by_id = $3, updated_at = $4 WHERE id = $1 AND deleted_at IS NULL`,
		category.ID, category.Name, category.UpdatedByID, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// RenameSubCategory renombra una sub-categoría dentro de su categoría.
func (r *CategoryRepo) RenameSubCategory(sub *entity.SubCategory) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sub_categories SET name = $3, updated_at = $4 WHERE id = $1 AND category_id = $2 AND deleted_at IS NULL`,
		sub.ID, sub.CategoryID, sub.Name, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("rename sub category: %w", err)
	}
	return nil
}

// SoftDeleteSubCategories marca eliminadas las sub-categorías dadas.
func (r *CategoryRepo) SoftDeleteSubCategories(ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE sub_categories SET deleted_at = $2, updated_at = $2 WHERE id = ANY($1) AND deleted_at IS NULL`,
		ids, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete sub categories: %w", err)
	}
	return nil
}

// SoftDelete marca la categoría eliminada y registra quién lo hizo.
func (r *CategoryRepo) SoftDelete(id, byUserID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET deleted_at = $3, updated_at = $3, updated_by_id = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, byUserID, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedByID, &c.UpdatedByID, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
