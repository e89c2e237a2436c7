package postgres

import (
	"context"
	"fmt"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

var _ repository.CountryRepository = (*CountryRepo)(nil)

// CountryRepo implementación del puerto CountryRepository sobre PostgreSQL.
// La tabla es de solo lectura para la app (datos semilla).
type CountryRepo struct {
	q Querier
}

// NewCountryRepository construye el adaptador de lectura para países.
func NewCountryRepository(q Querier) *CountryRepo {
	return &CountryRepo{q: q}
}

// List devuelve todos los países ordenados por nombre.
func (r *CountryRepo) List() ([]*entity.Country, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, created_at FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var list []*entity.Country
	for rows.Next() {
		var c entity.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountByIDs cuenta cuántos IDs distintos de la lista existen realmente.
func (r *CountryRepo) CountByIDs(ids []string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(DISTINCT id) FROM countries WHERE id = ANY($1)`, ids,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count countries: %w", err)
	}
	return n, nil
}
