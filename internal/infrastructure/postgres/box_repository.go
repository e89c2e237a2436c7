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

var _ repository.BoxRepository = (*BoxRepo)(nil)

// BoxRepo implementación del puerto BoxRepository sobre PostgreSQL (usable con pool o tx).
type BoxRepo struct {
	q Querier
}

// NewBoxRepository construye el adaptador de persistencia para cajas. Pasar pool o tx (Querier).
func NewBoxRepository(q Querier) *BoxRepo {
	return &BoxRepo{q: q}
}

const boxColumns = `id, block_id, product_id, user_id, grade, sub_grade, weight, price, total_boxes, checked_out_boxes, checked_out_at, created_at, updated_at, deleted_at`

// Create persiste una caja nueva en estado OPEN (cero retiradas).
func (r *BoxRepo) Create(box *entity.Box) error {
	query := `
		INSERT INTO boxes (id, block_id, product_id, user_id, grade, sub_grade, weight, price, total_boxes, checked_out_boxes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10)`
	_, err := r.q.Exec(context.Background(), query,
		box.ID, box.BlockID, box.ProductID, box.UserID, box.Grade, box.SubGrade,
		box.Weight, box.Price, box.TotalBoxes, box.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert box: %w", err)
	}
	return nil
}

// AddCountries inserta una fila de join por país en un solo round-trip.
func (r *BoxRepo) AddCountries(boxID string, countryIDs []string) error {
	if len(countryIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, countryID := range countryIDs {
		batch.Queue(`INSERT INTO box_countries (box_id, country_id) VALUES ($1, $2)`, boxID, countryID)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range countryIDs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert box country: %w", err)
		}
	}
	return nil
}

// GetByID busca la caja dentro del bloque indicado, excluyendo eliminadas.
func (r *BoxRepo) GetByID(blockID, boxID string) (*entity.Box, error) {
	query := `SELECT ` + boxColumns + ` FROM boxes WHERE block_id = $1 AND id = $2 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, blockID, boxID))
}

// ListByBlock lista cajas activas y aún no selladas del bloque, filtradas por
// prefijo de nombre de producto, con referencias y países resueltos.
func (r *BoxRepo) ListByBlock(blockID, productPrefix string, limit, offset int) ([]*entity.BoxDetails, error) {
	query := `
		SELECT b.id, b.block_id, b.product_id, b.user_id, b.grade, b.sub_grade,
		       b.weight, b.price, b.total_boxes, b.checked_out_boxes, b.checked_out_at,
		       b.created_at, b.updated_at, b.deleted_at,
		       bl.name, p.name, u.display_name
		FROM boxes b
		JOIN blocks bl ON bl.id = b.block_id
		JOIN products p ON p.id = b.product_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.block_id = $1 AND b.deleted_at IS NULL AND b.checked_out_at IS NULL
		  AND p.name ILIKE $2 || '%'
		ORDER BY b.created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, blockID, productPrefix, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list boxes: %w", err)
	}
	defer rows.Close()

	var list []*entity.BoxDetails
	var ids []string
	for rows.Next() {
		var b entity.BoxDetails
		if err := rows.Scan(
			&b.ID, &b.BlockID, &b.ProductID, &b.UserID, &b.Grade, &b.SubGrade,
			&b.Weight, &b.Price, &b.TotalBoxes, &b.CheckedOutBoxes, &b.CheckedOutAt,
			&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
			&b.BlockName, &b.ProductName, &b.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan box: %w", err)
		}
		list = append(list, &b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	countries, err := r.countriesByBox(ids)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		b.Countries = countries[b.ID]
	}
	return list, nil
}

// CountByBlock cuenta las cajas que ListByBlock devolvería sin paginar.
func (r *BoxRepo) CountByBlock(blockID, productPrefix string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM boxes b
		JOIN products p ON p.id = b.product_id
		WHERE b.block_id = $1 AND b.deleted_at IS NULL AND b.checked_out_at IS NULL
		  AND p.name ILIKE $2 || '%'`
	var n int
	if err := r.q.QueryRow(context.Background(), query, blockID, productPrefix).Scan(&n); err != nil {
		return 0, fmt.Errorf("count boxes: %w", err)
	}
	return n, nil
}

// Checkout aplica el incremento acotado en una sola UPDATE: suma quantity solo si
// no excede total_boxes y la caja sigue abierta, y sella checked_out_at cuando el
// nuevo acumulado iguala al total. El invariante checked_out <= total lo garantiza
// el WHERE, no el nivel de aislamiento. Devuelve nil si ninguna fila calificó.
func (r *BoxRepo) Checkout(boxID string, quantity int, at time.Time) (*entity.Box, error) {
	query := `
		UPDATE boxes
		SET checked_out_boxes = checked_out_boxes + $2,
		    checked_out_at = CASE WHEN checked_out_boxes + $2 = total_boxes THEN $3 ELSE NULL END,
		    updated_at = $3
		WHERE id = $1
		  AND deleted_at IS NULL
		  AND checked_out_at IS NULL
		  AND checked_out_boxes + $2 <= total_boxes
		RETURNING ` + boxColumns
	box, err := r.scanOne(r.q.QueryRow(context.Background(), query, boxID, quantity, at))
	if err != nil {
		return nil, fmt.Errorf("checkout box: %w", err)
	}
	return box, nil
}

// SoftDelete marca la caja eliminada.
func (r *BoxRepo) SoftDelete(boxID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE boxes SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		boxID, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete box: %w", err)
	}
	return nil
}

// SoftDeleteByBlocks marca eliminadas todas las cajas activas de los bloques dados.
func (r *BoxRepo) SoftDeleteByBlocks(blockIDs []string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE boxes SET deleted_at = $2, updated_at = $2 WHERE block_id = ANY($1) AND deleted_at IS NULL`,
		blockIDs, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete boxes: %w", err)
	}
	return nil
}

// countriesByBox resuelve los países de cada caja en una sola consulta.
func (r *BoxRepo) countriesByBox(boxIDs []string) (map[string][]entity.Country, error) {
	query := `
		SELECT bc.box_id, c.id, c.name, c.created_at
		FROM box_countries bc
		JOIN countries c ON c.id = bc.country_id
		WHERE bc.box_id = ANY($1)
		ORDER BY c.name`
	rows, err := r.q.Query(context.Background(), query, boxIDs)
	if err != nil {
		return nil, fmt.Errorf("list box countries: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.Country)
	for rows.Next() {
		var boxID string
		var c entity.Country
		if err := rows.Scan(&boxID, &c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan box country: %w", err)
		}
		out[boxID] = append(out[boxID], c)
	}
	return out, rows.Err()
}

func (r *BoxRepo) scanOne(row pgx.Row) (*entity.Box, error) {
	var b entity.Box
	err := row.Scan(
		&b.ID, &b.BlockID, &b.ProductID, &b.UserID, &b.Grade, &b.SubGrade,
		&b.Weight, &b.Price, &b.TotalBoxes, &b.CheckedOutBoxes, &b.CheckedOutAt,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
