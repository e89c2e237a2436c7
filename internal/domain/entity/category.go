package entity

import "time"

// Category agrupa productos; tiene sub-categorías propias (nombre único dentro de la categoría).
type Category struct {
	ID          string
	Name        string
	CreatedByID string
	UpdatedByID string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// SubCategory pertenece a una Category. Se reconcilia contra la lista enviada en update:
// sin ID → insertar, con ID presente → renombrar, ausente en el envío → soft-delete.
type SubCategory struct {
	ID         string
	CategoryID string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
}
