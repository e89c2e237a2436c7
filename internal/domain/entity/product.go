package entity

import "time"

// Product representa un producto del catálogo, clasificado por categoría y sub-categoría.
type Product struct {
	ID            string
	Name          string
	CategoryID    string
	SubCategoryID string
	CreatedByID   string
	UpdatedByID   string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
}
