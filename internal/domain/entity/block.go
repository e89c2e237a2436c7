package entity

import "time"

// Block representa una celda de la grilla de un Storage, direccionada por (fila, columna).
// El nombre se deriva de la posición: fila 1 → "A", fila 2 → "B"; columna 1-based ("B3").
// (row, column) es único dentro de un storage.
type Block struct {
	ID        string
	StorageID string
	Name      string
	Row       int
	Column    int
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
