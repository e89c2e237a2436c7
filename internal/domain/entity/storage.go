package entity

import "time"

// Dimensiones válidas para un Storage (grilla N×N, N ∈ 1..7).
const (
	Dimension1x1 = "1x1"
	Dimension2x2 = "2x2"
	Dimension3x3 = "3x3"
	Dimension4x4 = "4x4"
	Dimension5x5 = "5x5"
	Dimension6x6 = "6x6"
	Dimension7x7 = "7x7"
)

// Storage representa una unidad de almacenamiento organizada como grilla N×N de bloques.
// El nombre es único entre storages no eliminados (índice parcial en DB).
type Storage struct {
	ID           string
	Name         string
	Dimension    string
	Capacity     string
	ProductID    string
	SupervisorID string
	CreatedByID  string
	UpdatedByID  string // vacío si nunca se actualizó
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

// StorageSummary proyección para listados: storage + nombres de las referencias.
// SupervisorName puede ser NULL en DB (display_name opcional), por eso puntero.
type StorageSummary struct {
	Storage
	ProductName    string
	SupervisorName *string
}
