package storage

import "fmt"

// letras disponibles para filas; la grilla máxima es 7x7 pero se deja margen.
const rowLetters = "ABCDEFGHIJKLMNOP"

// dimensionSizes mapea cada token de dimensión válido a su tamaño de grilla.
var dimensionSizes = map[string]int{
	"1x1": 1,
	"2x2": 2,
	"3x3": 3,
	"4x4": 4,
	"5x5": 5,
	"6x6": 6,
	"7x7": 7,
}

// Cell es una celda de la grilla: nombre derivado (letra de fila + columna 1-based)
// y coordenadas. Fila 2, columna 3 → "B3".
type Cell struct {
	Name   string
	Row    int
	Column int
}

// IsValidDimension indica si el token pertenece al conjunto permitido (1x1..7x7).
func IsValidDimension(dimension string) bool {
	_, ok := dimensionSizes[dimension]
	return ok
}

// CellsFromDimension expande un token de dimensión N×N en sus N² celdas, en orden
// fila por fila. Es pura y determinista: la misma dimensión produce siempre la
// misma lista. Asume un token válido; la validación ocurre aguas arriba.
func CellsFromDimension(dimension string) []Cell {
	n := dimensionSizes[dimension]
	cells := make([]Cell, 0, n*n)
	for row := 1; row <= n; row++ {
		letter := rowLetters[row-1]
		for col := 1; col <= n; col++ {
			cells = append(cells, Cell{
				Name:   fmt.Sprintf("%c%d", letter, col),
				Row:    row,
				Column: col,
			})
		}
	}
	return cells
}
