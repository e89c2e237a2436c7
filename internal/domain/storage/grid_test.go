package storage

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Toda dimensión N×N debe producir exactamente N² celdas con coordenadas únicas
// y nombres con el formato letra+columna.
func TestCellsFromDimension_TodasLasDimensiones(t *testing.T) {
	namePattern := regexp.MustCompile(`^[A-G][1-7]$`)

	for n := 1; n <= 7; n++ {
		dimension := fmt.Sprintf("%dx%d", n, n)
		t.Run(dimension, func(t *testing.T) {
			cells := CellsFromDimension(dimension)
			require.Len(t, cells, n*n, "una grilla %s debe tener %d celdas", dimension, n*n)

			seenCoords := make(map[[2]int]bool)
			seenNames := make(map[string]bool)
			for _, c := range cells {
				assert.GreaterOrEqual(t, c.Row, 1)
				assert.LessOrEqual(t, c.Row, n)
				assert.GreaterOrEqual(t, c.Column, 1)
				assert.LessOrEqual(t, c.Column, n)
				assert.Regexp(t, namePattern, c.Name)

				coord := [2]int{c.Row, c.Column}
				assert.False(t, seenCoords[coord], "coordenada repetida %v", coord)
				assert.False(t, seenNames[c.Name], "nombre repetido %s", c.Name)
				seenCoords[coord] = true
				seenNames[c.Name] = true
			}
		})
	}
}

// El nombre se deriva de la posición: fila→letra (1→A), columna 1-based.
func TestCellsFromDimension_NombresDerivados(t *testing.T) {
	cells := CellsFromDimension("2x2")
	require.Len(t, cells, 4)

	expected := []Cell{
		{Name: "A1", Row: 1, Column: 1},
		{Name: "A2", Row: 1, Column: 2},
		{Name: "B1", Row: 2, Column: 1},
		{Name: "B2", Row: 2, Column: 2},
	}
	assert.Equal(t, expected, cells, "la expansión de 2x2 debe ser A1, A2, B1, B2 en ese orden")
}

// La función es determinista: dos llamadas con la misma dimensión dan listas idénticas.
func TestCellsFromDimension_Determinista(t *testing.T) {
	assert.Equal(t, CellsFromDimension("7x7"), CellsFromDimension("7x7"))
}

func TestIsValidDimension(t *testing.T) {
	for _, d := range []string{"1x1", "2x2", "3x3", "4x4", "5x5", "6x6", "7x7"} {
		assert.True(t, IsValidDimension(d), d)
	}
	for _, d := range []string{"", "0x0", "8x8", "2x3", "2X2", " 2x2"} {
		assert.False(t, IsValidDimension(d), d)
	}
}
