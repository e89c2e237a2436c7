package repository

import "github.com/tetoy/tetoy-api/internal/domain/entity"

// CountryRepository define el puerto de lectura para Country (datos semilla).
type CountryRepository interface {
	List() ([]*entity.Country, error)
	// CountByIDs cuenta cuántos IDs distintos de la lista existen realmente.
	// Comparar contra el tamaño de-duplicado del input detecta IDs fabricados.
	CountByIDs(ids []string) (int, error)
}
