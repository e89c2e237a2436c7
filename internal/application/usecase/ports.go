package usecase

import (
	"context"

	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta una función dentro de una transacción con el repositorio
// de categorías atado a esa tx. Usado por la reconciliación de sub-categorías,
// donde renombres, altas y soft-deletes deben comitear juntos.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(categoryRepo repository.CategoryRepository) error) error
}
