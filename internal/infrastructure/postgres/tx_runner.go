package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tetoy/tetoy-api/internal/application/storage"
	"github.com/tetoy/tetoy-api/internal/application/usecase"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

var _ storage.TxRunner = (*TxRunner)(nil)
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del agregado Storage
// atados a la tx y hace Commit o Rollback. Toda mutación del agregado pasa por
// acá para que la fila de bitácora comitee junto con el cambio.
func (r *TxRunner) Run(ctx context.Context, fn func(
	storageRepo repository.StorageRepository,
	blockRepo repository.BlockRepository,
	boxRepo repository.BoxRepository,
	logRepo repository.ActivityLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	storageRepo := NewStorageRepository(tx)
	blockRepo := NewBlockRepository(tx)
	boxRepo := NewBoxRepository(tx)
	logRepo := NewActivityLogRepository(tx)

	if err := fn(storageRepo, blockRepo, boxRepo, logRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCatalog inicia una transacción con el repo de categorías (para la
// reconciliación de sub-categorías, que debe comitear como una unidad).
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCategoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
