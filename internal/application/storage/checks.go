package storage

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tetoy/tetoy-api/internal/domain"
	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// Refs referencias cruzadas a verificar antes de una mutación. Los campos vacíos
// no se chequean (cada operación arma solo las que toca).
type Refs struct {
	StorageID  string
	BlockID    string // requiere StorageID: el bloque debe pertenecer a ese storage
	ProductID  string
	UserID     string
	CountryIDs []string
}

// ResolvedRefs entidades resueltas por el chequeo, para que la operación no vuelva
// a leerlas (los mensajes de bitácora necesitan nombres de bloque y producto).
type ResolvedRefs struct {
	Storage *entity.Storage
	Block   *entity.Block
	Product *entity.Product
	User    *entity.User
}

// RefChecker valida existencia de referencias cruzadas contra los repositorios de
// solo lectura (pool, fuera de la transacción). Separa "referencia no encontrada"
// (determinista, por entidad) de fallas de infraestructura (fatales).
type RefChecker struct {
	storageRepo repository.StorageRepository
	blockRepo   repository.BlockRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	countryRepo repository.CountryRepository
}

// NewRefChecker construye el validador de consistencia.
func NewRefChecker(
	storageRepo repository.StorageRepository,
	blockRepo repository.BlockRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	countryRepo repository.CountryRepository,
) *RefChecker {
	return &RefChecker{
		storageRepo: storageRepo,
		blockRepo:   blockRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		countryRepo: countryRepo,
	}
}

// Check lanza las verificaciones en paralelo, espera todas y evalúa el resultado
// en orden fijo storage → bloque → producto → usuario → países, de modo que el
// error reportado sea determinista aunque las lecturas terminen en otro orden.
// Un error de repositorio corta con falla de infraestructura, no con not-found.
func (c *RefChecker) Check(ctx context.Context, refs Refs) (*ResolvedRefs, error) {
	resolved := &ResolvedRefs{}
	var countriesFound, countriesWanted int

	g, _ := errgroup.WithContext(ctx)

	if refs.StorageID != "" {
		g.Go(func() error {
			s, err := c.storageRepo.GetByID(refs.StorageID)
			if err != nil {
				return fmt.Errorf("check storage: %w", err)
			}
			resolved.Storage = s
			return nil
		})
	}
	if refs.BlockID != "" {
		g.Go(func() error {
			b, err := c.blockRepo.GetByID(refs.StorageID, refs.BlockID)
			if err != nil {
				return fmt.Errorf("check block: %w", err)
			}
			resolved.Block = b
			return nil
		})
	}
	if refs.ProductID != "" {
		g.Go(func() error {
			p, err := c.productRepo.GetByID(refs.ProductID)
			if err != nil {
				return fmt.Errorf("check product: %w", err)
			}
			resolved.Product = p
			return nil
		})
	}
	if refs.UserID != "" {
		g.Go(func() error {
			u, err := c.userRepo.GetByID(refs.UserID)
			if err != nil {
				return fmt.Errorf("check user: %w", err)
			}
			resolved.User = u
			return nil
		})
	}
	if len(refs.CountryIDs) > 0 {
		distinct := dedupe(refs.CountryIDs)
		countriesWanted = len(distinct)
		g.Go(func() error {
			n, err := c.countryRepo.CountByIDs(distinct)
			if err != nil {
				return fmt.Errorf("check countries: %w", err)
			}
			countriesFound = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if refs.StorageID != "" && resolved.Storage == nil {
		return nil, domain.ErrStorageNotFound
	}
	if refs.BlockID != "" && resolved.Block == nil {
		return nil, domain.ErrBlockNotFound
	}
	if refs.ProductID != "" && resolved.Product == nil {
		return nil, domain.ErrProductNotFound
	}
	if refs.UserID != "" && resolved.User == nil {
		return nil, domain.ErrUserNotFound
	}
	if countriesWanted > 0 && countriesFound != countriesWanted {
		return nil, domain.ErrCountryNotFound
	}
	return resolved, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
