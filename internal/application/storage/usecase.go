package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	"github.com/tetoy/tetoy-api/internal/domain"
	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
	domstorage "github.com/tetoy/tetoy-api/internal/domain/storage"
)

// UseCase agregado Storage: creación (con materialización síncrona de la grilla),
// consultas y soft-delete en cascada storage → bloques → cajas. Toda mutación
// corre en una transacción que incluye su fila de bitácora.
type UseCase struct {
	txRunner    TxRunner
	storageRepo repository.StorageRepository
	blockRepo   repository.BlockRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logRepo     repository.ActivityLogRepository
}

// NewUseCase construye el caso de uso del agregado Storage.
func NewUseCase(
	txRunner TxRunner,
	storageRepo repository.StorageRepository,
	blockRepo repository.BlockRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logRepo repository.ActivityLogRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		storageRepo: storageRepo,
		blockRepo:   blockRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logRepo:     logRepo,
	}
}

// Create valida referencias y unicidad de nombre, inserta el storage, expande la
// dimensión en bloques y los materializa, y registra la entrada CREATE — todo en
// una transacción. El índice único parcial en DB es la guarda autoritativa contra
// nombres duplicados concurrentes; el pre-chequeo solo da un error más amable.
func (uc *UseCase) Create(ctx context.Context, authUserID string, in dto.CreateStorageRequest) (*dto.StorageResponse, error) {
	var (
		product    *entity.Product
		supervisor *entity.User
		sameName   *entity.Storage
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return fmt.Errorf("check product: %w", err)
		}
		product = p
		return nil
	})
	g.Go(func() error {
		u, err := uc.userRepo.GetByID(in.SupervisorID)
		if err != nil {
			return fmt.Errorf("check supervisor: %w", err)
		}
		supervisor = u
		return nil
	})
	g.Go(func() error {
		s, err := uc.storageRepo.GetByName(in.Name)
		if err != nil {
			return fmt.Errorf("check name: %w", err)
		}
		sameName = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if supervisor == nil {
		return nil, domain.ErrUserNotFound
	}
	if sameName != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now()
	storage := &entity.Storage{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Dimension:    in.Dimension,
		Capacity:     in.Capacity,
		ProductID:    in.ProductID,
		SupervisorID: in.SupervisorID,
		CreatedByID:  authUserID,
		CreatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		storageRepo repository.StorageRepository,
		blockRepo repository.BlockRepository,
		_ repository.BoxRepository,
		logRepo repository.ActivityLogRepository,
	) error {
		if err := storageRepo.Create(storage); err != nil {
			return err
		}

		cells := domstorage.CellsFromDimension(storage.Dimension)
		blocks := make([]*entity.Block, 0, len(cells))
		for _, cell := range cells {
			blocks = append(blocks, &entity.Block{
				ID:        uuid.New().String(),
				StorageID: storage.ID,
				Name:      cell.Name,
				Row:       cell.Row,
				Column:    cell.Column,
				CreatedAt: now,
			})
		}
		if err := blockRepo.CreateMany(blocks); err != nil {
			return err
		}

		return logRepo.Append(&entity.ActivityLog{
			ID:        uuid.New().String(),
			StorageID: storage.ID,
			UserID:    authUserID,
			Action:    entity.ActionCreate,
			Message:   createStorageMessage(storage.Name, storage.Dimension, storage.Capacity),
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return toStorageResponse(storage), nil
}

// GetByID devuelve el storage con su grilla completa.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.StorageDetailResponse, error) {
	storage, err := uc.storageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrStorageNotFound
	}
	blocks, err := uc.blockRepo.ListByStorage(id)
	if err != nil {
		return nil, err
	}

	out := &dto.StorageDetailResponse{
		StorageResponse: *toStorageResponse(storage),
		Blocks:          make([]dto.BlockResponse, 0, len(blocks)),
	}
	for _, b := range blocks {
		out.Blocks = append(out.Blocks, dto.BlockResponse{
			ID:     b.ID,
			Name:   b.Name,
			Row:    b.Row,
			Column: b.Column,
		})
	}
	return out, nil
}

// List devuelve storages activos filtrados por prefijo de nombre, con producto y
// supervisor resueltos. Listado y conteo se consultan en paralelo.
func (uc *UseCase) List(ctx context.Context, namePrefix string, page dto.PageRequest) (*dto.StorageListResponse, error) {
	page.DefaultPage()

	var (
		summaries []*entity.StorageSummary
		total     int
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.storageRepo.List(namePrefix, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		summaries = s
		return nil
	})
	g.Go(func() error {
		n, err := uc.storageRepo.Count(namePrefix)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.StorageListResponse{
		Items: make([]dto.StorageSummaryResponse, 0, len(summaries)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, s := range summaries {
		out.Items = append(out.Items, dto.StorageSummaryResponse{
			ID:        s.ID,
			Name:      s.Name,
			Dimension: s.Dimension,
			Capacity:  s.Capacity,
			CreatedAt: s.CreatedAt,
			Product:   dto.NamedRef{ID: s.ProductID, Name: s.ProductName},
			Supervisor: dto.UserRef{
				ID:          s.SupervisorID,
				DisplayName: s.SupervisorName,
			},
		})
	}
	return out, nil
}

// Delete soft-deletea el storage y, en cascada y en la misma transacción, todos
// sus bloques y las cajas de esos bloques, y registra una única entrada DELETE.
// La cascada es explícita (recolectar IDs de bloques, luego bulk-update) para que
// el acople con la bitácora quede visible y testeable.
func (uc *UseCase) Delete(ctx context.Context, authUserID, storageID string) error {
	storage, err := uc.storageRepo.GetByID(storageID)
	if err != nil {
		return err
	}
	if storage == nil {
		return domain.ErrStorageNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		storageRepo repository.StorageRepository,
		blockRepo repository.BlockRepository,
		boxRepo repository.BoxRepository,
		logRepo repository.ActivityLogRepository,
	) error {
		blockIDs, err := blockRepo.IDsByStorage(storageID)
		if err != nil {
			return err
		}
		if err := storageRepo.SoftDelete(storageID, authUserID, now); err != nil {
			return err
		}
		if err := blockRepo.SoftDeleteByStorage(storageID, now); err != nil {
			return err
		}
		// Sin bloques no hay cajas que marcar; evita un IN () vacío.
		if len(blockIDs) > 0 {
			if err := boxRepo.SoftDeleteByBlocks(blockIDs, now); err != nil {
				return err
			}
		}
		return logRepo.Append(&entity.ActivityLog{
			ID:        uuid.New().String(),
			StorageID: storageID,
			UserID:    authUserID,
			Action:    entity.ActionDelete,
			Message:   deleteStorageMessage(storage.Name),
			Timestamp: now,
		})
	})
}

// Logs devuelve una página del feed de actividad (solo lectura, fuera de
// transacción). El cursor es el timestamp de la última entrada devuelta.
func (uc *UseCase) Logs(ctx context.Context, storageID string, before time.Time) (*dto.StorageLogsResponse, error) {
	storage, err := uc.storageRepo.GetByID(storageID)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrStorageNotFound
	}

	const pageSize = 20
	entries, err := uc.logRepo.ListByStorage(storageID, before, pageSize)
	if err != nil {
		return nil, err
	}

	out := &dto.StorageLogsResponse{Logs: make([]dto.ActivityLogResponse, 0, len(entries))}
	for _, e := range entries {
		out.Logs = append(out.Logs, dto.ActivityLogResponse{
			ID:        e.ID,
			Action:    e.Action,
			Message:   e.Message,
			Timestamp: e.Timestamp,
			User: dto.UserRef{
				ID:          e.UserID,
				DisplayName: e.UserDisplayName,
				AvatarURL:   e.UserAvatarURL,
			},
		})
	}
	if len(entries) > 0 {
		ms := entries[len(entries)-1].Timestamp.UnixMilli()
		out.Cursor = &ms
	}
	return out, nil
}

func toStorageResponse(s *entity.Storage) *dto.StorageResponse {
	return &dto.StorageResponse{
		ID:           s.ID,
		Name:         s.Name,
		Dimension:    s.Dimension,
		Capacity:     s.Capacity,
		ProductID:    s.ProductID,
		SupervisorID: s.SupervisorID,
		CreatedByID:  s.CreatedByID,
		CreatedAt:    s.CreatedAt,
	}
}
