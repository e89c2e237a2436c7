package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	"github.com/tetoy/tetoy-api/internal/domain"
	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// BoxUseCase ciclo de vida de las cajas: alta, retiro parcial/total y baja.
// Cada operación valida referencias con el RefChecker y muta dentro de una
// transacción que incluye su fila de bitácora.
type BoxUseCase struct {
	txRunner    TxRunner
	checker     *RefChecker
	boxRepo     repository.BoxRepository
	productRepo repository.ProductRepository
}

// NewBoxUseCase construye el caso de uso de cajas.
func NewBoxUseCase(
	txRunner TxRunner,
	checker *RefChecker,
	boxRepo repository.BoxRepository,
	productRepo repository.ProductRepository,
) *BoxUseCase {
	return &BoxUseCase{
		txRunner:    txRunner,
		checker:     checker,
		boxRepo:     boxRepo,
		productRepo: productRepo,
	}
}

// Create inserta un lote en estado OPEN, una fila de join por país y la entrada
// ADD_BOX. Si alguna referencia no existe, falla antes de escribir fila alguna.
func (uc *BoxUseCase) Create(ctx context.Context, authUserID, storageID, blockID string, in dto.CreateBoxRequest) (*dto.BoxResponse, error) {
	refs, err := uc.checker.Check(ctx, Refs{
		StorageID:  storageID,
		BlockID:    blockID,
		ProductID:  in.ProductID,
		UserID:     in.UserID,
		CountryIDs: in.Countries,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	box := &entity.Box{
		ID:         uuid.New().String(),
		BlockID:    blockID,
		ProductID:  in.ProductID,
		UserID:     in.UserID,
		Grade:      in.Grade,
		SubGrade:   in.SubGrade,
		Weight:     in.Weight,
		Price:      in.Price,
		TotalBoxes: in.TotalBoxes,
		CreatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.StorageRepository,
		_ repository.BlockRepository,
		boxRepo repository.BoxRepository,
		logRepo repository.ActivityLogRepository,
	) error {
		if err := boxRepo.Create(box); err != nil {
			return err
		}
		if err := boxRepo.AddCountries(box.ID, in.Countries); err != nil {
			return err
		}
		return logRepo.Append(&entity.ActivityLog{
			ID:        uuid.New().String(),
			StorageID: storageID,
			UserID:    authUserID,
			Action:    entity.ActionAddBox,
			Message:   addBoxMessage(box.TotalBoxes, refs.Product.Name, box.Price, refs.Block.Name),
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.BoxResponse{
		ID:         box.ID,
		BlockID:    box.BlockID,
		ProductID:  box.ProductID,
		UserID:     box.UserID,
		Grade:      box.Grade,
		SubGrade:   box.SubGrade,
		Weight:     box.Weight,
		Price:      box.Price,
		TotalBoxes: box.TotalBoxes,
		CreatedAt:  box.CreatedAt,
	}, nil
}

// Checkout retira `quantity` unidades del lote. Falla si el lote ya está sellado
// (CheckedOutAt) o si quantity excede el remanente; en ambos casos los contadores
// quedan intactos. El incremento es una única UPDATE acotada en el repositorio,
// así el invariante checked_out <= total no depende del nivel de aislamiento.
func (uc *BoxUseCase) Checkout(ctx context.Context, authUserID, storageID, blockID, boxID string, quantity int) (*dto.CheckoutBoxResponse, error) {
	refs, err := uc.checker.Check(ctx, Refs{StorageID: storageID, BlockID: blockID})
	if err != nil {
		return nil, err
	}

	box, err := uc.boxRepo.GetByID(blockID, boxID)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, domain.ErrBoxNotFound
	}
	if box.CheckedOutAt != nil || box.Remaining() == 0 {
		return nil, domain.ErrBoxAlreadyCheckedOut
	}
	if quantity > box.Remaining() {
		return nil, domain.ErrInsufficientBoxes
	}

	product, err := uc.productRepo.GetByID(box.ProductID)
	if err != nil {
		return nil, err
	}
	productName := box.ProductID
	if product != nil {
		productName = product.Name
	}

	now := time.Now()
	var updated *entity.Box

	err = uc.txRunner.Run(ctx, func(
		_ repository.StorageRepository,
		_ repository.BlockRepository,
		boxRepo repository.BoxRepository,
		logRepo repository.ActivityLogRepository,
	) error {
		u, err := boxRepo.Checkout(boxID, quantity, now)
		if err != nil {
			return err
		}
		if u == nil {
			// Perdimos la carrera contra otro retiro: reclasificar contra el estado actual.
			current, err := boxRepo.GetByID(blockID, boxID)
			if err != nil {
				return err
			}
			switch {
			case current == nil:
				return domain.ErrBoxNotFound
			case current.CheckedOutAt != nil || current.Remaining() == 0:
				return domain.ErrBoxAlreadyCheckedOut
			default:
				return domain.ErrInsufficientBoxes
			}
		}
		updated = u

		closed := updated.CheckedOutAt != nil
		previously := updated.CheckedOutBoxes - quantity
		return logRepo.Append(&entity.ActivityLog{
			ID:        uuid.New().String(),
			StorageID: storageID,
			UserID:    authUserID,
			Action:    entity.ActionCheckoutBox,
			Message:   checkoutBoxMessage(quantity, previously, updated.TotalBoxes, closed, productName, refs.Block.Name),
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutBoxResponse{
		ID:              updated.ID,
		TotalBoxes:      updated.TotalBoxes,
		CheckedOutBoxes: updated.CheckedOutBoxes,
		State:           updated.State(),
		CheckedOutAt:    updated.CheckedOutAt,
	}, nil
}

// Remove soft-deletea el lote y registra DELETE_BOX. No afecta a otros lotes del
// mismo bloque.
func (uc *BoxUseCase) Remove(ctx context.Context, authUserID, storageID, blockID, boxID string) error {
	refs, err := uc.checker.Check(ctx, Refs{StorageID: storageID, BlockID: blockID})
	if err != nil {
		return err
	}

	box, err := uc.boxRepo.GetByID(blockID, boxID)
	if err != nil {
		return err
	}
	if box == nil {
		return domain.ErrBoxNotFound
	}

	product, err := uc.productRepo.GetByID(box.ProductID)
	if err != nil {
		return err
	}
	productName := box.ProductID
	if product != nil {
		productName = product.Name
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		_ repository.StorageRepository,
		_ repository.BlockRepository,
		boxRepo repository.BoxRepository,
		logRepo repository.ActivityLogRepository,
	) error {
		if err := boxRepo.SoftDelete(boxID, now); err != nil {
			return err
		}
		return logRepo.Append(&entity.ActivityLog{
			ID:        uuid.New().String(),
			StorageID: storageID,
			UserID:    authUserID,
			Action:    entity.ActionDeleteBox,
			Message:   deleteBoxMessage(productName, refs.Block.Name),
			Timestamp: now,
		})
	})
}

// ListByBlock lista lotes aún no sellados del bloque, con filtro por prefijo de
// nombre de producto. Listado y conteo corren en paralelo.
func (uc *BoxUseCase) ListByBlock(ctx context.Context, storageID, blockID, productPrefix string, page dto.PageRequest) (*dto.BoxListResponse, error) {
	if _, err := uc.checker.Check(ctx, Refs{StorageID: storageID, BlockID: blockID}); err != nil {
		return nil, err
	}
	page.DefaultPage()

	var (
		boxes []*entity.BoxDetails
		total int
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := uc.boxRepo.ListByBlock(blockID, productPrefix, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		boxes = b
		return nil
	})
	g.Go(func() error {
		n, err := uc.boxRepo.CountByBlock(blockID, productPrefix)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.BoxListResponse{
		Items: make([]dto.BoxDetailsResponse, 0, len(boxes)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, b := range boxes {
		countries := make([]dto.NamedRef, 0, len(b.Countries))
		for _, c := range b.Countries {
			countries = append(countries, dto.NamedRef{ID: c.ID, Name: c.Name})
		}
		out.Items = append(out.Items, dto.BoxDetailsResponse{
			ID:              b.ID,
			Grade:           b.Grade,
			SubGrade:        b.SubGrade,
			Weight:          b.Weight,
			Price:           b.Price,
			TotalBoxes:      b.TotalBoxes,
			CheckedOutBoxes: b.CheckedOutBoxes,
			State:           b.State(),
			CreatedAt:       b.CreatedAt,
			Block:           dto.NamedRef{ID: b.BlockID, Name: b.BlockName},
			Product:         dto.NamedRef{ID: b.ProductID, Name: b.ProductName},
			User:            dto.UserRef{ID: b.UserID, DisplayName: b.UserName},
			Countries:       countries,
		})
	}
	return out, nil
}
