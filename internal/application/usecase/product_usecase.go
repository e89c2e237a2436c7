package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	"github.com/tetoy/tetoy-api/internal/domain"
	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo. Un producto referencia una
// categoría y una sub-categoría que debe pertenecerle.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	storageRepo  repository.StorageRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	storageRepo repository.StorageRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storageRepo:  storageRepo,
	}
}

// checkRefs valida categoría, pertenencia de la sub-categoría y unicidad de nombre.
func (uc *ProductUseCase) checkRefs(name, categoryID, subCategoryID, excludeID string) error {
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	sub, err := uc.categoryRepo.GetSubCategory(categoryID, subCategoryID)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrSubCategoryNotFound
	}
	conflicting, err := uc.productRepo.GetByName(name, excludeID)
	if err != nil {
		return err
	}
	if conflicting != nil {
		return domain.ErrDuplicateName
	}
	return nil
}

// Create inserta un producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, authUserID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.checkRefs(in.Name, in.CategoryID, in.SubCategoryID, ""); err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		CreatedByID:   authUserID,
		CreatedAt:     time.Now(),
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devuelve un producto activo.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// List devuelve productos activos filtrados por prefijo de nombre.
func (uc *ProductUseCase) List(ctx context.Context, namePrefix string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(namePrefix, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count(namePrefix)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Update renombra o reclasifica un producto.
func (uc *ProductUseCase) Update(ctx context.Context, authUserID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if err := uc.checkRefs(in.Name, in.CategoryID, in.SubCategoryID, id); err != nil {
		return nil, err
	}

	now := time.Now()
	product.Name = in.Name
	product.CategoryID = in.CategoryID
	product.SubCategoryID = in.SubCategoryID
	product.UpdatedByID = authUserID
	product.UpdatedAt = &now
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete soft-deletea el producto, salvo que un storage activo lo referencie.
func (uc *ProductUseCase) Delete(ctx context.Context, authUserID, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	inUse, err := uc.storageRepo.ExistsByProduct(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrProductInUse
	}
	return uc.productRepo.SoftDelete(id, authUserID, time.Now())
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		SubCategoryID: p.SubCategoryID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
