package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	"github.com/tetoy/tetoy-api/internal/domain"
	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/reconcile"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías con reconciliación de sub-categorías en update:
// la lista enviada se diffea contra la almacenada (altas / renombres / soft-deletes)
// y el resultado se aplica en una sola transacción.
type CategoryUseCase struct {
	txRunner     CatalogTxRunner
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(txRunner CatalogTxRunner, categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{txRunner: txRunner, categoryRepo: categoryRepo}
}

// hasDuplicateSubNames detecta nombres repetidos (case-insensitive) en el envío.
func hasDuplicateSubNames(subs []dto.SubCategoryInput) bool {
	seen := make(map[string]bool, len(subs))
	for _, s := range subs {
		k := strings.ToLower(s.Name)
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}

// Create inserta la categoría y sus sub-categorías iniciales.
func (uc *CategoryUseCase) Create(ctx context.Context, authUserID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if hasDuplicateSubNames(in.SubCategories) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByName(in.Name, "")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		CreatedByID: authUserID,
		CreatedAt:   now,
	}
	subs := make([]*entity.SubCategory, 0, len(in.SubCategories))
	for _, s := range in.SubCategories {
		subs = append(subs, &entity.SubCategory{
			ID:         uuid.New().String(),
			CategoryID: category.ID,
			Name:       s.Name,
			CreatedAt:  now,
		})
	}

	err = uc.txRunner.RunCatalog(ctx, func(categoryRepo repository.CategoryRepository) error {
		if err := categoryRepo.Create(category); err != nil {
			return err
		}
		return categoryRepo.CreateSubCategories(subs)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(category, subs), nil
}

// GetByID devuelve la categoría con sus sub-categorías activas.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	subs, err := uc.categoryRepo.SubCategoriesByCategory(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(category, subs), nil
}

// List devuelve categorías activas filtradas por prefijo, con sus sub-categorías.
func (uc *CategoryUseCase) List(ctx context.Context, namePrefix string, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	categories, err := uc.categoryRepo.List(namePrefix, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.categoryRepo.Count(namePrefix)
	if err != nil {
		return nil, err
	}

	out := &dto.CategoryListResponse{
		Items: make([]dto.CategoryResponse, 0, len(categories)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, c := range categories {
		subs, err := uc.categoryRepo.SubCategoriesByCategory(c.ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *uc.toResponse(c, subs))
	}
	return out, nil
}

// Update renombra la categoría y reconcilia las sub-categorías enviadas contra las
// almacenadas: sin ID → alta, con ID existente → renombre, ausente → soft-delete.
func (uc *CategoryUseCase) Update(ctx context.Context, authUserID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if hasDuplicateSubNames(in.SubCategories) {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	conflicting, err := uc.categoryRepo.GetByName(in.Name, id)
	if err != nil {
		return nil, err
	}
	if conflicting != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now()
	err = uc.txRunner.RunCatalog(ctx, func(categoryRepo repository.CategoryRepository) error {
		existing, err := categoryRepo.SubCategoriesByCategory(id)
		if err != nil {
			return err
		}
		existingIDs := make([]string, 0, len(existing))
		for _, s := range existing {
			existingIDs = append(existingIDs, s.ID)
		}

		diff := reconcile.Lists(in.SubCategories, existingIDs, func(s dto.SubCategoryInput) string { return s.ID })

		category.Name = in.Name
		category.UpdatedByID = authUserID
		category.UpdatedAt = &now
		if err := categoryRepo.Update(category); err != nil {
			return err
		}

		if len(diff.ToInsert) > 0 {
			inserts := make([]*entity.SubCategory, 0, len(diff.ToInsert))
			for _, s := range diff.ToInsert {
				inserts = append(inserts, &entity.SubCategory{
					ID:         uuid.New().String(),
					CategoryID: id,
					Name:       s.Name,
					CreatedAt:  now,
				})
			}
			if err := categoryRepo.CreateSubCategories(inserts); err != nil {
				return err
			}
		}
		for _, s := range diff.ToUpdate {
			if err := categoryRepo.RenameSubCategory(&entity.SubCategory{
				ID:         s.ID,
				CategoryID: id,
				Name:       s.Name,
				UpdatedAt:  &now,
			}); err != nil {
				return err
			}
		}
		if len(diff.ToDelete) > 0 {
			if err := categoryRepo.SoftDeleteSubCategories(diff.ToDelete, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete soft-deletea la categoría y todas sus sub-categorías activas.
func (uc *CategoryUseCase) Delete(ctx context.Context, authUserID, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}

	now := time.Now()
	return uc.txRunner.RunCatalog(ctx, func(categoryRepo repository.CategoryRepository) error {
		subs, err := categoryRepo.SubCategoriesByCategory(id)
		if err != nil {
			return err
		}
		if len(subs) > 0 {
			ids := make([]string, 0, len(subs))
			for _, s := range subs {
				ids = append(ids, s.ID)
			}
			if err := categoryRepo.SoftDeleteSubCategories(ids, now); err != nil {
				return err
			}
		}
		return categoryRepo.SoftDelete(id, authUserID, now)
	})
}

func (uc *CategoryUseCase) toResponse(c *entity.Category, subs []*entity.SubCategory) *dto.CategoryResponse {
	out := &dto.CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		SubCategories: make([]dto.NamedRef, 0, len(subs)),
	}
	for _, s := range subs {
		out.SubCategories = append(out.SubCategories, dto.NamedRef{ID: s.ID, Name: s.Name})
	}
	return out
}
