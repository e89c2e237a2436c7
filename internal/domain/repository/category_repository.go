package repository

import (
	"time"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category y sus sub-categorías (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	CreateSubCategories(subs []*entity.SubCategory) error
	GetByID(id string) (*entity.Category, error)
	// GetByName busca por nombre entre no eliminadas, excluyendo opcionalmente un ID (para update).
	GetByName(name, excludeID string) (*entity.Category, error)
	List(namePrefix string, limit, offset int) ([]*entity.Category, error)
	Count(namePrefix string) (int, error)
	SubCategoriesByCategory(categoryID string) ([]*entity.SubCategory, error)
	// GetSubCategory busca la sub-categoría dentro de la categoría indicada, excluyendo eliminadas.
	GetSubCategory(categoryID, subCategoryID string) (*entity.SubCategory, error)
	Update(category *entity.Category) error
	RenameSubCategory(sub *entity.SubCategory) error
	SoftDeleteSubCategories(ids []string, at time.Time) error
	SoftDelete(id, byUserID string, at time.Time) error
}
