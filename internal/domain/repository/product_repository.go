package repository

import (
	"time"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name, excludeID string) (*entity.Product, error)
	List(namePrefix string, limit, offset int) ([]*entity.Product, error)
	Count(namePrefix string) (int, error)
	Update(product *entity.Product) error
	SoftDelete(id, byUserID string, at time.Time) error
}
