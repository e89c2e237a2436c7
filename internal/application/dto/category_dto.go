package dto

import "time"

// SubCategoryInput sub-categoría enviada en create/update. ID vacío → nueva;
// con ID → renombrar; las almacenadas ausentes del envío se soft-deletean.
type SubCategoryInput struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// CreateCategoryRequest entrada para crear una categoría con sus sub-categorías.
type CreateCategoryRequest struct {
	Name          string             `json:"name" validate:"required,min=1,max=50"`
	SubCategories []SubCategoryInput `json:"sub_categories" validate:"required,min=1"`
}

// UpdateCategoryRequest entrada para actualizar nombre y reconciliar sub-categorías.
type UpdateCategoryRequest struct {
	Name          string             `json:"name" validate:"required,min=1,max=50"`
	SubCategories []SubCategoryInput `json:"sub_categories" validate:"required,min=1"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	SubCategories []NamedRef `json:"sub_categories"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
