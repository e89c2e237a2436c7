package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=50"`
	CategoryID    string `json:"category_id" validate:"required"`
	SubCategoryID string `json:"sub_category_id" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=50"`
	CategoryID    string `json:"category_id" validate:"required"`
	SubCategoryID string `json:"sub_category_id" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CategoryID    string     `json:"category_id"`
	SubCategoryID string     `json:"sub_category_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
