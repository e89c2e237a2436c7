package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBoxRequest entrada para agregar un lote de cajas a un bloque.
type CreateBoxRequest struct {
	UserID     string          `json:"user_id" validate:"required"`
	ProductID  string          `json:"product_id" validate:"required"`
	TotalBoxes int             `json:"total_boxes" validate:"required,min=1"`
	Grade      string          `json:"grade" validate:"required,max=50"`
	SubGrade   *string         `json:"sub_grade" validate:"omitempty,max=50"`
	Weight     decimal.Decimal `json:"weight" validate:"min=0"`
	Price      decimal.Decimal `json:"price" validate:"min=0"`
	Countries  []string        `json:"countries" validate:"required,min=1"`
}

// CheckoutBoxRequest entrada para retirar cajas de un lote.
type CheckoutBoxRequest struct {
	Boxes int `json:"boxes" validate:"required,min=1"`
}

// BoxResponse salida de un lote recién creado.
type BoxResponse struct {
	ID         string          `json:"id"`
	BlockID    string          `json:"block_id"`
	ProductID  string          `json:"product_id"`
	UserID     string          `json:"user_id"`
	Grade      string          `json:"grade"`
	SubGrade   *string         `json:"sub_grade"`
	Weight     decimal.Decimal `json:"weight"`
	Price      decimal.Decimal `json:"price"`
	TotalBoxes int             `json:"total_boxes"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BoxDetailsResponse elemento de listado por bloque con referencias resueltas.
type BoxDetailsResponse struct {
	ID              string          `json:"id"`
	Grade           string          `json:"grade"`
	SubGrade        *string         `json:"sub_grade"`
	Weight          decimal.Decimal `json:"weight"`
	Price           decimal.Decimal `json:"price"`
	TotalBoxes      int             `json:"total_boxes"`
	CheckedOutBoxes int             `json:"checked_out_boxes"`
	State           string          `json:"state"`
	CreatedAt       time.Time       `json:"created_at"`
	Block           NamedRef        `json:"block"`
	Product         NamedRef        `json:"product"`
	User            UserRef         `json:"user"`
	Countries       []NamedRef      `json:"countries"`
}

// BoxListResponse lista paginada de lotes de un bloque.
type BoxListResponse struct {
	Items []BoxDetailsResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// CheckoutBoxResponse estado del lote después del retiro.
type CheckoutBoxResponse struct {
	ID              string     `json:"id"`
	TotalBoxes      int        `json:"total_boxes"`
	CheckedOutBoxes int        `json:"checked_out_boxes"`
	State           string     `json:"state"`
	CheckedOutAt    *time.Time `json:"checked_out_at"`
}
