package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de una caja. Solo CheckedOutAt se persiste explícitamente
// para que "totalmente retirada" sea consultable sin recomputar.
const (
	BoxStateOpen    = "OPEN"    // CheckedOutBoxes == 0, CheckedOutAt nulo
	BoxStatePartial = "PARTIAL" // 0 < CheckedOutBoxes < TotalBoxes
	BoxStateClosed  = "CLOSED"  // CheckedOutBoxes == TotalBoxes, CheckedOutAt seteado
)

// Box representa un lote de unidades idénticas dentro de un bloque, con contadores
// independientes de total y retiradas. Invariante: CheckedOutBoxes <= TotalBoxes,
// y CheckedOutAt no nulo sii CheckedOutBoxes == TotalBoxes.
type Box struct {
	ID              string
	BlockID         string
	ProductID       string
	UserID          string
	Grade           string
	SubGrade        *string
	Weight          decimal.Decimal
	Price           decimal.Decimal
	TotalBoxes      int
	CheckedOutBoxes int
	CheckedOutAt    *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
}

// Remaining devuelve las unidades aún no retiradas.
func (b *Box) Remaining() int {
	return b.TotalBoxes - b.CheckedOutBoxes
}

// State deriva el estado a partir de los contadores.
func (b *Box) State() string {
	switch {
	case b.CheckedOutAt != nil || b.CheckedOutBoxes == b.TotalBoxes:
		return BoxStateClosed
	case b.CheckedOutBoxes > 0:
		return BoxStatePartial
	default:
		return BoxStateOpen
	}
}

// BoxDetails proyección para listados por bloque: caja + referencias resueltas.
// UserName puede ser NULL (display_name opcional en users).
type BoxDetails struct {
	Box
	BlockName   string
	ProductName string
	UserName    *string
	Countries   []Country
}
