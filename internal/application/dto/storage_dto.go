package dto

import "time"

// CreateStorageRequest entrada para crear un storage.
type CreateStorageRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=50"`
	ProductID    string `json:"product_id" validate:"required"`
	SupervisorID string `json:"supervisor_id" validate:"required"`
	Dimension    string `json:"dimension" validate:"required"` // 1x1 .. 7x7
	Capacity     string `json:"capacity" validate:"required,min=1,max=50"`
}

// StorageResponse salida de un storage recién creado.
type StorageResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Dimension    string    `json:"dimension"`
	Capacity     string    `json:"capacity"`
	ProductID    string    `json:"product_id"`
	SupervisorID string    `json:"supervisor_id"`
	CreatedByID  string    `json:"created_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// StorageSummaryResponse elemento de listado con referencias resueltas.
type StorageSummaryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Dimension  string    `json:"dimension"`
	Capacity   string    `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
	Product    NamedRef  `json:"product"`
	Supervisor UserRef   `json:"supervisor"`
}

// StorageListResponse lista paginada de storages.
type StorageListResponse struct {
	Items []StorageSummaryResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// BlockResponse una celda de la grilla.
type BlockResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// StorageDetailResponse storage con su grilla completa.
type StorageDetailResponse struct {
	StorageResponse
	Blocks []BlockResponse `json:"blocks"`
}

// ActivityLogResponse una entrada del feed de actividad.
type ActivityLogResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	User      UserRef   `json:"user"`
}

// StorageLogsResponse página del feed, con cursor para la siguiente
// (timestamp en milisegundos Unix de la última entrada; null si no hay más).
type StorageLogsResponse struct {
	Logs   []ActivityLogResponse `json:"logs"`
	Cursor *int64                `json:"cursor"`
}
