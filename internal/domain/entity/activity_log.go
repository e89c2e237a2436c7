package entity

import "time"

// Acciones registradas en la bitácora de un storage.
const (
	ActionCreate      = "CREATE"
	ActionUpdate      = "UPDATE"
	ActionDelete      = "DELETE"
	ActionResize      = "RESIZE"
	ActionAddBox      = "ADD_BOX"
	ActionUpdateBox   = "UPDATE_BOX"
	ActionDeleteBox   = "DELETE_BOX"
	ActionCheckoutBox = "CHECKOUT_BOX"
)

// ActivityLog es una fila inmutable de auditoría: exactamente una por operación de
// mutación exitosa, escrita en la misma transacción. Nunca se actualiza ni se borra.
// Seq (bigserial) desempata el orden cuando dos timestamps coinciden.
type ActivityLog struct {
	ID        string
	Seq       int64
	StorageID string
	UserID    string
	Action    string
	Message   string
	Timestamp time.Time
}

// ActivityLogEntry proyección para el feed: entrada + usuario que la generó.
type ActivityLogEntry struct {
	ActivityLog
	UserDisplayName *string
	UserAvatarURL   *string
}
