package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Taxonomía: referencias inexistentes (uno por entidad), conflictos (nombre duplicado),
// estado inválido (checkout) e infraestructura. El caller los mapea a códigos HTTP;
// los de infraestructura se envuelven con %w y nunca llegan a la bitácora.
var (
	// Referencias inexistentes (excluyen filas soft-deleted).
	ErrStorageNotFound     = errors.New("almacenamiento no encontrado")
	ErrBlockNotFound       = errors.New("bloque no encontrado")
	ErrBoxNotFound         = errors.New("caja no encontrada")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrCategoryNotFound    = errors.New("categoría no encontrada")
	ErrSubCategoryNotFound = errors.New("sub-categoría no encontrada")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrCountryNotFound     = errors.New("uno o más países no existen")

	// Conflictos.
	ErrDuplicateName      = errors.New("ya existe un recurso con ese nombre")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrProductInUse       = errors.New("el producto está referenciado por un storage activo")

	// Estado inválido del ciclo de vida de una caja.
	ErrBoxAlreadyCheckedOut = errors.New("todas las cajas ya fueron retiradas")
	ErrInsufficientBoxes    = errors.New("no hay suficientes cajas disponibles para retirar")

	// Otros.
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
)
