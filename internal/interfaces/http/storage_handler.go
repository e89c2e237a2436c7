package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	appstorage "github.com/tetoy/tetoy-api/internal/application/storage"
	domstorage "github.com/tetoy/tetoy-api/internal/domain/storage"
)

// StorageHandler maneja las peticiones HTTP del agregado Storage: storages,
// su bitácora y las cajas de sus bloques (protegido).
type StorageHandler struct {
	uc    *appstorage.UseCase
	boxUC *appstorage.BoxUseCase
}

// NewStorageHandler construye el handler.
func NewStorageHandler(uc *appstorage.UseCase, boxUC *appstorage.BoxUseCase) *StorageHandler {
	return &StorageHandler{uc: uc, boxUC: boxUC}
}

// Create godoc
// @Summary      Crear storage (genera la grilla de bloques)
// @Tags         storages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageRequest  true  "Datos del storage"
// @Success      201   {object}  dto.StorageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storages [post]
func (h *StorageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Capacity == "" || in.ProductID == "" || in.SupervisorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, capacity, product_id y supervisor_id son requeridos"})
	}
	if len(in.Name) > 50 || len(in.Capacity) > 50 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y capacity admiten máximo 50 caracteres"})
	}
	if !domstorage.IsValidDimension(in.Dimension) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dimension debe ser NxN con N entre 1 y 7"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar storages
// @Tags         storages
// @Security     Bearer
// @Produce      json
// @Param        name    query  string  false  "Prefijo de nombre"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.StorageListResponse
// @Router       /api/storages [get]
func (h *StorageHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.Context(), c.Query("name"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener storage con su grilla
// @Tags         storages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del storage"
// @Success      200  {object}  dto.StorageDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storages/{id} [get]
func (h *StorageHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar storage (cascada a bloques y cajas)
// @Tags         storages
// @Security     Bearer
// @Param        id   path  string  true  "ID del storage"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storages/{id} [delete]
func (h *StorageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Logs godoc
// @Summary      Feed de actividad del storage (cursor por timestamp)
// @Tags         storages
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del storage"
// @Param        cursor  query  int     false  "Timestamp Unix en ms; entradas anteriores"
// @Success      200     {object}  dto.StorageLogsResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/storages/{id}/logs [get]
func (h *StorageHandler) Logs(c *fiber.Ctx) error {
	before := time.Now()
	if cursor := c.QueryInt("cursor", 0); cursor > 0 {
		before = time.UnixMilli(int64(cursor))
	}
	out, err := h.uc.Logs(c.Context(), c.Params("id"), before)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateBox godoc
// @Summary      Agregar un lote de cajas a un bloque
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID del storage"
// @Param        blockId  path  string  true  "ID del bloque"
// @Param        body     body  dto.CreateBoxRequest  true  "Datos del lote"
// @Success      201      {object}  dto.BoxResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/storages/{id}/blocks/{blockId}/boxes [post]
func (h *StorageHandler) CreateBox(c *fiber.Ctx) error {
	var in dto.CreateBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.UserID == "" || in.Grade == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, user_id y grade son requeridos"})
	}
	if in.TotalBoxes < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "total_boxes debe ser al menos 1"})
	}
	if len(in.Countries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "countries debe incluir al menos un país"})
	}
	if in.Weight.IsNegative() || in.Price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "weight y price no pueden ser negativos"})
	}
	out, err := h.boxUC.Create(c.Context(), GetUserID(c), c.Params("id"), c.Params("blockId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBoxes godoc
// @Summary      Listar lotes de un bloque (excluye los ya sellados)
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del storage"
// @Param        blockId  path   string  true   "ID del bloque"
// @Param        product  query  string  false  "Prefijo de nombre de producto"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.BoxListResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/storages/{id}/blocks/{blockId}/boxes [get]
func (h *StorageHandler) ListBoxes(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.boxUC.ListByBlock(c.Context(), c.Params("id"), c.Params("blockId"), c.Query("product"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckoutBox godoc
// @Summary      Retirar cajas de un lote (parcial o total)
// @Tags         boxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID del storage"
// @Param        blockId  path  string  true  "ID del bloque"
// @Param        boxId    path  string  true  "ID del lote"
// @Param        body     body  dto.CheckoutBoxRequest  true  "Cantidad a retirar"
// @Success      200      {object}  dto.CheckoutBoxResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/storages/{id}/blocks/{blockId}/boxes/{boxId}/checkout [post]
func (h *StorageHandler) CheckoutBox(c *fiber.Ctx) error {
	var in dto.CheckoutBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Boxes < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "boxes debe ser al menos 1"})
	}
	out, err := h.boxUC.Checkout(c.Context(), GetUserID(c), c.Params("id"), c.Params("blockId"), c.Params("boxId"), in.Boxes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteBox godoc
// @Summary      Eliminar un lote de cajas
// @Tags         boxes
// @Security     Bearer
// @Param        id       path  string  true  "ID del storage"
// @Param        blockId  path  string  true  "ID del bloque"
// @Param        boxId    path  string  true  "ID del lote"
// @Success      204      "sin contenido"
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/storages/{id}/blocks/{blockId}/boxes/{boxId} [delete]
func (h *StorageHandler) DeleteBox(c *fiber.Ctx) error {
	if err := h.boxUC.Remove(c.Context(), GetUserID(c), c.Params("id"), c.Params("blockId"), c.Params("boxId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// pageFromQuery arma la paginación desde query params con los límites de siempre.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return dto.PageRequest{Limit: limit, Offset: offset}
}
