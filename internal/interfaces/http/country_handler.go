package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tetoy/tetoy-api/internal/application/usecase"
)

// CountryHandler maneja las peticiones HTTP para Country (protegido, solo lectura).
type CountryHandler struct {
	uc *usecase.CountryUseCase
}

// NewCountryHandler construye el handler.
func NewCountryHandler(uc *usecase.CountryUseCase) *CountryHandler {
	return &CountryHandler{uc: uc}
}

// List godoc
// @Summary      Listar países (catálogo semilla)
// @Tags         countries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CountryListResponse
// @Router       /api/countries [get]
func (h *CountryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
