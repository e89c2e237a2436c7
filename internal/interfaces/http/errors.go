package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	"github.com/tetoy/tetoy-api/internal/domain"
)

// domainStatus mapea cada error de dominio a su status y código HTTP.
var domainStatus = map[error]struct {
	status int
	code   string
}{
	domain.ErrStorageNotFound:      {fiber.StatusNotFound, "NOT_FOUND_STORAGE"},
	domain.ErrBlockNotFound:        {fiber.StatusNotFound, "NOT_FOUND_BLOCK"},
	domain.ErrBoxNotFound:          {fiber.StatusNotFound, "NOT_FOUND_BOX"},
	domain.ErrProductNotFound:      {fiber.StatusNotFound, "NOT_FOUND_PRODUCT"},
	domain.ErrCategoryNotFound:     {fiber.StatusNotFound, "NOT_FOUND_CATEGORY"},
	domain.ErrSubCategoryNotFound:  {fiber.StatusNotFound, "NOT_FOUND_SUB_CATEGORY"},
	domain.ErrUserNotFound:         {fiber.StatusNotFound, "NOT_FOUND_USER"},
	domain.ErrCountryNotFound:      {fiber.StatusNotFound, "NOT_FOUND_COUNTRY"},
	domain.ErrDuplicateName:        {fiber.StatusConflict, "CONFLICT_NAME"},
	domain.ErrEmailAlreadyExists:   {fiber.StatusConflict, "EMAIL_EXISTS"},
	domain.ErrProductInUse:         {fiber.StatusConflict, "PRODUCT_IN_USE"},
	domain.ErrBoxAlreadyCheckedOut: {fiber.StatusConflict, "INVALID_STATE"},
	domain.ErrInsufficientBoxes:    {fiber.StatusConflict, "INSUFFICIENT_BOXES"},
	domain.ErrInvalidInput:         {fiber.StatusBadRequest, "VALIDATION"},
	domain.ErrUnauthorized:         {fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// respondError traduce un error de caso de uso a la respuesta HTTP. Errores de
// dominio conocidos devuelven su status mapeado; el resto es un 500 genérico.
// El detalle del error no clasificado va al log, nunca al cliente.
func respondError(c *fiber.Ctx, err error) error {
	for sentinel, m := range domainStatus {
		if errors.Is(err, sentinel) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: sentinel.Error()})
		}
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error no clasificado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
