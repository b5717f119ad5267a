package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/sales"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/pkg/logger"
)

// respondError mapea errores de dominio a estatus HTTP con el envoltorio
// {status:false, payload:<mensaje>}. Los errores internos responden un mensaje
// genérico; la causa solo se loguea.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var lineErr *sales.LineError
	if errors.As(err, &lineErr) {
		return c.Status(statusFor(lineErr.Err)).JSON(dto.APIResponse{
			Status: false,
			Payload: dto.SaleLineError{
				Line:    lineErr.Line,
				StockID: lineErr.StockID,
				Message: messageFor(lineErr.Err),
			},
		})
	}

	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(status).JSON(dto.Fail("error interno"))
	}
	return c.Status(status).JSON(dto.Fail(messageFor(err)))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnitPriceRequired),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrStockNotIssued),
		errors.Is(err, domain.ErrPaymentExceedsBalance):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(err error) string {
	if statusFor(err) == fiber.StatusInternalServerError {
		return "error interno"
	}
	return err.Error()
}

// notFound respuesta 404 con el envoltorio estándar.
func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Fail(message))
}

// badRequest respuesta 400 con el envoltorio estándar.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message))
}
