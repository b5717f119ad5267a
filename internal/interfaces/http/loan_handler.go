package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/loans"
	"github.com/jhoicas/Distripos-api/pkg/logger"
)

// LoanHandler maneja las peticiones HTTP de préstamos y abonos (protegido).
type LoanHandler struct {
	uc  *loans.UseCase
	log *logger.Logger
}

// NewLoanHandler construye el handler.
func NewLoanHandler(uc *loans.UseCase, log *logger.Logger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

// Create registra un préstamo sobre una venta existente.
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List lista préstamos con el nombre del cliente.
func (h *LoanHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// GetByID obtiene un préstamo con su historial de abonos.
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "préstamo no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// Pay godoc
// @Summary      Abonar a un préstamo
// @Tags         loans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.PayLoanRequest  true  "Monto y fecha del abono"
// @Success      201   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/loans/{id}/payments [post]
func (h *LoanHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Pay(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// DeletePayment revierte un abono sumando su monto de vuelta al saldo.
func (h *LoanHandler) DeletePayment(c *fiber.Ctx) error {
	if err := h.uc.DeletePayment(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("abono eliminado"))
}
