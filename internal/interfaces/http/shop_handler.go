package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/usecase"
	"github.com/jhoicas/Distripos-api/pkg/logger"
)

// ShopHandler maneja las peticiones HTTP de puntos de venta (protegido).
type ShopHandler struct {
	uc  *usecase.ShopUseCase
	log *logger.Logger
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase, log *logger.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, log: log}
}

// Create registra un punto de venta.
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetByID obtiene un punto de venta con su stock emitido.
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "tienda no encontrada")
	}
	return c.JSON(dto.OK(out))
}

// Update edita un punto de venta.
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "tienda no encontrada")
	}
	return c.JSON(dto.OK(out))
}

// List lista puntos de venta.
func (h *ShopHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// Delete elimina un punto de venta.
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("tienda eliminada"))
}
