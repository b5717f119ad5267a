package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/usecase"
	"github.com/jhoicas/Distripos-api/pkg/logger"
)

// PackageHandler maneja las peticiones HTTP de paquetes de afiliación (protegido).
type PackageHandler struct {
	uc  *usecase.PackageUseCase
	log *logger.Logger
}

// NewPackageHandler construye el handler.
func NewPackageHandler(uc *usecase.PackageUseCase, log *logger.Logger) *PackageHandler {
	return &PackageHandler{uc: uc, log: log}
}

// Create registra un paquete.
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePackageRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetByID obtiene un paquete por ID.
func (h *PackageHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "paquete no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// Update edita un paquete.
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePackageRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "paquete no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// List lista paquetes.
func (h *PackageHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// Delete elimina un paquete.
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("paquete eliminado"))
}
