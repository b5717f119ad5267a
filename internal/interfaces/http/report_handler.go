package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/reports"
	"github.com/jhoicas/Distripos-api/pkg/logger"
)

// ReportHandler maneja los reportes de pérdidas y ganancias y el tablero (protegido).
type ReportHandler struct {
	uc  *reports.UseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Daily devuelve ventas, gastos y utilidad de un día (por defecto hoy).
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	date := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return badRequest(c, "date inválida (formato 2006-01-02)")
		}
		date = t
	}
	out, err := h.uc.Daily(c.UserContext(), date)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// Monthly devuelve un bucket por día con actividad del mes.
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	out, err := h.uc.Monthly(c.UserContext(), time.Month(month), year)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// Dashboard devuelve los agregados del tablero de administración.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}
