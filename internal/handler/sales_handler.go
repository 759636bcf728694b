package handler

import (
	"errors"

	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	return c.JSON(h.service.Sales(c.Context(), currentSession(c)))
}

func (h *SalesHandler) RegisterSale(c *fiber.Ctx) error {
	var req model.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.Register(c.Context(), currentSession(c), &req)
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPersistFailed):
		return c.Status(502).JSON(fiber.Map{"error": err.Error(), "data": sale})
	case err != nil:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale registered", "data": sale})
}

// UpdateStatusRequest carries a sale's new status.
type UpdateStatusRequest struct {
	Status model.SaleStatus `json:"estado"`
}

func (h *SalesHandler) UpdateSaleStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Status != model.SalePaid && req.Status != model.SaleDebt {
		return c.Status(400).JSON(fiber.Map{"error": "estado must be 'pagado' or 'deuda'"})
	}

	err := h.service.UpdateStatus(c.Context(), currentSession(c), c.Params("id"), req.Status)
	switch {
	case errors.Is(err, service.ErrSaleNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPersistFailed):
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale updated"})
}

func (h *SalesHandler) DeleteSale(c *fiber.Ctx) error {
	restore := c.QueryBool("restore", true)

	err := h.service.Delete(c.Context(), currentSession(c), c.Params("id"), restore)
	switch {
	case errors.Is(err, service.ErrSaleNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPersistFailed):
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale deleted"})
}
