package handler

import (
	"go-stockcontrol-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	service service.InventoryService
}

func NewStatsHandler(s service.InventoryService) *StatsHandler {
	return &StatsHandler{service: s}
}

// GetStats returns the inventory overview: distinct entries and total units.
// GET /api/v1/stats
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats(currentSession(c)))
}
