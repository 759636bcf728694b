package handler

import (
	"errors"

	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/service"
	"go-stockcontrol-ws/internal/session"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// currentSession pulls the session resolved by RequireSession.
func currentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals("session").(*session.Session)
	return sess
}

func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	return c.JSON(h.service.Items(c.Context(), currentSession(c)))
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var draft model.ItemDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.AddItem(c.Context(), currentSession(c), &draft)
	if errors.Is(err, service.ErrPersistFailed) {
		// The item exists in memory; the write did not land.
		return c.Status(502).JSON(fiber.Map{"error": err.Error(), "data": item})
	}
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Item created", "data": item})
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id := c.Params("id")

	var draft model.ItemDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	found, err := h.service.UpdateItem(c.Context(), currentSession(c), id, &draft)
	if !found {
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(404).JSON(fiber.Map{"error": "Item not found"})
	}
	if errors.Is(err, service.ErrPersistFailed) {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Item updated"})
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.Context(), currentSession(c), c.Params("id")); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}
