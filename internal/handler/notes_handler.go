package handler

import (
	"errors"

	"go-stockcontrol-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NotesHandler struct {
	service service.NotesService
}

func NewNotesHandler(s service.NotesService) *NotesHandler {
	return &NotesHandler{service: s}
}

func (h *NotesHandler) GetNotes(c *fiber.Ctx) error {
	return c.JSON(h.service.Notes(c.Context(), currentSession(c)))
}

// AddNoteRequest carries the note body.
type AddNoteRequest struct {
	Text string `json:"texto"`
}

func (h *NotesHandler) AddNote(c *fiber.Ctx) error {
	var req AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	note, err := h.service.Add(c.Context(), currentSession(c), req.Text)
	switch {
	case errors.Is(err, service.ErrEmptyNote):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPersistFailed):
		return c.Status(502).JSON(fiber.Map{"error": err.Error(), "data": note})
	case err != nil:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Note added", "data": note})
}

func (h *NotesHandler) DeleteNote(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), currentSession(c), c.Params("id")); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Note deleted"})
}
