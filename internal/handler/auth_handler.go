package handler

import (
	"encoding/json"
	"errors"

	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/session"
	"go-stockcontrol-ws/internal/ws"
	"go-stockcontrol-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	sessions *session.Manager
	wsHub    *ws.Hub
}

func NewAuthHandler(sessions *session.Manager, hub *ws.Hub) *AuthHandler {
	return &AuthHandler{sessions: sessions, wsHub: hub}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Username == "" || req.Token == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and token are required"})
	}

	sess, err := h.sessions.Login(c.Context(), req.Username, req.Token)
	if err != nil {
		// Connectivity problems are not credential problems
		if errors.Is(err, session.ErrUnavailable) {
			return c.Status(503).JSON(fiber.Map{"error": "Backend unavailable, check your connection"})
		}
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	// Every snapshot change, local or remote, reaches this user's websocket
	// clients through one path.
	username := req.Username
	sess.OnSync(func(snap model.Snapshot) {
		payload, err := json.Marshal(fiber.Map{"type": "snapshot", "data": snap})
		if err != nil {
			return
		}
		h.wsHub.Publish(username, payload)
	})

	token, err := jwt.GenerateToken(username)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  fiber.Map{"name": username},
	})
}

// Logout tears down the caller's session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	h.sessions.Logout(username)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// ValidateTokenRequest represents the validate token request body
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateToken handles JWT token validation
// POST /api/v1/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Token == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Token is required"})
	}

	claims, err := jwt.ValidateToken(req.Token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	if _, ok := h.sessions.Get(claims.Username); !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Session expired, log in again"})
	}

	return c.JSON(fiber.Map{"user": fiber.Map{"name": claims.Username}})
}
