package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fondago/fonda-backend/internal/models"
	"github.com/fondago/fonda-backend/internal/services"
	"github.com/fondago/fonda-backend/internal/storage"
)

// SessionHandler exposes the session lifecycle to the frontend menu app
type SessionHandler struct {
	sessions *services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CreateSessionRequest is the body of POST /api/sessions
type CreateSessionRequest struct {
	Phone string `json:"phone"`
}

// UpdateSessionRequest is the body of PATCH /api/sessions/:token
type UpdateSessionRequest struct {
	State   *models.SessionState `json:"state"`
	OrderID *uint                `json:"order_id"`
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req CreateSessionRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Phone is required",
		})
	}

	session, err := h.sessions.Create(req.Phone)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// Get handles GET /api/sessions/:token
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	token := c.Params("token")

	session, err := h.sessions.GetByToken(token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get session",
		})
	}

	return c.JSON(session)
}

// Update handles PATCH /api/sessions/:token
func (h *SessionHandler) Update(c *fiber.Ctx) error {
	token := c.Params("token")

	var req UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.State != nil && !req.State.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session state",
		})
	}

	session, err := h.sessions.UpdateByToken(token, services.SessionUpdate{
		State:   req.State,
		OrderID: req.OrderID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update session",
		})
	}

	return c.JSON(session)
}

// Delete handles DELETE /api/sessions/:token - idempotent, deleting an
// absent token still returns 200
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	token := c.Params("token")

	if err := h.sessions.DeleteByToken(token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete session",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Session deleted successfully",
	})
}

// Cleanup handles POST /api/sessions/cleanup - admin-triggered sweep of
// expired sessions
func (h *SessionHandler) Cleanup(c *fiber.Ctx) error {
	removed, err := h.sessions.CleanupExpired(time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cleanup sessions",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Expired sessions cleaned up successfully",
		"removed": removed,
	})
}
