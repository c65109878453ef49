package handler

import (
	"errors"
	"time"

	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// presenceTTL is how long a heartbeat keeps a user counted as online.
const presenceTTL = 90 * time.Second

type PresenceHandler struct {
	authService service.AuthService
	repo        repository.PresenceRepository
}

func NewPresenceHandler(authService service.AuthService, repo repository.PresenceRepository) *PresenceHandler {
	return &PresenceHandler{authService: authService, repo: repo}
}

// ttl reads an optional ttl_seconds query override, clamped to sane bounds.
func ttl(c *fiber.Ctx) time.Duration {
	secs := c.QueryInt("ttl_seconds", int(presenceTTL/time.Second))
	if secs < 5 {
		secs = 5
	}
	if secs > 3600 {
		secs = 3600
	}
	return time.Duration(secs) * time.Second
}

// Heartbeat refreshes the caller's presence row
// POST /api/users/heartbeat
func (h *PresenceHandler) Heartbeat(c *fiber.Ctx) error {
	var req struct {
		Action *string `json:"action"`
	}
	// Body is optional; a bare heartbeat carries no action.
	_ = c.BodyParser(&req)

	if err := h.authService.Heartbeat(getUserID(c), getUsername(c), req.Action); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Heartbeat recorded"})
}

// GetOnlineUsers lists users with a live heartbeat
// GET /api/users/online
func (h *PresenceHandler) GetOnlineUsers(c *fiber.Ctx) error {
	users, err := h.repo.ListOnline(ttl(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

// GetOnlineCount returns the number of users with a live heartbeat
// GET /api/users/online/count
func (h *PresenceHandler) GetOnlineCount(c *fiber.Ctx) error {
	count, err := h.repo.CountOnline(ttl(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// GetUserStatus reports whether one user is currently online
// GET /api/users/online/:id/status
func (h *PresenceHandler) GetUserStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	row, err := h.repo.FindByUserID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"user_id": id, "online": false})
	}
	if err != nil {
		return fail(c, err)
	}

	online := time.Since(row.LastHeartbeat) < ttl(c)
	return c.JSON(fiber.Map{
		"user_id":        id,
		"online":         online,
		"last_heartbeat": row.LastHeartbeat,
		"current_action": row.CurrentAction,
	})
}

// UpdateAction sets the caller's current activity label
// PUT /api/users/action
func (h *PresenceHandler) UpdateAction(c *fiber.Ctx) error {
	var req struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Action == "" {
		return c.Status(400).JSON(fiber.Map{"error": "action is required"})
	}

	if err := h.repo.SetAction(getUserID(c), getUsername(c), req.Action); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Action updated"})
}

// ClearAction removes the caller's activity label without dropping presence
// DELETE /api/users/action
func (h *PresenceHandler) ClearAction(c *fiber.Ctx) error {
	if err := h.repo.ClearAction(getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Action cleared"})
}

// Cleanup removes presence rows whose heartbeat has expired
// POST /api/users/online/cleanup
func (h *PresenceHandler) Cleanup(c *fiber.Ctx) error {
	removed, err := h.repo.CleanupExpired(ttl(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cleanup complete", "removed": removed})
}
