package handler

import (
	"go-bizbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles account creation
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(resp)
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// Logout removes the user's presence row
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(getUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the authenticated user's profile
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// Refresh issues a fresh token for the current session
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	resp, err := h.authService.Refresh(getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword rotates the user's password and invalidates open sessions
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "old_password and new_password are required"})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "New password must be at least 6 characters"})
	}

	if err := h.authService.ChangePassword(getUserID(c), req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully, please log in again"})
}
