package handler

import (
	"time"

	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	repo repository.SettingRepository
}

func NewSettingHandler(repo repository.SettingRepository) *SettingHandler {
	return &SettingHandler{repo: repo}
}

type settingRequest struct {
	DarkMode           *bool      `json:"dark_mode"`
	AutoBackupEnabled  *bool      `json:"auto_backup_enabled"`
	AutoBackupInterval *int       `json:"auto_backup_interval"`
	AutoBackupMaxCount *int       `json:"auto_backup_max_count"`
	LastBackupTime     *time.Time `json:"last_backup_time"`
	ShowOnlineUsers    *bool      `json:"show_online_users"`
}

// GetSettings returns the user's settings, creating defaults on first access
// GET /api/settings
func (h *SettingHandler) GetSettings(c *fiber.Ctx) error {
	setting, err := h.repo.FindOrCreate(getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(setting)
}

// UpdateSettings applies a partial settings update
// PUT /api/settings
func (h *SettingHandler) UpdateSettings(c *fiber.Ctx) error {
	var req settingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.AutoBackupInterval != nil && *req.AutoBackupInterval < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "auto_backup_interval must be at least 1"})
	}
	if req.AutoBackupMaxCount != nil && *req.AutoBackupMaxCount < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "auto_backup_max_count must be at least 1"})
	}

	fields := map[string]interface{}{}
	if req.DarkMode != nil {
		fields["dark_mode"] = *req.DarkMode
	}
	if req.AutoBackupEnabled != nil {
		fields["auto_backup_enabled"] = *req.AutoBackupEnabled
	}
	if req.AutoBackupInterval != nil {
		fields["auto_backup_interval"] = *req.AutoBackupInterval
	}
	if req.AutoBackupMaxCount != nil {
		fields["auto_backup_max_count"] = *req.AutoBackupMaxCount
	}
	if req.LastBackupTime != nil {
		fields["last_backup_time"] = *req.LastBackupTime
	}
	if req.ShowOnlineUsers != nil {
		fields["show_online_users"] = *req.ShowOnlineUsers
	}
	if len(fields) == 0 {
		return fail(c, service.ErrNoFieldsToUpdate)
	}

	setting, err := h.repo.UpdateFields(getUserID(c), fields)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Settings updated", "data": setting})
}
