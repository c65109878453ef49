package handler

import (
	"time"

	"go-bizbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats summarizes the user's books for a trailing window
// GET /api/dashboard/stats?range=7d|1m|3m|6m|12m
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	endDate := time.Now()
	var startDate time.Time

	switch c.Query("range", "1m") {
	case "7d":
		startDate = endDate.AddDate(0, 0, -7)
	case "1m":
		startDate = endDate.AddDate(0, -1, 0)
	case "3m":
		startDate = endDate.AddDate(0, -3, 0)
	case "6m":
		startDate = endDate.AddDate(0, -6, 0)
	case "12m":
		startDate = endDate.AddDate(0, -12, 0)
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid range. Use: 7d, 1m, 3m, 6m, 12m"})
	}

	stats, err := h.service.GetStats(getUserID(c), startDate, endDate)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"range":      c.Query("range", "1m"),
		"start_date": startDate,
		"end_date":   endDate,
		"stats":      stats,
	})
}
