package handler

import (
	"errors"
	"strconv"

	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"
	"go-bizbook/pkg/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Helpers to read the authenticated principal from the request context
// (set by middleware.RequireAuth).
func getUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}

func getUsername(c *fiber.Ctx) string {
	if name, ok := c.Locals("username").(string); ok {
		return name
	}
	return ""
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parsePagination(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	pageSize = c.QueryInt("page_size", 20)
	return page, pageSize
}

// queryUintPtr reads an optional numeric query filter; absence yields nil.
// A literal 0 is kept, it means "unassigned" to the list filters.
func queryUintPtr(c *fiber.Ctx, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

// statusForError maps the business error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrVersionConflict):
		return fiber.StatusConflict
	case database.IsBusy(err):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredential):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrEmployeeNotFound),
		errors.Is(err, service.ErrProductNameTaken),
		errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrWrongPassword):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Internal Server Error"
	}
	if status == fiber.StatusServiceUnavailable {
		msg = "Database is temporarily busy, please retry"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func paginated(items interface{}, total int64, page, pageSize int) fiber.Map {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return fiber.Map{
		"items":       items,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": totalPages,
	}
}
