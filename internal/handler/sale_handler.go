package handler

import (
	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// GetSales lists sales with pagination, search, date range and customer filter
// GET /api/sales
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)
	q := repository.SaleQuery{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		CustomerID: queryUintPtr(c, "customer_id"),
	}

	sales, total, err := h.service.ListSales(getUserID(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(sales, total, page, pageSize))
}

// GetSale returns one sale
// GET /api/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSale(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}

// CreateSale records a sale and decrements the product's stock in the same
// transaction.
// POST /api/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleCreateInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.CreateSale(getUserID(c), getUsername(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// UpdateSale edits a sale and reconciles stock by the quantity delta
// PUT /api/sales/:id
func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var req service.SaleUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.UpdateSale(getUserID(c), getUsername(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale updated", "data": sale})
}

// DeleteSale removes a sale and restores its quantity to stock
// DELETE /api/sales/:id
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.service.DeleteSale(getUserID(c), getUsername(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale deleted, stock restored"})
}
