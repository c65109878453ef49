package handler

import (
	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists products with pagination, search and supplier filter
// GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)
	q := repository.ProductQuery{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		SupplierID: queryUintPtr(c, "supplier_id"),
	}

	products, total, err := h.service.ListProducts(getUserID(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(products, total, page, pageSize))
}

// GetProduct returns one product
// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// CreateProduct creates a product with version 1
// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductCreateInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(getUserID(c), getUsername(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// UpdateProduct applies a partial update, optionally version-checked
// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.ProductUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(getUserID(c), getUsername(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct removes a product; dependent sales keep their name reference
// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(getUserID(c), getUsername(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// AdjustStock applies a signed, version-checked stock correction
// POST /api/products/:id/stock
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.StockAdjustInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.AdjustStock(getUserID(c), getUsername(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock updated", "data": product})
}

// SearchProducts returns up to 50 matches, unpaginated (dropdowns etc.)
// GET /api/products/search/all
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	search := c.Query("search")
	if search == "" {
		return c.Status(400).JSON(fiber.Map{"error": "search is required"})
	}

	products, err := h.service.SearchProducts(getUserID(c), search)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}
