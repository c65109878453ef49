package handler

import (
	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	repo repository.SupplierRepository
}

func NewSupplierHandler(repo repository.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{repo: repo}
}

// GET /api/suppliers
func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)
	suppliers, total, err := h.repo.List(getUserID(c), page, pageSize, c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(suppliers, total, page, pageSize))
}

// GET /api/suppliers/all
func (h *SupplierHandler) GetAllSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.repo.FindAll(getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"suppliers": suppliers, "count": len(suppliers)})
}

// GET /api/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}
	supplier, err := h.repo.FindByID(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(supplier)
}

// POST /api/suppliers
func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req partyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	supplier := model.Supplier{UserID: getUserID(c), Name: req.Name, Note: req.Note}
	if err := h.repo.Create(&supplier); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

// PUT /api/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var req partyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	supplier, err := h.repo.FindByID(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	supplier.Name = req.Name
	supplier.Note = req.Note
	if err := h.repo.Update(supplier); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier updated", "data": supplier})
}

// DELETE /api/suppliers/:id. Products and remittances keep existing with
// their supplier reference cleared.
func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}
	if err := h.repo.Delete(getUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}
