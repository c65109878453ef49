package handler

import (
	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	repo repository.CustomerRepository
}

func NewCustomerHandler(repo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

type partyRequest struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// GET /api/customers
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)
	customers, total, err := h.repo.List(getUserID(c), page, pageSize, c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(customers, total, page, pageSize))
}

// GET /api/customers/all returns the full unpaginated list for dropdowns
func (h *CustomerHandler) GetAllCustomers(c *fiber.Ctx) error {
	customers, err := h.repo.FindAll(getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"customers": customers, "count": len(customers)})
}

// GET /api/customers/:id
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	customer, err := h.repo.FindByID(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(customer)
}

// POST /api/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req partyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	customer := model.Customer{UserID: getUserID(c), Name: req.Name, Note: req.Note}
	if err := h.repo.Create(&customer); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": customer})
}

// PUT /api/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var req partyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	customer, err := h.repo.FindByID(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	customer.Name = req.Name
	customer.Note = req.Note
	if err := h.repo.Update(customer); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": customer})
}

// DELETE /api/customers/:id. Dependent sales and income keep existing with
// their customer reference cleared.
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	if err := h.repo.Delete(getUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}
