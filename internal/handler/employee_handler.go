package handler

import (
	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	repo repository.EmployeeRepository
}

func NewEmployeeHandler(repo repository.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{repo: repo}
}

// GET /api/employees
func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)
	employees, total, err := h.repo.List(getUserID(c), page, pageSize, c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(employees, total, page, pageSize))
}

// GET /api/employees/all
func (h *EmployeeHandler) GetAllEmployees(c *fiber.Ctx) error {
	employees, err := h.repo.FindAll(getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"employees": employees, "count": len(employees)})
}

// GET /api/employees/:id
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}
	employee, err := h.repo.FindByID(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(employee)
}

// POST /api/employees
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req partyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	employee := model.Employee{UserID: getUserID(c), Name: req.Name, Note: req.Note}
	if err := h.repo.Create(&employee); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Employee created", "data": employee})
}

// PUT /api/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var req partyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	employee, err := h.repo.FindByID(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	employee.Name = req.Name
	employee.Note = req.Note
	if err := h.repo.Update(employee); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee updated", "data": employee})
}

// DELETE /api/employees/:id. Income and remittance rows keep existing with
// their employee reference cleared.
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}
	if err := h.repo.Delete(getUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}
