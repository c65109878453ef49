package handler

import (
	"time"

	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IncomeHandler struct {
	repo         repository.IncomeRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
}

func NewIncomeHandler(repo repository.IncomeRepository, customerRepo repository.CustomerRepository, employeeRepo repository.EmployeeRepository) *IncomeHandler {
	return &IncomeHandler{repo: repo, customerRepo: customerRepo, employeeRepo: employeeRepo}
}

type incomeRequest struct {
	IncomeDate    *time.Time `json:"income_date"`
	CustomerID    *uint      `json:"customer_id"`
	Amount        *float64   `json:"amount"`
	Discount      *float64   `json:"discount"`
	EmployeeID    *uint      `json:"employee_id"`
	PaymentMethod *string    `json:"payment_method"`
	Note          *string    `json:"note"`
}

// checkIncomeRefs verifies that supplied customer/employee references belong
// to the caller. A 0 reference means "clear it" and is always allowed.
func (h *IncomeHandler) checkIncomeRefs(userID uint, customerID, employeeID *uint) error {
	if customerID != nil && *customerID != 0 {
		ok, err := h.customerRepo.Exists(userID, *customerID)
		if err != nil {
			return err
		}
		if !ok {
			return service.ErrCustomerNotFound
		}
	}
	if employeeID != nil && *employeeID != 0 {
		ok, err := h.employeeRepo.Exists(userID, *employeeID)
		if err != nil {
			return err
		}
		if !ok {
			return service.ErrEmployeeNotFound
		}
	}
	return nil
}

func normalizeRef(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// GET /api/income
func (h *IncomeHandler) GetIncomes(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)
	q := repository.IncomeQuery{
		Page:       page,
		PageSize:   pageSize,
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		CustomerID: queryUintPtr(c, "customer_id"),
		EmployeeID: queryUintPtr(c, "employee_id"),
	}
	records, total, err := h.repo.List(getUserID(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(records, total, page, pageSize))
}

// GET /api/income/:id
func (h *IncomeHandler) GetIncome(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid income ID"})
	}
	record, err := h.repo.FindByID(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(record)
}

// POST /api/income
func (h *IncomeHandler) CreateIncome(c *fiber.Ctx) error {
	var req incomeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.IncomeDate == nil {
		return c.Status(400).JSON(fiber.Map{"error": "income_date is required"})
	}
	if req.Amount == nil || *req.Amount < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "amount must be zero or positive"})
	}
	if req.Discount != nil && *req.Discount < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "discount must be zero or positive"})
	}

	userID := getUserID(c)
	if err := h.checkIncomeRefs(userID, req.CustomerID, req.EmployeeID); err != nil {
		return fail(c, err)
	}

	record := model.Income{
		UserID:     userID,
		IncomeDate: *req.IncomeDate,
		CustomerID: normalizeRef(req.CustomerID),
		Amount:     *req.Amount,
		EmployeeID: normalizeRef(req.EmployeeID),
	}
	if req.Discount != nil {
		record.Discount = *req.Discount
	}
	if req.PaymentMethod != nil {
		record.PaymentMethod = *req.PaymentMethod
	}
	if req.Note != nil {
		record.Note = *req.Note
	}

	if err := h.repo.Create(&record); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Income recorded", "data": record})
}

// PUT /api/income/:id, partial update: only supplied fields change
func (h *IncomeHandler) UpdateIncome(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid income ID"})
	}

	var req incomeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Amount != nil && *req.Amount < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "amount must be zero or positive"})
	}
	if req.Discount != nil && *req.Discount < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "discount must be zero or positive"})
	}

	userID := getUserID(c)
	if err := h.checkIncomeRefs(userID, req.CustomerID, req.EmployeeID); err != nil {
		return fail(c, err)
	}

	fields := map[string]interface{}{}
	if req.IncomeDate != nil {
		fields["income_date"] = *req.IncomeDate
	}
	if req.CustomerID != nil {
		fields["customer_id"] = normalizeRef(req.CustomerID)
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.EmployeeID != nil {
		fields["employee_id"] = normalizeRef(req.EmployeeID)
	}
	if req.PaymentMethod != nil {
		fields["payment_method"] = *req.PaymentMethod
	}
	if req.Note != nil {
		fields["note"] = *req.Note
	}
	if len(fields) == 0 {
		return fail(c, service.ErrNoFieldsToUpdate)
	}

	if err := h.repo.UpdateFields(userID, id, fields); err != nil {
		return fail(c, err)
	}
	record, err := h.repo.FindByID(userID, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Income updated", "data": record})
}

// DELETE /api/income/:id
func (h *IncomeHandler) DeleteIncome(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid income ID"})
	}
	if err := h.repo.Delete(getUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Income deleted"})
}
