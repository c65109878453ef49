package handler

import (
	"time"

	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RemittanceHandler struct {
	repo         repository.RemittanceRepository
	supplierRepo repository.SupplierRepository
	employeeRepo repository.EmployeeRepository
}

func NewRemittanceHandler(repo repository.RemittanceRepository, supplierRepo repository.SupplierRepository, employeeRepo repository.EmployeeRepository) *RemittanceHandler {
	return &RemittanceHandler{repo: repo, supplierRepo: supplierRepo, employeeRepo: employeeRepo}
}

type remittanceRequest struct {
	RemittanceDate *time.Time `json:"remittance_date"`
	SupplierID     *uint      `json:"supplier_id"`
	Amount         *float64   `json:"amount"`
	EmployeeID     *uint      `json:"employee_id"`
	PaymentMethod  *string    `json:"payment_method"`
	Note           *string    `json:"note"`
}

func (h *RemittanceHandler) checkRemittanceRefs(userID uint, supplierID, employeeID *uint) error {
	if supplierID != nil && *supplierID != 0 {
		ok, err := h.supplierRepo.Exists(userID, *supplierID)
		if err != nil {
			return err
		}
		if !ok {
			return service.ErrSupplierNotFound
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

// GET /api/remittance
func (h *RemittanceHandler) GetRemittances(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)
	q := repository.RemittanceQuery{
		Page:       page,
		PageSize:   pageSize,
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		SupplierID: queryUintPtr(c, "supplier_id"),
		EmployeeID: queryUintPtr(c, "employee_id"),
	}
	records, total, err := h.repo.List(getUserID(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(records, total, page, pageSize))
}

// GET /api/remittance/:id
func (h *RemittanceHandler) GetRemittance(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid remittance ID"})
	}
	record, err := h.repo.FindByID(getUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(record)
}

// POST /api/remittance
func (h *RemittanceHandler) CreateRemittance(c *fiber.Ctx) error {
	var req remittanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.RemittanceDate == nil {
		return c.Status(400).JSON(fiber.Map{"error": "remittance_date is required"})
	}
	if req.Amount == nil || *req.Amount < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "amount must be zero or positive"})
	}

	userID := getUserID(c)
	if err := h.checkRemittanceRefs(userID, req.SupplierID, req.EmployeeID); err != nil {
		return fail(c, err)
	}

	record := model.Remittance{
		UserID:         userID,
		RemittanceDate: *req.RemittanceDate,
		SupplierID:     normalizeRef(req.SupplierID),
		Amount:         *req.Amount,
		EmployeeID:     normalizeRef(req.EmployeeID),
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
	return c.Status(201).JSON(fiber.Map{"message": "Remittance recorded", "data": record})
}

// PUT /api/remittance/:id, partial update: only supplied fields change
func (h *RemittanceHandler) UpdateRemittance(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid remittance ID"})
	}

	var req remittanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Amount != nil && *req.Amount < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "amount must be zero or positive"})
	}

	userID := getUserID(c)
	if err := h.checkRemittanceRefs(userID, req.SupplierID, req.EmployeeID); err != nil {
		return fail(c, err)
	}

	fields := map[string]interface{}{}
	if req.RemittanceDate != nil {
		fields["remittance_date"] = *req.RemittanceDate
	}
	if req.SupplierID != nil {
		fields["supplier_id"] = normalizeRef(req.SupplierID)
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
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
	return c.JSON(fiber.Map{"message": "Remittance updated", "data": record})
}

// DELETE /api/remittance/:id
func (h *RemittanceHandler) DeleteRemittance(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid remittance ID"})
	}
	if err := h.repo.Delete(getUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Remittance deleted"})
}
