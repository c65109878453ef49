package repository

import (
	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *model.Employee) error
	FindByID(userID, id uint) (*model.Employee, error)
	List(userID uint, page, pageSize int, search string) ([]model.Employee, int64, error)
	FindAll(userID uint) ([]model.Employee, error)
	Exists(userID, id uint) (bool, error)
	Update(employee *model.Employee) error
	Delete(userID, id uint) error
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db}
}

func (r *employeeRepo) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepo) FindByID(userID, id uint) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.Scopes(OwnedBy(userID)).First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) List(userID uint, page, pageSize int, search string) ([]model.Employee, int64, error) {
	base := r.db.Model(&model.Employee{}).Scopes(OwnedBy(userID))
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("name LIKE ? OR note LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []model.Employee
	err := base.Scopes(Paginate(page, pageSize)).
		Order("updated_at DESC, id DESC").
		Find(&employees).Error
	return employees, total, err
}

func (r *employeeRepo) FindAll(userID uint) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.Scopes(OwnedBy(userID)).Order("name").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Exists(userID, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Employee{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *employeeRepo) Update(employee *model.Employee) error {
	return r.db.Save(employee).Error
}

// Delete removes the employee and nulls out references from income and
// remittance records.
func (r *employeeRepo) Delete(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Employee{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&model.Income{}).
			Where("user_id = ? AND employee_id = ?", userID, id).
			Update("employee_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&model.Remittance{}).
			Where("user_id = ? AND employee_id = ?", userID, id).
			Update("employee_id", nil).Error
	})
}
