package repository

import (
	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

type IncomeQuery struct {
	Page       int
	PageSize   int
	StartDate  string // YYYY-MM-DD, inclusive
	EndDate    string // YYYY-MM-DD, inclusive
	CustomerID *uint  // 0 means "no customer"
	EmployeeID *uint  // 0 means "no employee"
}

type IncomeRepository interface {
	Create(income *model.Income) error
	FindByID(userID, id uint) (*model.Income, error)
	List(userID uint, q IncomeQuery) ([]model.Income, int64, error)
	UpdateFields(userID, id uint, fields map[string]interface{}) error
	Delete(userID, id uint) error
}

type incomeRepo struct {
	db *gorm.DB
}

func NewIncomeRepo(db *gorm.DB) IncomeRepository {
	return &incomeRepo{db}
}

func (r *incomeRepo) Create(income *model.Income) error {
	return r.db.Create(income).Error
}

func (r *incomeRepo) FindByID(userID, id uint) (*model.Income, error) {
	var income model.Income
	err := r.db.Scopes(OwnedBy(userID)).First(&income, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *incomeRepo) List(userID uint, q IncomeQuery) ([]model.Income, int64, error) {
	base := r.db.Model(&model.Income{}).Scopes(OwnedBy(userID))

	if q.StartDate != "" {
		base = base.Where("date(income_date) >= date(?)", q.StartDate)
	}
	if q.EndDate != "" {
		base = base.Where("date(income_date) <= date(?)", q.EndDate)
	}
	if q.CustomerID != nil {
		if *q.CustomerID == 0 {
			base = base.Where("customer_id IS NULL OR customer_id = 0")
		} else {
			base = base.Where("customer_id = ?", *q.CustomerID)
		}
	}
	if q.EmployeeID != nil {
		if *q.EmployeeID == 0 {
			base = base.Where("employee_id IS NULL OR employee_id = 0")
		} else {
			base = base.Where("employee_id = ?", *q.EmployeeID)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.Income
	err := base.Scopes(Paginate(q.Page, q.PageSize)).
		Order("income_date DESC, id DESC").
		Find(&records).Error
	return records, total, err
}

func (r *incomeRepo) UpdateFields(userID, id uint, fields map[string]interface{}) error {
	res := r.db.Model(&model.Income{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *incomeRepo) Delete(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Income{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
