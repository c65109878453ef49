package repository

import (
	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

type RemittanceQuery struct {
	Page       int
	PageSize   int
	StartDate  string // YYYY-MM-DD, inclusive
	EndDate    string // YYYY-MM-DD, inclusive
	SupplierID *uint  // 0 means "no supplier"
	EmployeeID *uint  // 0 means "no employee"
}

type RemittanceRepository interface {
	Create(remittance *model.Remittance) error
	FindByID(userID, id uint) (*model.Remittance, error)
	List(userID uint, q RemittanceQuery) ([]model.Remittance, int64, error)
	UpdateFields(userID, id uint, fields map[string]interface{}) error
	Delete(userID, id uint) error
}

type remittanceRepo struct {
	db *gorm.DB
}

func NewRemittanceRepo(db *gorm.DB) RemittanceRepository {
	return &remittanceRepo{db}
}

func (r *remittanceRepo) Create(remittance *model.Remittance) error {
	return r.db.Create(remittance).Error
}

func (r *remittanceRepo) FindByID(userID, id uint) (*model.Remittance, error) {
	var remittance model.Remittance
	err := r.db.Scopes(OwnedBy(userID)).First(&remittance, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &remittance, nil
}

func (r *remittanceRepo) List(userID uint, q RemittanceQuery) ([]model.Remittance, int64, error) {
	base := r.db.Model(&model.Remittance{}).Scopes(OwnedBy(userID))

	if q.StartDate != "" {
		base = base.Where("date(remittance_date) >= date(?)", q.StartDate)
	}
	if q.EndDate != "" {
		base = base.Where("date(remittance_date) <= date(?)", q.EndDate)
	}
	if q.SupplierID != nil {
		if *q.SupplierID == 0 {
			base = base.Where("supplier_id IS NULL OR supplier_id = 0")
		} else {
			base = base.Where("supplier_id = ?", *q.SupplierID)
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

	var records []model.Remittance
	err := base.Scopes(Paginate(q.Page, q.PageSize)).
		Order("remittance_date DESC, id DESC").
		Find(&records).Error
	return records, total, err
}

func (r *remittanceRepo) UpdateFields(userID, id uint, fields map[string]interface{}) error {
	res := r.db.Model(&model.Remittance{}).
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

func (r *remittanceRepo) Delete(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Remittance{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
