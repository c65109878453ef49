package repository

import (
	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindByID(userID, id uint) (*model.Supplier, error)
	List(userID uint, page, pageSize int, search string) ([]model.Supplier, int64, error)
	FindAll(userID uint) ([]model.Supplier, error)
	Exists(userID, id uint) (bool, error)
	Update(supplier *model.Supplier) error
	Delete(userID, id uint) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) FindByID(userID, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.Scopes(OwnedBy(userID)).First(&supplier, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) List(userID uint, page, pageSize int, search string) ([]model.Supplier, int64, error) {
	base := r.db.Model(&model.Supplier{}).Scopes(OwnedBy(userID))
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("name LIKE ? OR note LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []model.Supplier
	err := base.Scopes(Paginate(page, pageSize)).
		Order("updated_at DESC, id DESC").
		Find(&suppliers).Error
	return suppliers, total, err
}

func (r *supplierRepo) FindAll(userID uint) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Scopes(OwnedBy(userID)).Order("name").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) Exists(userID, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Supplier{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete removes the supplier and detaches products and remittance records
// that referenced it. Products are kept (detachment, not cascade).
func (r *supplierRepo) Delete(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Supplier{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Detaching counts as a product mutation, so the version advances and
		// concurrent version-checked writers observe it.
		if err := tx.Model(&model.Product{}).
			Where("user_id = ? AND supplier_id = ?", userID, id).
			Updates(map[string]interface{}{
				"supplier_id": nil,
				"version":     gorm.Expr("version + 1"),
			}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Remittance{}).
			Where("user_id = ? AND supplier_id = ?", userID, id).
			Update("supplier_id", nil).Error
	})
}
