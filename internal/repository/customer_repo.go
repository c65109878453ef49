package repository

import (
	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByID(userID, id uint) (*model.Customer, error)
	List(userID uint, page, pageSize int, search string) ([]model.Customer, int64, error)
	FindAll(userID uint) ([]model.Customer, error)
	Exists(userID, id uint) (bool, error)
	Update(customer *model.Customer) error
	Delete(userID, id uint) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindByID(userID, id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Scopes(OwnedBy(userID)).First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) List(userID uint, page, pageSize int, search string) ([]model.Customer, int64, error) {
	base := r.db.Model(&model.Customer{}).Scopes(OwnedBy(userID))
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("name LIKE ? OR note LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []model.Customer
	err := base.Scopes(Paginate(page, pageSize)).
		Order("updated_at DESC, id DESC").
		Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) FindAll(userID uint) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Scopes(OwnedBy(userID)).Order("name").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Exists(userID, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Customer{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

// Delete removes the customer and detaches dependent records: sales and
// income rows keep existing but their customer reference is nulled out.
func (r *customerRepo) Delete(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Customer{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&model.Sale{}).
			Where("user_id = ? AND customer_id = ?", userID, id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&model.Income{}).
			Where("user_id = ? AND customer_id = ?", userID, id).
			Update("customer_id", nil).Error
	})
}
