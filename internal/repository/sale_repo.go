package repository

import (
	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

type SaleQuery struct {
	Page     int
	PageSize int
	// Search matches against the denormalized product name.
	Search    string
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive
	// CustomerID filters by customer; 0 means "walk-in / no customer".
	CustomerID *uint
}

// SaleRepository covers reads only. Sale mutations always run inside a unit
// of work owned by the sale service, paired with the product stock update.
type SaleRepository interface {
	FindByID(userID, id uint) (*model.Sale, error)
	List(userID uint, q SaleQuery) ([]model.Sale, int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindByID(userID, id uint) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Scopes(OwnedBy(userID)).First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) List(userID uint, q SaleQuery) ([]model.Sale, int64, error) {
	base := r.db.Model(&model.Sale{}).Scopes(OwnedBy(userID))

	if q.Search != "" {
		base = base.Where("product_name LIKE ?", "%"+q.Search+"%")
	}
	if q.StartDate != "" {
		base = base.Where("date(sale_date) >= date(?)", q.StartDate)
	}
	if q.EndDate != "" {
		base = base.Where("date(sale_date) <= date(?)", q.EndDate)
	}
	if q.CustomerID != nil {
		if *q.CustomerID == 0 {
			base = base.Where("customer_id IS NULL OR customer_id = 0")
		} else {
			base = base.Where("customer_id = ?", *q.CustomerID)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []model.Sale
	err := base.Scopes(Paginate(q.Page, q.PageSize)).
		Order("sale_date DESC, id DESC").
		Find(&sales).Error
	return sales, total, err
}
