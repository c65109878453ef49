package repository

import (
	"errors"

	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a conditional update matched no row:
// the caller's observed version went stale, or the row vanished. The caller
// must reload and resubmit; nothing here retries automatically.
var ErrVersionConflict = errors.New("record was modified by another operation, please reload and retry")

type ProductQuery struct {
	Page     int
	PageSize int
	Search   string
	// SupplierID filters by supplier; 0 means "no supplier assigned".
	SupplierID *uint
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(userID, id uint) (*model.Product, error)
	FindByName(userID uint, name string) (*model.Product, error)
	List(userID uint, q ProductQuery) ([]model.Product, int64, error)
	SearchAll(userID uint, search string) ([]model.Product, error)
	NameTaken(userID uint, name string, excludeID uint) (bool, error)
	ConditionalUpdate(tx *gorm.DB, id, userID uint, expectedVersion int, fields map[string]interface{}) error
	UpdateFields(tx *gorm.DB, id, userID uint, fields map[string]interface{}) error
	Delete(userID, id uint) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	if product.Version == 0 {
		product.Version = 1
	}
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(userID, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Scopes(OwnedBy(userID)).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByName(userID uint, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.Scopes(OwnedBy(userID)).First(&product, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) List(userID uint, q ProductQuery) ([]model.Product, int64, error) {
	base := r.db.Model(&model.Product{}).Scopes(OwnedBy(userID))

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if q.SupplierID != nil {
		if *q.SupplierID == 0 {
			base = base.Where("supplier_id IS NULL OR supplier_id = 0")
		} else {
			base = base.Where("supplier_id = ?", *q.SupplierID)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := base.Scopes(Paginate(q.Page, q.PageSize)).
		Order("updated_at DESC, id DESC").
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) SearchAll(userID uint, search string) ([]model.Product, error) {
	pattern := "%" + search + "%"
	var products []model.Product
	err := r.db.Scopes(OwnedBy(userID)).
		Where("name LIKE ? OR description LIKE ?", pattern, pattern).
		Order("name").
		Limit(50).
		Find(&products).Error
	return products, err
}

func (r *productRepo) NameTaken(userID uint, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Scopes(OwnedBy(userID)).
		Where("name = ? AND id != ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ConditionalUpdate is the only sanctioned way to mutate a product's stock.
// It applies the given column assignments together with version = version + 1
// in a single statement whose predicate includes the caller's observed
// version; the affected-row count proves or disproves success atomically.
// It accepts a tx handle so the caller can pair the stock write with its
// domain record write in one unit of work.
func (r *productRepo) ConditionalUpdate(tx *gorm.DB, id, userID uint, expectedVersion int, fields map[string]interface{}) error {
	assign := map[string]interface{}{
		"version": gorm.Expr("version + 1"),
	}
	for k, v := range fields {
		assign[k] = v
	}

	res := tx.Model(&model.Product{}).
		Where("id = ? AND user_id = ? AND version = ?", id, userID, expectedVersion).
		Updates(assign)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrVersionConflict
	}
	return nil
}

// UpdateFields bumps the version without conditioning the predicate on it.
// This is the deliberately weaker guarantee used for non-contended fields
// (name, description) when the client did not send a version; stock writes
// must use ConditionalUpdate instead.
func (r *productRepo) UpdateFields(tx *gorm.DB, id, userID uint, fields map[string]interface{}) error {
	assign := map[string]interface{}{
		"version": gorm.Expr("version + 1"),
	}
	for k, v := range fields {
		assign[k] = v
	}

	res := tx.Model(&model.Product{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(assign)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Delete(userID, id uint) error {
	res := r.db.Scopes(OwnedBy(userID)).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
