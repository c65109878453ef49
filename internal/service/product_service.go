package service

import (
	"errors"
	"fmt"

	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"
	"go-bizbook/internal/ws"

	"gorm.io/gorm"
)

type ProductCreateInput struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description"`
	Stock       int        `json:"stock" validate:"gte=0"`
	Unit        model.Unit `json:"unit" validate:"omitempty,oneof=piece box kg g l ml m"`
	SupplierID  *uint      `json:"supplier_id"`
}

// ProductUpdateInput carries only the fields the caller supplied. Version is
// optional: when present the update is conditioned on it, when absent the
// version is still bumped but the write is last-write-wins. Stock corrections
// must go through StockAdjustInput instead, which always requires a version.
type ProductUpdateInput struct {
	Name        *string     `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string     `json:"description"`
	Stock       *int        `json:"stock" validate:"omitempty,gte=0"`
	Unit        *model.Unit `json:"unit" validate:"omitempty,oneof=piece box kg g l ml m"`
	SupplierID  *uint       `json:"supplier_id"` // 0 unassigns the supplier
	Version     *int        `json:"version" validate:"omitempty,gte=1"`
}

type StockAdjustInput struct {
	// Quantity is the signed delta: positive receives stock, negative
	// consumes it.
	Quantity int `json:"quantity" validate:"required"`
	// Version is the product version the caller last observed.
	Version int `json:"version" validate:"required,gte=1"`
}

type ProductService interface {
	CreateProduct(userID uint, username string, in *ProductCreateInput) (*model.Product, error)
	UpdateProduct(userID uint, username string, productID uint, in *ProductUpdateInput) (*model.Product, error)
	AdjustStock(userID uint, username string, productID uint, in *StockAdjustInput) (*model.Product, error)
	DeleteProduct(userID uint, username string, productID uint) error
	GetProduct(userID, productID uint) (*model.Product, error)
	ListProducts(userID uint, q repository.ProductQuery) ([]model.Product, int64, error)
	SearchProducts(userID uint, search string) ([]model.Product, error)
}

type productService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	audit       AuditLogger
	hub         *ws.Hub
}

func NewProductService(db *gorm.DB, productRepo repository.ProductRepository, audit AuditLogger, hub *ws.Hub) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		audit:       audit,
		hub:         hub,
	}
}

func (s *productService) CreateProduct(userID uint, username string, in *ProductCreateInput) (*model.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	taken, err := s.productRepo.NameTaken(userID, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: '%s'", ErrProductNameTaken, in.Name)
	}

	if err := s.requireSupplier(userID, in.SupplierID); err != nil {
		return nil, err
	}

	unit := in.Unit
	if unit == "" {
		unit = model.UnitPiece
	}
	product := &model.Product{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Stock:       in.Stock,
		Unit:        unit,
		SupplierID:  normalizeRef(in.SupplierID),
		Version:     1,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.audit.LogCreate(userID, username, "product", product.ID, product.Name, product)
	return product, nil
}

func (s *productService) UpdateProduct(userID uint, username string, productID uint, in *ProductUpdateInput) (*model.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.Product
	var before *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Where("user_id = ?", userID).First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		before = &product

		// Early conflict check so the caller gets a clear message with both
		// versions; the conditional update below remains the authority.
		if in.Version != nil && *in.Version != product.Version {
			return fmt.Errorf("%w (stored version %d, your version %d)", repository.ErrVersionConflict, product.Version, *in.Version)
		}

		if in.Name != nil && *in.Name != product.Name {
			taken, err := s.productRepo.NameTaken(userID, *in.Name, productID)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: '%s'", ErrProductNameTaken, *in.Name)
			}
		}

		if in.SupplierID != nil && *in.SupplierID != 0 {
			if err := s.requireSupplier(userID, in.SupplierID); err != nil {
				return err
			}
		}

		fields := map[string]interface{}{}
		if in.Name != nil {
			fields["name"] = *in.Name
		}
		if in.Description != nil {
			fields["description"] = *in.Description
		}
		if in.Stock != nil {
			fields["stock"] = *in.Stock
		}
		if in.Unit != nil {
			fields["unit"] = *in.Unit
		}
		if in.SupplierID != nil {
			fields["supplier_id"] = normalizeRef(in.SupplierID)
		}
		if len(fields) == 0 {
			return ErrNoFieldsToUpdate
		}

		if in.Version != nil {
			if err := s.productRepo.ConditionalUpdate(tx, productID, userID, *in.Version, fields); err != nil {
				return err
			}
		} else {
			// No version supplied: bump it but do not condition on it. A
			// weaker, last-write-wins guarantee reserved for non-contended
			// fields; concurrent stock writers are still protected because
			// their own conditional updates will observe the bump.
			if err := s.productRepo.UpdateFields(tx, productID, userID, fields); err != nil {
				return err
			}
		}

		var after model.Product
		if err := tx.First(&after, "id = ?", productID).Error; err != nil {
			return err
		}
		updated = &after
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogUpdate(userID, username, "product", updated.ID, updated.Name, before, updated)
	if before.Stock != updated.Stock {
		s.publishStockUpdate("product_updated", userID, username, updated.Name, updated.Stock)
	}
	return updated, nil
}

// AdjustStock is the direct stock correction path (purchase receipts, manual
// recounts). The caller supplies the signed delta together with the version
// it last observed; a stale version surfaces as a conflict, never as a
// silently-applied write.
func (s *productService) AdjustStock(userID uint, username string, productID uint, in *StockAdjustInput) (*model.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.Product
	var before *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Where("user_id = ?", userID).First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		before = &product

		if in.Version != product.Version {
			return fmt.Errorf("%w (stored version %d, your version %d)", repository.ErrVersionConflict, product.Version, in.Version)
		}

		newStock := product.Stock + in.Quantity
		if newStock < 0 {
			return fmt.Errorf("%w: current stock %d, cannot remove %d", ErrInsufficientStock, product.Stock, -in.Quantity)
		}

		if err := s.productRepo.ConditionalUpdate(tx, productID, userID, in.Version, map[string]interface{}{
			"stock": newStock,
		}); err != nil {
			return err
		}

		var after model.Product
		if err := tx.First(&after, "id = ?", productID).Error; err != nil {
			return err
		}
		updated = &after
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogUpdate(userID, username, "product", updated.ID, updated.Name, before, updated)
	s.publishStockUpdate("stock_adjusted", userID, username, updated.Name, updated.Stock)
	return updated, nil
}

func (s *productService) DeleteProduct(userID uint, username string, productID uint) error {
	product, err := s.productRepo.FindByID(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Sales referencing the product by name are kept as historical records.
	s.audit.LogDelete(userID, username, "product", product.ID, product.Name, product)
	return nil
}

func (s *productService) GetProduct(userID, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return product, err
}

func (s *productService) ListProducts(userID uint, q repository.ProductQuery) ([]model.Product, int64, error) {
	return s.productRepo.List(userID, q)
}

func (s *productService) SearchProducts(userID uint, search string) ([]model.Product, error) {
	return s.productRepo.SearchAll(userID, search)
}

func (s *productService) requireSupplier(userID uint, supplierID *uint) error {
	if supplierID == nil || *supplierID == 0 {
		return nil
	}
	var count int64
	if err := s.db.Model(&model.Supplier{}).
		Where("id = ? AND user_id = ?", *supplierID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

func (s *productService) publishStockUpdate(action string, userID uint, username, productName string, newStock int) {
	s.hub.Publish(map[string]interface{}{
		"type":      "stock_update",
		"action":    action,
		"user_id":   userID,
		"username":  username,
		"product":   productName,
		"new_stock": newStock,
	})
}
