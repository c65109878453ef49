package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"
	"go-bizbook/internal/ws"

	"gorm.io/gorm"
)

type SaleCreateInput struct {
	ProductName    string    `json:"product_name" validate:"required,max=255"`
	Quantity       int       `json:"quantity" validate:"required,gt=0"`
	CustomerID     *uint     `json:"customer_id"`
	SaleDate       time.Time `json:"sale_date" validate:"required"`
	TotalSalePrice float64   `json:"total_sale_price" validate:"gte=0"`
	Note           string    `json:"note"`
}

// SaleUpdateInput carries only the fields the caller actually supplied.
// A CustomerID of 0 clears the customer reference.
type SaleUpdateInput struct {
	ProductName    *string    `json:"product_name" validate:"omitempty,min=1,max=255"`
	Quantity       *int       `json:"quantity" validate:"omitempty,gt=0"`
	CustomerID     *uint      `json:"customer_id"`
	SaleDate       *time.Time `json:"sale_date"`
	TotalSalePrice *float64   `json:"total_sale_price" validate:"omitempty,gte=0"`
	Note           *string    `json:"note"`
}

// SaleService links sale records to product stock. Every mutation runs as a
// single unit of work: the sale row write and the version-checked stock
// update commit together or not at all.
type SaleService interface {
	CreateSale(userID uint, username string, in *SaleCreateInput) (*model.Sale, error)
	UpdateSale(userID uint, username string, saleID uint, in *SaleUpdateInput) (*model.Sale, error)
	DeleteSale(userID uint, username string, saleID uint) error
	GetSale(userID, saleID uint) (*model.Sale, error)
	ListSales(userID uint, q repository.SaleQuery) ([]model.Sale, int64, error)
}

type saleService struct {
	db          *gorm.DB
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	audit       AuditLogger
	hub         *ws.Hub
}

func NewSaleService(db *gorm.DB, saleRepo repository.SaleRepository, productRepo repository.ProductRepository, audit AuditLogger, hub *ws.Hub) SaleService {
	return &saleService{
		db:          db,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		audit:       audit,
		hub:         hub,
	}
}

func (s *saleService) CreateSale(userID uint, username string, in *SaleCreateInput) (*model.Sale, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var sale *model.Sale
	var stockAfter int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The product's stock and version are read inside the same unit of
		// work as the eventual write; the conditional update below is the
		// authoritative admission decision.
		var product model.Product
		if err := tx.Where("user_id = ? AND name = ?", userID, in.ProductName).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: '%s'", ErrProductNotFound, in.ProductName)
			}
			return err
		}

		if product.Stock < in.Quantity {
			return fmt.Errorf("%w: current stock %d, cannot sell %d", ErrInsufficientStock, product.Stock, in.Quantity)
		}

		if err := s.requireCustomer(tx, userID, in.CustomerID); err != nil {
			return err
		}

		rec := &model.Sale{
			UserID:         userID,
			ProductName:    in.ProductName,
			Quantity:       in.Quantity,
			CustomerID:     normalizeRef(in.CustomerID),
			SaleDate:       in.SaleDate,
			TotalSalePrice: in.TotalSalePrice,
			Note:           in.Note,
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		stockAfter = product.Stock - in.Quantity
		if err := s.productRepo.ConditionalUpdate(tx, product.ID, userID, product.Version, map[string]interface{}{
			"stock": stockAfter,
		}); err != nil {
			return err
		}

		sale = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogCreate(userID, username, "sale", sale.ID, sale.ProductName, sale)
	s.publishStockUpdate("sale_created", userID, username, sale.ProductName, stockAfter)
	return sale, nil
}

func (s *saleService) UpdateSale(userID uint, username string, saleID uint, in *SaleUpdateInput) (*model.Sale, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.Sale
	var before model.Sale
	var touched []stockChange

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.Where("user_id = ?", userID).First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		before = sale

		oldQuantity := sale.Quantity
		oldName := sale.ProductName

		newQuantity := oldQuantity
		if in.Quantity != nil {
			newQuantity = *in.Quantity
		}
		newName := oldName
		if in.ProductName != nil && *in.ProductName != "" {
			newName = *in.ProductName
		}
		nameChanged := newName != oldName

		// The delta is always computed against the product the sale will
		// reference after the edit.
		var target model.Product
		if err := tx.Where("user_id = ? AND name = ?", userID, newName).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: '%s'", ErrProductNotFound, newName)
			}
			return err
		}

		if err := s.requireCustomer(tx, userID, in.CustomerID); err != nil {
			return err
		}

		fields := map[string]interface{}{}
		if in.ProductName != nil {
			fields["product_name"] = *in.ProductName
		}
		if in.Quantity != nil {
			fields["quantity"] = *in.Quantity
		}
		if in.SaleDate != nil {
			fields["sale_date"] = *in.SaleDate
		}
		if in.CustomerID != nil {
			fields["customer_id"] = normalizeRef(in.CustomerID)
		}
		if in.TotalSalePrice != nil {
			fields["total_sale_price"] = *in.TotalSalePrice
		}
		if in.Note != nil {
			fields["note"] = *in.Note
		}
		if len(fields) == 0 {
			return ErrNoFieldsToUpdate
		}

		if err := tx.Model(&model.Sale{}).
			Where("id = ? AND user_id = ?", saleID, userID).
			Updates(fields).Error; err != nil {
			return err
		}

		if nameChanged {
			// The sale moves to another product: the old product gets its
			// full quantity back, the new product is charged the full new
			// quantity. Both conditional updates must succeed or the whole
			// edit rolls back.
			if target.Stock < newQuantity {
				return fmt.Errorf("%w: current stock %d, cannot sell %d", ErrInsufficientStock, target.Stock, newQuantity)
			}

			var old model.Product
			err := tx.Where("user_id = ? AND name = ?", userID, oldName).First(&old).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				// The old product was deleted after the sale was recorded;
				// its stock divergence already happened and cannot be
				// un-derived. Not fatal.
				log.Printf("sale %d: product '%s' no longer exists, skipping stock restore", saleID, oldName)
			case err != nil:
				return err
			default:
				if err := s.productRepo.ConditionalUpdate(tx, old.ID, userID, old.Version, map[string]interface{}{
					"stock": old.Stock + oldQuantity,
				}); err != nil {
					return err
				}
				touched = append(touched, stockChange{old.Name, old.Stock + oldQuantity})
			}

			if err := s.productRepo.ConditionalUpdate(tx, target.ID, userID, target.Version, map[string]interface{}{
				"stock": target.Stock - newQuantity,
			}); err != nil {
				return err
			}
			touched = append(touched, stockChange{target.Name, target.Stock - newQuantity})
		} else if delta := oldQuantity - newQuantity; delta != 0 {
			// Positive delta restores stock, negative delta consumes more.
			if newQuantity > oldQuantity {
				additional := newQuantity - oldQuantity
				if target.Stock < additional {
					return fmt.Errorf("%w: current stock %d, cannot sell %d more", ErrInsufficientStock, target.Stock, additional)
				}
			}
			newStock := target.Stock + delta
			if newStock < 0 {
				return fmt.Errorf("%w: current stock %d", ErrInsufficientStock, target.Stock)
			}
			if err := s.productRepo.ConditionalUpdate(tx, target.ID, userID, target.Version, map[string]interface{}{
				"stock": newStock,
			}); err != nil {
				return err
			}
			touched = append(touched, stockChange{target.Name, newStock})
		}

		var after model.Sale
		if err := tx.First(&after, "id = ?", saleID).Error; err != nil {
			return err
		}
		updated = &after
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogUpdate(userID, username, "sale", updated.ID, updated.ProductName, &before, updated)
	for _, c := range touched {
		s.publishStockUpdate("sale_updated", userID, username, c.productName, c.newStock)
	}
	return updated, nil
}

func (s *saleService) DeleteSale(userID uint, username string, saleID uint) error {
	var deleted model.Sale
	var restoredStock int
	var restored bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.Where("user_id = ?", userID).First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		deleted = sale

		var product model.Product
		err := tx.Where("user_id = ? AND name = ?", userID, sale.ProductName).First(&product).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Product gone; delete the sale record without a stock mutation.
			log.Printf("sale %d: product '%s' no longer exists, deleting sale without stock restore", saleID, sale.ProductName)
		case err != nil:
			return err
		default:
			restoredStock = product.Stock + sale.Quantity
			if err := s.productRepo.ConditionalUpdate(tx, product.ID, userID, product.Version, map[string]interface{}{
				"stock": restoredStock,
			}); err != nil {
				return err
			}
			restored = true
		}

		return tx.Where("user_id = ?", userID).Delete(&model.Sale{}, "id = ?", saleID).Error
	})
	if err != nil {
		return err
	}

	s.audit.LogDelete(userID, username, "sale", deleted.ID, deleted.ProductName, &deleted)
	if restored {
		s.publishStockUpdate("sale_deleted", userID, username, deleted.ProductName, restoredStock)
	}
	return nil
}

func (s *saleService) GetSale(userID, saleID uint) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(userID, saleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return sale, err
}

func (s *saleService) ListSales(userID uint, q repository.SaleQuery) ([]model.Sale, int64, error) {
	return s.saleRepo.List(userID, q)
}

// requireCustomer validates an optional customer reference inside the unit
// of work; id 0 means "no customer" and always passes.
func (s *saleService) requireCustomer(tx *gorm.DB, userID uint, customerID *uint) error {
	if customerID == nil || *customerID == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&model.Customer{}).
		Where("id = ? AND user_id = ?", *customerID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// normalizeRef maps the caller's "0 clears the reference" convention onto a
// NULL column value.
func normalizeRef(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

type stockChange struct {
	productName string
	newStock    int
}

func (s *saleService) publishStockUpdate(action string, userID uint, username, productName string, newStock int) {
	s.hub.Publish(map[string]interface{}{
		"type":      "stock_update",
		"action":    action,
		"user_id":   userID,
		"username":  username,
		"product":   productName,
		"new_stock": newStock,
	})
}
