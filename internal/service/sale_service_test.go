package service

import (
	"testing"
	"time"

	"go-bizbook/internal/model"

	"github.com/stretchr/testify/require"
)

func TestCreateSaleDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	sale, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName:    "Widget",
		Quantity:       3,
		SaleDate:       time.Now(),
		TotalSalePrice: 30,
	})
	require.NoError(t, err)
	require.Equal(t, "Widget", sale.ProductName)
	require.Equal(t, 3, sale.Quantity)

	after := reloadProduct(t, db, product.ID)
	require.Equal(t, 7, after.Stock)
	require.Equal(t, 2, after.Version)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 2)

	_, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    5,
		SaleDate:    time.Now(),
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing committed: no sale row, stock and version untouched.
	var count int64
	require.NoError(t, db.Model(&model.Sale{}).Count(&count).Error)
	require.Zero(t, count)
	after := reloadProduct(t, db, product.ID)
	require.Equal(t, 2, after.Stock)
	require.Equal(t, 1, after.Version)
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")

	_, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Nothing",
		Quantity:    1,
		SaleDate:    time.Now(),
	})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateSaleUnknownCustomerRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	badCustomer := uint(99)
	_, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    2,
		CustomerID:  &badCustomer,
		SaleDate:    time.Now(),
	})
	require.ErrorIs(t, err, ErrCustomerNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Sale{}).Count(&count).Error)
	require.Zero(t, count)
	after := reloadProduct(t, db, product.ID)
	require.Equal(t, 10, after.Stock)
	require.Equal(t, 1, after.Version)
}

// Editing a sale reconciles stock by the quantity delta: raising the quantity
// consumes more stock, lowering it gives stock back. Each stock write bumps
// the product version.
func TestUpdateSaleQuantityDelta(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 100)

	sale, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    10,
		SaleDate:    time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, 90, reloadProduct(t, db, product.ID).Stock)

	fifteen := 15
	_, err = svc.UpdateSale(user.ID, user.Username, sale.ID, &SaleUpdateInput{Quantity: &fifteen})
	require.NoError(t, err)
	after := reloadProduct(t, db, product.ID)
	require.Equal(t, 85, after.Stock)
	require.Equal(t, 3, after.Version)

	three := 3
	updated, err := svc.UpdateSale(user.ID, user.Username, sale.ID, &SaleUpdateInput{Quantity: &three})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Quantity)
	after = reloadProduct(t, db, product.ID)
	require.Equal(t, 97, after.Stock)
	require.Equal(t, 4, after.Version)
}

func TestUpdateSaleInsufficientStockForIncrease(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	sale, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    8,
		SaleDate:    time.Now(),
	})
	require.NoError(t, err)

	// Stock is 2; raising the sale from 8 to 20 needs 12 more.
	twenty := 20
	_, err = svc.UpdateSale(user.ID, user.Username, sale.ID, &SaleUpdateInput{Quantity: &twenty})
	require.ErrorIs(t, err, ErrInsufficientStock)

	after := reloadProduct(t, db, product.ID)
	require.Equal(t, 2, after.Stock)
	require.Equal(t, 2, after.Version)
	reloaded, err := svc.GetSale(user.ID, sale.ID)
	require.NoError(t, err)
	require.Equal(t, 8, reloaded.Quantity)
}

// Moving a sale to another product restores the full old quantity to the old
// product and charges the full new quantity to the new one, atomically.
func TestUpdateSaleCrossProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	productA := seedProduct(t, db, user.ID, "Alpha", 50)
	productB := seedProduct(t, db, user.ID, "Beta", 20)

	sale, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Alpha",
		Quantity:    10,
		SaleDate:    time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, 40, reloadProduct(t, db, productA.ID).Stock)

	beta := "Beta"
	five := 5
	updated, err := svc.UpdateSale(user.ID, user.Username, sale.ID, &SaleUpdateInput{
		ProductName: &beta,
		Quantity:    &five,
	})
	require.NoError(t, err)
	require.Equal(t, "Beta", updated.ProductName)
	require.Equal(t, 5, updated.Quantity)

	afterA := reloadProduct(t, db, productA.ID)
	require.Equal(t, 50, afterA.Stock)
	require.Equal(t, 3, afterA.Version)
	afterB := reloadProduct(t, db, productB.ID)
	require.Equal(t, 15, afterB.Stock)
	require.Equal(t, 2, afterB.Version)
}

func TestUpdateSaleCrossProductInsufficientTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	productA := seedProduct(t, db, user.ID, "Alpha", 50)
	productB := seedProduct(t, db, user.ID, "Beta", 3)

	sale, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Alpha",
		Quantity:    10,
		SaleDate:    time.Now(),
	})
	require.NoError(t, err)

	beta := "Beta"
	_, err = svc.UpdateSale(user.ID, user.Username, sale.ID, &SaleUpdateInput{ProductName: &beta})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Whole edit rolled back: the sale still points at Alpha and no stock moved.
	reloaded, err := svc.GetSale(user.ID, sale.ID)
	require.NoError(t, err)
	require.Equal(t, "Alpha", reloaded.ProductName)
	require.Equal(t, 40, reloadProduct(t, db, productA.ID).Stock)
	require.Equal(t, 3, reloadProduct(t, db, productB.ID).Stock)
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	sale, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    4,
		SaleDate:    time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, 6, reloadProduct(t, db, product.ID).Stock)

	require.NoError(t, svc.DeleteSale(user.ID, user.Username, sale.ID))

	after := reloadProduct(t, db, product.ID)
	require.Equal(t, 10, after.Stock)
	require.Equal(t, 3, after.Version)

	_, err = svc.GetSale(user.ID, sale.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSaleMissingProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	sale, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    4,
		SaleDate:    time.Now(),
	})
	require.NoError(t, err)

	// Product disappears after the sale was recorded; the sale delete still
	// goes through, just without a stock restore.
	require.NoError(t, db.Delete(&model.Product{}, "id = ?", product.ID).Error)

	require.NoError(t, svc.DeleteSale(user.ID, user.Username, sale.ID))
	_, err = svc.GetSale(user.ID, sale.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaleScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	alice := seedUser(t, db, "alice")
	mallory := seedUser(t, db, "mallory")
	seedProduct(t, db, alice.ID, "Widget", 10)

	sale, err := svc.CreateSale(alice.ID, alice.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    1,
		SaleDate:    time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.GetSale(mallory.ID, sale.ID)
	require.ErrorIs(t, err, ErrNotFound)

	two := 2
	_, err = svc.UpdateSale(mallory.ID, mallory.Username, sale.ID, &SaleUpdateInput{Quantity: &two})
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, svc.DeleteSale(mallory.ID, mallory.Username, sale.ID), ErrNotFound)
}

func TestCreateSaleValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newSaleService(db)
	user := seedUser(t, db, "alice")
	seedProduct(t, db, user.ID, "Widget", 10)

	_, err := svc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    -1,
		SaleDate:    time.Now(),
	})
	require.ErrorIs(t, err, ErrValidation)
}
