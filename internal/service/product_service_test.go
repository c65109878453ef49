package service

import (
	"testing"
	"time"

	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestCreateProductDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")

	product, err := svc.CreateProduct(user.ID, user.Username, &ProductCreateInput{
		Name:  "Widget",
		Stock: 5,
	})
	require.NoError(t, err)
	require.Equal(t, model.UnitPiece, product.Unit)
	require.Equal(t, 1, product.Version)
	require.Nil(t, product.SupplierID)
}

func TestCreateProductDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")

	_, err := svc.CreateProduct(user.ID, user.Username, &ProductCreateInput{Name: "Widget"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(user.ID, user.Username, &ProductCreateInput{Name: "Widget"})
	require.ErrorIs(t, err, ErrProductNameTaken)
}

func TestCreateProductSameNameDifferentOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.CreateProduct(alice.ID, alice.Username, &ProductCreateInput{Name: "Widget"})
	require.NoError(t, err)

	// Name uniqueness is per owner.
	_, err = svc.CreateProduct(bob.ID, bob.Username, &ProductCreateInput{Name: "Widget"})
	require.NoError(t, err)
}

func TestCreateProductUnknownSupplier(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")

	supplier := uint(42)
	_, err := svc.CreateProduct(user.ID, user.Username, &ProductCreateInput{
		Name:       "Widget",
		SupplierID: &supplier,
	})
	require.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestAdjustStockVersioned(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	updated, err := svc.AdjustStock(user.ID, user.Username, product.ID, &StockAdjustInput{
		Quantity: 5,
		Version:  1,
	})
	require.NoError(t, err)
	require.Equal(t, 15, updated.Stock)
	require.Equal(t, 2, updated.Version)

	updated, err = svc.AdjustStock(user.ID, user.Username, product.ID, &StockAdjustInput{
		Quantity: -8,
		Version:  2,
	})
	require.NoError(t, err)
	require.Equal(t, 7, updated.Stock)
	require.Equal(t, 3, updated.Version)
}

// Two callers adjusting from the same observed version: the first wins, the
// second gets a conflict and its delta is never applied.
func TestAdjustStockStaleVersion(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	_, err := svc.AdjustStock(user.ID, user.Username, product.ID, &StockAdjustInput{
		Quantity: 5,
		Version:  1,
	})
	require.NoError(t, err)

	_, err = svc.AdjustStock(user.ID, user.Username, product.ID, &StockAdjustInput{
		Quantity: 5,
		Version:  1,
	})
	require.ErrorIs(t, err, repository.ErrVersionConflict)

	after := reloadProduct(t, db, product.ID)
	require.Equal(t, 15, after.Stock)
	require.Equal(t, 2, after.Version)
}

func TestAdjustStockNeverNegative(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 3)

	_, err := svc.AdjustStock(user.ID, user.Username, product.ID, &StockAdjustInput{
		Quantity: -5,
		Version:  1,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	after := reloadProduct(t, db, product.ID)
	require.Equal(t, 3, after.Stock)
	require.Equal(t, 1, after.Version)
}

func TestUpdateProductWithVersion(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	name := "Gadget"
	version := 1
	updated, err := svc.UpdateProduct(user.ID, user.Username, product.ID, &ProductUpdateInput{
		Name:    &name,
		Version: &version,
	})
	require.NoError(t, err)
	require.Equal(t, "Gadget", updated.Name)
	require.Equal(t, 2, updated.Version)
}

func TestUpdateProductStaleVersion(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	name := "Gadget"
	stale := 7
	_, err := svc.UpdateProduct(user.ID, user.Username, product.ID, &ProductUpdateInput{
		Name:    &name,
		Version: &stale,
	})
	require.ErrorIs(t, err, repository.ErrVersionConflict)
	require.Equal(t, "Widget", reloadProduct(t, db, product.ID).Name)
}

// A version-less update is last-write-wins but still bumps the version, so any
// concurrent version-checked writer observes the change.
func TestUpdateProductWithoutVersionBumps(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	desc := "restocked weekly"
	updated, err := svc.UpdateProduct(user.ID, user.Username, product.ID, &ProductUpdateInput{
		Description: &desc,
	})
	require.NoError(t, err)
	require.Equal(t, 2, updated.Version)

	_, err = svc.AdjustStock(user.ID, user.Username, product.ID, &StockAdjustInput{
		Quantity: 1,
		Version:  1,
	})
	require.ErrorIs(t, err, repository.ErrVersionConflict)
}

func TestUpdateProductNoFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	_, err := svc.UpdateProduct(user.ID, user.Username, product.ID, &ProductUpdateInput{})
	require.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestProductScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	alice := seedUser(t, db, "alice")
	mallory := seedUser(t, db, "mallory")
	product := seedProduct(t, db, alice.ID, "Widget", 10)

	_, err := svc.GetProduct(mallory.ID, product.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AdjustStock(mallory.ID, mallory.Username, product.ID, &StockAdjustInput{
		Quantity: 5,
		Version:  1,
	})
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, svc.DeleteProduct(mallory.ID, mallory.Username, product.ID), ErrNotFound)
}

func TestDeleteProductKeepsSales(t *testing.T) {
	db := setupTestDB(t)
	productSvc := newProductService(db)
	saleSvc := newSaleService(db)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user.ID, "Widget", 10)

	sale, err := saleSvc.CreateSale(user.ID, user.Username, &SaleCreateInput{
		ProductName: "Widget",
		Quantity:    2,
		SaleDate:    time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, productSvc.DeleteProduct(user.ID, user.Username, product.ID))

	// The sale survives as a historical record.
	kept, err := saleSvc.GetSale(user.ID, sale.ID)
	require.NoError(t, err)
	require.Equal(t, "Widget", kept.ProductName)
}
