package repository

import (
	"fmt"
	"testing"

	"go-bizbook/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Supplier{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, userID uint, name string, stock int) *model.Product {
	t.Helper()
	product := &model.Product{UserID: userID, Name: name, Stock: stock, Unit: model.UnitPiece, Version: 1}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestConditionalUpdateApplies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db)
	product := seedProduct(t, db, 1, "Widget", 10)

	err := repo.ConditionalUpdate(db, product.ID, 1, 1, map[string]interface{}{"stock": 7})
	require.NoError(t, err)

	var after model.Product
	require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
	require.Equal(t, 7, after.Stock)
	require.Equal(t, 2, after.Version)
}

func TestConditionalUpdateStaleVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db)
	product := seedProduct(t, db, 1, "Widget", 10)

	require.NoError(t, repo.ConditionalUpdate(db, product.ID, 1, 1, map[string]interface{}{"stock": 7}))

	// Second write against the already-consumed version must not apply.
	err := repo.ConditionalUpdate(db, product.ID, 1, 1, map[string]interface{}{"stock": 4})
	require.ErrorIs(t, err, ErrVersionConflict)

	var after model.Product
	require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
	require.Equal(t, 7, after.Stock)
	require.Equal(t, 2, after.Version)
}

// A wrong owner is indistinguishable from a stale version at this layer: zero
// rows match the predicate.
func TestConditionalUpdateWrongOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db)
	product := seedProduct(t, db, 1, "Widget", 10)

	err := repo.ConditionalUpdate(db, product.ID, 2, 1, map[string]interface{}{"stock": 7})
	require.ErrorIs(t, err, ErrVersionConflict)

	var after model.Product
	require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
	require.Equal(t, 10, after.Stock)
	require.Equal(t, 1, after.Version)
}

func TestUpdateFieldsBumpsVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db)
	product := seedProduct(t, db, 1, "Widget", 10)

	require.NoError(t, repo.UpdateFields(db, product.ID, 1, map[string]interface{}{"description": "blue"}))

	var after model.Product
	require.NoError(t, db.First(&after, "id = ?", product.ID).Error)
	require.Equal(t, "blue", after.Description)
	require.Equal(t, 2, after.Version)
}

func TestUpdateFieldsMissingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db)

	err := repo.UpdateFields(db, 999, 1, map[string]interface{}{"description": "blue"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNameTakenExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db)
	product := seedProduct(t, db, 1, "Widget", 10)
	seedProduct(t, db, 1, "Gadget", 5)

	taken, err := repo.NameTaken(1, "Widget", 0)
	require.NoError(t, err)
	require.True(t, taken)

	// Renaming a product to its own name is not a collision.
	taken, err = repo.NameTaken(1, "Widget", product.ID)
	require.NoError(t, err)
	require.False(t, taken)

	taken, err = repo.NameTaken(1, "Gadget", product.ID)
	require.NoError(t, err)
	require.True(t, taken)

	// Other owners do not collide.
	taken, err = repo.NameTaken(2, "Widget", 0)
	require.NoError(t, err)
	require.False(t, taken)
}

func TestListFiltersBySupplier(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db)

	supplier := model.Supplier{UserID: 1, Name: "Acme"}
	require.NoError(t, db.Create(&supplier).Error)

	withSupplier := model.Product{UserID: 1, Name: "Widget", Unit: model.UnitPiece, Version: 1, SupplierID: &supplier.ID}
	require.NoError(t, db.Create(&withSupplier).Error)
	seedProduct(t, db, 1, "Gadget", 5)

	products, total, err := repo.List(1, ProductQuery{Page: 1, PageSize: 10, SupplierID: &supplier.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Widget", products[0].Name)

	// 0 filters for products with no supplier at all.
	zero := uint(0)
	products, total, err = repo.List(1, ProductQuery{Page: 1, PageSize: 10, SupplierID: &zero})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Gadget", products[0].Name)
}
