package repository

import (
	"testing"
	"time"

	"go-bizbook/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCustomerDeleteDetachesReferences(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.Customer{}, &model.Sale{}, &model.Income{}))
	repo := NewCustomerRepo(db)

	customer := model.Customer{UserID: 1, Name: "Acme"}
	require.NoError(t, db.Create(&customer).Error)

	sale := model.Sale{UserID: 1, ProductName: "Widget", Quantity: 1, CustomerID: &customer.ID, SaleDate: time.Now()}
	require.NoError(t, db.Create(&sale).Error)
	income := model.Income{UserID: 1, IncomeDate: time.Now(), CustomerID: &customer.ID, Amount: 10}
	require.NoError(t, db.Create(&income).Error)

	require.NoError(t, repo.Delete(1, customer.ID))

	// Dependent rows survive with the reference cleared.
	var keptSale model.Sale
	require.NoError(t, db.First(&keptSale, "id = ?", sale.ID).Error)
	require.Nil(t, keptSale.CustomerID)
	var keptIncome model.Income
	require.NoError(t, db.First(&keptIncome, "id = ?", income.ID).Error)
	require.Nil(t, keptIncome.CustomerID)
}

func TestCustomerDeleteWrongOwner(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.Customer{}, &model.Sale{}, &model.Income{}))
	repo := NewCustomerRepo(db)

	customer := model.Customer{UserID: 1, Name: "Acme"}
	require.NoError(t, db.Create(&customer).Error)

	require.ErrorIs(t, repo.Delete(2, customer.ID), gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
