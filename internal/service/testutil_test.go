package service

import (
	"fmt"
	"testing"

	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"
	"go-bizbook/internal/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Sale{},
		&model.Customer{},
		&model.Supplier{},
		&model.UserSetting{},
		&model.OnlineUser{},
		&model.AuditLog{},
	))
	return db
}

func newSaleService(db *gorm.DB) SaleService {
	audit := NewAuditLogger(repository.NewAuditRepo(db))
	return NewSaleService(db, repository.NewSaleRepo(db), repository.NewProductRepo(db), audit, ws.NewHub())
}

func newProductService(db *gorm.DB) ProductService {
	audit := NewAuditLogger(repository.NewAuditRepo(db))
	return NewProductService(db, repository.NewProductRepo(db), audit, ws.NewHub())
}

func newAuthService(db *gorm.DB) AuthService {
	return NewAuthService(
		repository.NewUserRepo(db),
		repository.NewSettingRepo(db),
		repository.NewPresenceRepo(db),
		ws.NewHub(),
	)
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, TokenVersion: "tv-" + username}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, userID uint, name string, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		UserID:  userID,
		Name:    name,
		Stock:   stock,
		Unit:    model.UnitPiece,
		Version: 1,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *model.Product {
	t.Helper()
	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return &product
}
