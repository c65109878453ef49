package model

import "time"

// Sale references its product by name within the same owner, not by id.
// Renaming a product leaves existing sales pointing at the old name; this
// lookup-by-name semantic is kept for compatibility with existing data.
type Sale struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	ProductName    string    `gorm:"type:varchar(255);not null;index" json:"product_name" validate:"required,max=255"`
	Quantity       int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	CustomerID     *uint     `gorm:"index" json:"customer_id"`
	SaleDate       time.Time `gorm:"not null;index" json:"sale_date" validate:"required"`
	TotalSalePrice float64   `gorm:"not null;default:0" json:"total_sale_price" validate:"gte=0"`
	Note           string    `gorm:"type:text" json:"note"`
	CreatedAt      time.Time `json:"created_at"`
}
