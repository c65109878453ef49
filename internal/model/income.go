package model

import "time"

// Income is a plain bookkeeping record; it has no stock interaction.
type Income struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	IncomeDate    time.Time `gorm:"not null;index" json:"income_date" validate:"required"`
	CustomerID    *uint     `gorm:"index" json:"customer_id"`
	Amount        float64   `gorm:"not null" json:"amount" validate:"gte=0"`
	Discount      float64   `gorm:"not null;default:0" json:"discount" validate:"gte=0"`
	EmployeeID    *uint     `gorm:"index" json:"employee_id"`
	PaymentMethod string    `gorm:"type:varchar(20)" json:"payment_method"`
	Note          string    `gorm:"type:text" json:"note"`
	CreatedAt     time.Time `json:"created_at"`
}
