package model

import "time"

// Remittance is a payment sent out to a supplier; no stock interaction.
type Remittance struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	RemittanceDate time.Time `gorm:"not null;index" json:"remittance_date" validate:"required"`
	SupplierID     *uint     `gorm:"index" json:"supplier_id"`
	Amount         float64   `gorm:"not null" json:"amount" validate:"gte=0"`
	EmployeeID     *uint     `gorm:"index" json:"employee_id"`
	PaymentMethod  string    `gorm:"type:varchar(20)" json:"payment_method"`
	Note           string    `gorm:"type:text" json:"note"`
	CreatedAt      time.Time `json:"created_at"`
}
