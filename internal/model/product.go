package model

// Unit is the unit of measure a product's stock is counted in.
type Unit string

const (
	UnitPiece      Unit = "piece"
	UnitBox        Unit = "box"
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitMeter      Unit = "m"
)

// Product carries the only shared mutable counter in the system: Stock.
// Stock never goes negative, and Version increases by exactly 1 on every
// successful mutation. Version is the sole arbiter of write admissibility
// under contention; all stock writes go through the conditional update in
// the product repository.
type Product struct {
	BaseModel
	UserID      uint   `gorm:"not null;index;uniqueIndex:idx_products_owner_name" json:"user_id"`
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_products_owner_name" json:"name" validate:"required,max=255"`
	Description string `gorm:"type:text" json:"description"`
	Stock       int    `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Unit        Unit   `gorm:"type:varchar(10);not null;default:'piece'" json:"unit" validate:"omitempty,oneof=piece box kg g l ml m"`
	SupplierID  *uint  `gorm:"index" json:"supplier_id"`
	Version     int    `gorm:"not null;default:1" json:"version"`
}
