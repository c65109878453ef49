package model

type Customer struct {
	BaseModel
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Note   string `gorm:"type:text" json:"note"`
}
