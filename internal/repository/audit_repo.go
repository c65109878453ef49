package repository

import (
	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *model.AuditLog) error
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}
