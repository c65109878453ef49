package repository

import "gorm.io/gorm"

// Paginate clamps page/pageSize to sane bounds and applies LIMIT/OFFSET.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 20
		}
		if pageSize > 10000 {
			pageSize = 10000
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// OwnedBy scopes a query to a single owner. Every read and write in the
// system must go through an owner filter; a correct id with the wrong owner
// behaves exactly like a missing record.
func OwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
