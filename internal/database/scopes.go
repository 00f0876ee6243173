package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForUser filters rows by their owning user_id.
func ForUser(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Paginate applies LIMIT/OFFSET for a 1-based page.
func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Limit(limit).Offset((page - 1) * limit)
	}
}
