package database

import (
	"strings"

	"gorm.io/gorm"
)

// TitleContains filters tasks whose title contains q, case-insensitively.
// LOWER/LIKE keeps the behavior identical across postgres, mysql and the
// sqlite test driver.
func TitleContains(q string) func(db *gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(q) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(tasks.title) LIKE ?", pattern)
	}
}
