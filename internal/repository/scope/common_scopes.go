package scope

import "gorm.io/gorm"

// OrderBySimilarityDesc expects a "similarity" column in the select list.
// Equal scores fall back to id so results are stable across backends.
func OrderBySimilarityDesc(db *gorm.DB) *gorm.DB {
	return db.Order("similarity DESC").Order("id ASC")
}

// Limit caps the result set, falling back to def when n is not positive.
func Limit(n, def int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			n = def
		}
		return db.Limit(n)
	}
}
