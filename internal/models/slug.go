package models

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// uniqueSlug returns base if no other row in table holds it, otherwise a
// candidate with a pseudo-random year-based suffix appended until one is
// free. selfID is excluded so re-saving a row keeps its slug stable.
func uniqueSlug(tx *gorm.DB, table, base string, selfID uint) (string, error) {
	candidate := base
	for {
		var count int64
		q := tx.Session(&gorm.Session{NewDB: true}).Table(table).Where("slug = ?", candidate)
		if selfID != 0 {
			q = q.Where("id <> ?", selfID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d%02d", base, time.Now().Year(), rand.Intn(100))
	}
}
