package models

import (
	"time"
)

// BaseModel carries the fields shared by every table. Rows are addressed by
// numeric ids so that public identifiers can fall back to slugs.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
