package models

import "time"

// Discount is a percentage off a single product. At most one row per product
// should be active with a future expiry; the write path in the discount
// service enforces that when new rows are saved.
type Discount struct {
	BaseModel
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Percent   float64   `json:"discount" gorm:"column:discount;not null;check:discount >= 0 AND discount <= 100"`
	ExpiresIn time.Time `json:"expires_in" gorm:"type:date;not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Live reports whether the discount applies at the given instant.
func (d *Discount) Live(asOf time.Time) bool {
	return d.IsActive && d.ExpiresIn.After(asOf)
}

// Apply returns the discounted price for the given base price.
func (d *Discount) Apply(price float64) float64 {
	return price * (100 - d.Percent) / 100
}
