package models

// Review holds a user rating for a product. The catalog only ever consumes
// reviews in aggregate, as a mean rating per product.
type Review struct {
	BaseModel
	ProductID uint    `json:"product_id" gorm:"index;not null"`
	UserID    *uint   `json:"user_id,omitempty" gorm:"index"`
	User      *User   `json:"user,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Rating    float64 `json:"rating" gorm:"not null"`
	Text      string  `json:"text,omitempty" gorm:"type:text"`
}

// Wishlist marks a product as liked, keyed by the user when known and by the
// client ip otherwise.
type Wishlist struct {
	BaseModel
	IP        string   `json:"ip,omitempty" gorm:"size:50;index"`
	UserID    *uint    `json:"user_id,omitempty" gorm:"index"`
	ProductID uint     `json:"product_id" gorm:"index;not null"`
	Product   *Product `json:"product,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
