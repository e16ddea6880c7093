package models

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Color is an attribute dimension attached to products many-to-many.
type Color struct {
	BaseModel
	Title   string `json:"title" gorm:"size:255;not null"`
	HexCode string `json:"hex_code" gorm:"size:8"`
}

// Size describes physical dimensions in centimetres.
type Size struct {
	BaseModel
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// Product is the aggregation root for its photos, characteristics, discounts
// and reviews; all of those are removed with it. The category reference is
// soft: deleting a category leaves the product uncategorised.
type Product struct {
	BaseModel
	Title       string    `json:"title" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Photo       string    `json:"photo" gorm:"size:512"`
	Price       float64   `json:"price" gorm:"not null;check:price >= 0"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  *uint     `json:"category_id,omitempty" gorm:"index"`
	Category    *Category `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	Colors          []Color          `json:"colors,omitempty" gorm:"many2many:product_colors"`
	Sizes           []Size           `json:"sizes,omitempty" gorm:"many2many:product_sizes"`
	Photos          []Photo          `json:"photos,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Characteristics []Characteristic `json:"characteristics,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Discounts       []Discount       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Reviews         []Review         `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	// AverageRating is populated by catalog queries, never stored.
	AverageRating *float64 `json:"average_rating,omitempty" gorm:"->;-:migration"`
}

// BeforeSave computes the slug from the title, resolving collisions with a
// pseudo-random year-based suffix.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Title == "" {
		return nil
	}
	candidate, err := uniqueSlug(tx, "products", slug.Make(p.Title), p.ID)
	if err != nil {
		return err
	}
	p.Slug = candidate
	return nil
}

// Photo is a secondary product image.
type Photo struct {
	BaseModel
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	URL       string `json:"url" gorm:"size:512;not null"`
}

// Characteristic is a key/value property shown on the product detail page.
type Characteristic struct {
	BaseModel
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	Key       string `json:"key" gorm:"size:255;not null"`
	Value     string `json:"value" gorm:"size:255;not null"`
}
