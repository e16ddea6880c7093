package models

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Category is a node in the taxonomy tree. A root has ParentID nil; deleting
// a node cascades to its descendants, while products keep living with a
// cleared category reference.
type Category struct {
	BaseModel
	Title    string     `json:"title" gorm:"size:255;not null"`
	Slug     string     `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Icon     string     `json:"icon,omitempty" gorm:"size:512"`
	ParentID *uint      `json:"parent_id,omitempty" gorm:"index"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

// BeforeSave derives the slug from the title. Slugs are never client-supplied.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Title == "" {
		return nil
	}
	candidate, err := uniqueSlug(tx, "categories", slug.Make(c.Title), c.ID)
	if err != nil {
		return err
	}
	c.Slug = candidate
	return nil
}
