package models

// Banner is a storefront hero slide managed by admins.
type Banner struct {
	BaseModel
	Photo      string `json:"photo" gorm:"size:512;not null"`
	Heading    string `json:"heading,omitempty" gorm:"size:255"`
	Subheading string `json:"subheading,omitempty" gorm:"size:255"`
	URL        string `json:"url,omitempty" gorm:"type:text"`
	Button     string `json:"button,omitempty" gorm:"size:255"`
}

// Feedback is a free-form contact submission from the storefront.
type Feedback struct {
	BaseModel
	Name    string `json:"name" gorm:"size:255;not null"`
	Phone   string `json:"phone,omitempty" gorm:"size:16"`
	Email   string `json:"email,omitempty" gorm:"size:255"`
	Message string `json:"message" gorm:"type:text;not null"`
}
