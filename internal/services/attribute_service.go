package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/models"
)

// AttributeService lists the color and size dimensions, optionally scoped to
// one category subtree. An unresolvable category degrades to the full set
// rather than failing: the storefront always gets usable filter options.
type AttributeService struct {
	db         *gorm.DB
	categories *CategoryService
}

func NewAttributeService(db *gorm.DB, categories *CategoryService) *AttributeService {
	return &AttributeService{db: db, categories: categories}
}

// Colors returns every color, or only those appearing on products of the
// given category and its descendants when categoryKey resolves.
func (s *AttributeService) Colors(categoryKey string) ([]models.Color, error) {
	colors := []models.Color{}
	query := s.db.Model(&models.Color{}).Order("colors.id")

	query, err := s.scopeToCategory(query, categoryKey, "product_colors", "color_id", "colors.id")
	if err != nil {
		return nil, err
	}

	if err := query.Find(&colors).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch colors: %w", err)
	}
	return colors, nil
}

// Sizes mirrors Colors for the size dimension.
func (s *AttributeService) Sizes(categoryKey string) ([]models.Size, error) {
	sizes := []models.Size{}
	query := s.db.Model(&models.Size{}).Order("sizes.id")

	query, err := s.scopeToCategory(query, categoryKey, "product_sizes", "size_id", "sizes.id")
	if err != nil {
		return nil, err
	}

	if err := query.Find(&sizes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sizes: %w", err)
	}
	return sizes, nil
}

func (s *AttributeService) scopeToCategory(query *gorm.DB, categoryKey, joinTable, joinColumn, idColumn string) (*gorm.DB, error) {
	if categoryKey == "" {
		return query, nil
	}

	category, err := s.categories.Resolve(categoryKey)
	if err != nil {
		if err == ErrCategoryNotFound {
			// degrade gracefully: unfiltered full set
			return query, nil
		}
		return nil, err
	}

	categoryIDs, err := s.categories.DescendantIDs(category.ID)
	if err != nil {
		return nil, err
	}

	return query.
		Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s", joinTable, joinTable, joinColumn, idColumn)).
		Joins(fmt.Sprintf("JOIN products ON products.id = %s.product_id", joinTable)).
		Where("products.category_id IN ?", categoryIDs).
		Distinct(), nil
}
