package services

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/models"
)

// ErrCategoryNotFound is returned when an identifier resolves to nothing.
var ErrCategoryNotFound = errors.New("category not found")

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Resolve accepts a numeric id or a slug. Numeric lookup is attempted first;
// non-numeric input falls through to the slug lookup without erroring.
func (s *CategoryService) Resolve(key string) (*models.Category, error) {
	var category models.Category

	if id, err := strconv.ParseUint(key, 10, 64); err == nil {
		if err := s.db.First(&category, uint(id)).Error; err == nil {
			return &category, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	if err := s.db.Where("slug = ?", key).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// ListRoots returns the top of the tree with direct children preloaded.
func (s *CategoryService) ListRoots() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.
		Where("parent_id IS NULL").
		Order("id").
		Preload("Children", func(db *gorm.DB) *gorm.DB { return db.Order("categories.id") }).
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

// DescendantIDs walks the adjacency list breadth-first and returns the ids
// of the category and everything below it. No recursive SQL is used.
func (s *CategoryService) DescendantIDs(rootID uint) ([]uint, error) {
	ids := []uint{rootID}
	frontier := []uint{rootID}

	for len(frontier) > 0 {
		var children []uint
		if err := s.db.Model(&models.Category{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, fmt.Errorf("failed to walk category tree: %w", err)
		}
		ids = append(ids, children...)
		frontier = children
	}
	return ids, nil
}

// PriceRange returns the min and max price over the category's filtered
// products. Only directly assigned products count. When every match shares
// one price the min is forced to 0, signalling "no real range" to the
// storefront's slider; an empty match yields {0, 0}.
func (s *CategoryService) PriceRange(category *models.Category, filters ProductFilters) (float64, float64, error) {
	var bounds struct {
		Min *float64
		Max *float64
	}

	query := filters.Apply(
		s.db.Model(&models.Product{}).Where("products.category_id = ?", category.ID),
	)
	if err := query.
		Select("MIN(products.price) AS min, MAX(products.price) AS max").
		Scan(&bounds).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to compute price range: %w", err)
	}

	if bounds.Min == nil || bounds.Max == nil {
		return 0, 0, nil
	}
	if *bounds.Min == *bounds.Max {
		return 0, *bounds.Max, nil
	}
	return *bounds.Min, *bounds.Max, nil
}
